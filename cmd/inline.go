package cmd

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/kurasora/kurasora/filesystem"
	"github.com/kurasora/kurasora/inline"
	"github.com/kurasora/kurasora/key"
	"github.com/kurasora/kurasora/log"
	"github.com/kurasora/kurasora/provider"
	"github.com/kurasora/kurasora/query"
	"github.com/kurasora/kurasora/source"
	"github.com/kurasora/kurasora/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "Search query")
	inlineCmd.Flags().StringP("result", "r", "", "Result selector")
	inlineCmd.Flags().StringP("episodes", "e", "", "Episodes selector")
	inlineCmd.Flags().BoolP("json", "j", false, "Print JSON")
	inlineCmd.Flags().BoolP("links", "l", false, "Resolve stream links of the selected episodes")
	inlineCmd.Flags().BoolP("fetch-ids", "f", true, "Resolve MyAnimeList and Anilist ids when loading")
	lo.Must0(viper.BindPFlag(key.MetadataFetchIDs, inlineCmd.Flags().Lookup("fetch-ids")))

	inlineCmd.Flags().StringP("output", "o", "", "Write the output to a file")

	lo.Must0(inlineCmd.MarkFlagRequired("query"))
	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
}

var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Search, load and resolve links without prompts",
	Long: `Run a search non-interactively and print episodes or links.

Result selectors:
  first - first result
  last - last result
  exact - result named exactly like the query
  [number] - result by index (starting from 0)

Episode selectors:
  first - first episode
  last - last episode
  all - every episode
  [number] - episode by index (starting from 0)
  [from]-[to] - episodes by index range
  @[substring]@ - episodes whose name contains substring

With --json the result selector may be omitted to keep every result.`,
	Example: `  kurasora inline -S kuramanime -q "frieren" -r first -e 0-3 -l
  kurasora inline -S sorastream -q "dune" -r exact -e all --json`,
	PreRun: func(cmd *cobra.Command, args []string) {
		if !lo.Must(cmd.Flags().GetBool("json")) {
			lo.Must0(cmd.MarkFlagRequired("result"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		sources, err := selectedSources()
		handleErr(err)

		q := lo.Must(cmd.Flags().GetString("query"))

		var out io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer util.Ignore(file.Close)
			out = file
		}

		picker := mo.None[inline.ResultPicker]()
		if flag := lo.Must(cmd.Flags().GetString("result")); flag != "" {
			fn, err := inline.ParseResultPicker(flag, q)
			handleErr(err)
			picker = mo.Some(fn)
		}

		filter := mo.None[inline.EpisodesFilter]()
		if flag := lo.Must(cmd.Flags().GetString("episodes")); flag != "" {
			fn, err := inline.ParseEpisodesFilter(flag)
			handleErr(err)
			filter = mo.Some(fn)
		}

		handleErr(inline.Run(cmd.Context(), &inline.Options{
			Out:            out,
			Sources:        sources,
			Json:           lo.Must(cmd.Flags().GetBool("json")),
			Query:          q,
			ResultPicker:   picker,
			EpisodesFilter: filter,
			Links:          lo.Must(cmd.Flags().GetBool("links")),
		}))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the inline JSON output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "episode", "result", "output", "links":
				return filepath.Base(t.PkgPath()) + "." + name
			}
			return name
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(reflector.Reflect(&inline.Output{})))
	},
}

// selectedSources creates every source named by --source. Without the flag
// it takes every builtin that is configured well enough to start.
func selectedSources() ([]source.Source, error) {
	names := viper.GetStringSlice(key.DefaultSources)
	all := len(names) == 0
	if all {
		names = provider.Names()
	}

	sources := make([]source.Source, 0, len(names))
	for _, name := range names {
		src, err := provider.Create(name)
		if err != nil {
			if all {
				log.Warnf("skipping %s: %s", name, err)
				continue
			}
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

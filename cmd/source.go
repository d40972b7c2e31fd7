package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/kurasora/kurasora/color"
	"github.com/kurasora/kurasora/icon"
	"github.com/kurasora/kurasora/inline"
	"github.com/kurasora/kurasora/log"
	"github.com/kurasora/kurasora/query"
	"github.com/kurasora/kurasora/source"
	"github.com/kurasora/kurasora/style"
	"github.com/kurasora/kurasora/util"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	for _, cmd := range []*cobra.Command{searchCmd, loadCmd, linksCmd, homeCmd} {
		cmd.Flags().BoolP("json", "j", false, "Print JSON")
		rootCmd.AddCommand(cmd)
	}

	homeCmd.Flags().IntP("page", "p", 1, "Page of each section")
	homeCmd.Flags().StringP("section", "s", "", "Only fetch the section with this name")
}

func printJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printResults(out io.Writer, results []*source.SearchResponse) {
	for _, r := range results {
		line := style.Bold(r.Name)
		if r.Year > 0 {
			line += style.Faint(fmt.Sprintf(" (%d)", r.Year))
		}
		if r.Type != "" {
			line += " " + style.Fg(color.Yellow)(string(r.Type))
		}
		_, _ = fmt.Fprintf(out, "%s\n  %s\n", line, r.URL)
	}
}

var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Short:   "Search one source",
	Example: `  kurasora search -S kuramanime frieren`,
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src, err := singleSource()
		handleErr(err)

		q := strings.Join(args, " ")
		if err := query.Remember(q, 1); err != nil {
			log.Warnf("remember query: %s", err)
		}

		results, err := inline.Search(cmd.Context(), src, q)
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(printJSON(cmd.OutOrStdout(), results))
			return
		}

		if len(results) == 0 {
			cmd.Printf("%s no results for %q\n", icon.Get(icon.Fail), q)
			return
		}
		printResults(cmd.OutOrStdout(), results)
	},
}

var loadCmd = &cobra.Command{
	Use:     "load <url>",
	Short:   "Load the metadata and episodes of a title",
	Example: `  kurasora load -S kuramanime https://kuramanime.com/anime/2177/sousou-no-frieren`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src, err := singleSource()
		handleErr(err)

		loaded, err := inline.Load(cmd.Context(), src, args[0])
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(printJSON(cmd.OutOrStdout(), loaded))
			return
		}

		width := 80
		if w, _, err := util.TerminalSize(); err == nil && w > 0 {
			width = w
		}

		cmd.Println(style.Title(loaded.Name))
		meta := []string{string(loaded.Type)}
		if loaded.Year > 0 {
			meta = append(meta, fmt.Sprint(loaded.Year))
		}
		if loaded.Status != "" {
			meta = append(meta, string(loaded.Status))
		}
		if loaded.MalID > 0 {
			meta = append(meta, fmt.Sprintf("mal %d", loaded.MalID))
		}
		if loaded.AniListID > 0 {
			meta = append(meta, fmt.Sprintf("anilist %d", loaded.AniListID))
		}
		if loaded.ImdbID != "" {
			meta = append(meta, loaded.ImdbID)
		}
		cmd.Println(style.Faint(strings.Join(lo.Compact(meta), " · ")))

		if len(loaded.Tags) > 0 {
			cmd.Println(style.Fg(color.Yellow)(strings.Join(loaded.Tags, ", ")))
		}
		if loaded.Plot != "" {
			cmd.Println()
			cmd.Println(wordwrap.String(loaded.Plot, width))
		}

		cmd.Println()
		cmd.Println(style.Bold(util.Quantify(len(loaded.Episodes), "episode", "episodes")))
		for _, ep := range loaded.Episodes {
			cmd.Printf("%s %s\n  %s\n", icon.Get(icon.Episode), ep, style.Faint(ep.Data))
		}

		if len(loaded.Recommendations) > 0 {
			cmd.Println()
			cmd.Println(style.Bold("Recommendations"))
			printResults(cmd.OutOrStdout(), loaded.Recommendations)
		}
	},
}

var linksCmd = &cobra.Command{
	Use:   "links <data>",
	Short: "Resolve the stream links of an episode",
	Long:  "Resolve the stream links of an episode. data is the episode data printed by load.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src, err := singleSource()
		handleErr(err)

		links, err := source.CollectLinks(cmd.Context(), src, args[0])
		if err != nil && len(links.Links) == 0 {
			handleErr(err)
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(printJSON(cmd.OutOrStdout(), links))
			return
		}

		if len(links.Links) == 0 {
			cmd.Printf("%s no links found\n", icon.Get(icon.Fail))
			return
		}

		for _, link := range links.Links {
			kind := ""
			if link.IsM3u8 {
				kind = style.Faint(" m3u8")
			}
			cmd.Printf("%s %s %s%s\n  %s\n",
				icon.Get(icon.Link),
				style.Bold(link.Name),
				style.Fg(color.Cyan)(link.Quality.String()),
				kind,
				link.URL,
			)
		}
		for _, sub := range links.Subtitles {
			cmd.Printf("%s %s %s\n", icon.Get(icon.Subtitle), style.Faint(sub.Lang), sub.URL)
		}
	},
}

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the home page sections of a source",
	Run: func(cmd *cobra.Command, args []string) {
		src, err := singleSource()
		handleErr(err)

		page := lo.Must(cmd.Flags().GetInt("page"))
		only := lo.Must(cmd.Flags().GetString("section"))

		var lists []*source.HomePageList
		for _, request := range src.MainPage() {
			if only != "" && !strings.EqualFold(only, request.Name) {
				continue
			}

			list, err := src.MainPageSection(cmd.Context(), request, page)
			if err != nil {
				log.Warnf("home section %s: %s", request.Name, err)
				continue
			}
			lists = append(lists, list)
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(printJSON(cmd.OutOrStdout(), lists))
			return
		}

		for _, list := range lists {
			cmd.Println(style.Title(list.Name))
			printResults(cmd.OutOrStdout(), list.List)
			cmd.Println()
		}
	},
}

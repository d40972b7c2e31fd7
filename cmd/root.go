// Package cmd implements the kurasora command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/kurasora/kurasora/color"
	"github.com/kurasora/kurasora/constant"
	"github.com/kurasora/kurasora/icon"
	"github.com/kurasora/kurasora/key"
	"github.com/kurasora/kurasora/log"
	"github.com/kurasora/kurasora/mini"
	"github.com/kurasora/kurasora/provider"
	"github.com/kurasora/kurasora/source"
	"github.com/kurasora/kurasora/style"
	"github.com/kurasora/kurasora/util"
	"github.com/kurasora/kurasora/version"
	"github.com/kurasora/kurasora/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// stdout resolves os.Stdout on every write so results go to the current
// standard output instead of cobra's stderr default.
type stdout struct{}

func (stdout) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func init() {
	rootCmd.SetOut(stdout{})
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Icon variant to use")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringSliceP("source", "S", []string{}, "Sources to use")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("source", completeSources))
	lo.Must0(viper.BindPFlag(key.DefaultSources, rootCmd.PersistentFlags().Lookup("source")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	go func() {
		_ = util.Delete(where.Temp())
	}()
}

var rootCmd = &cobra.Command{
	Use:   constant.Kurasora,
	Short: "Search anime, movies and shows across streaming sites and resolve their stream links",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Search anime, movies and shows across streaming sites and resolve their stream links"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(mini.Run(cmd.Context(), &mini.Options{}))
	},
}

// Execute runs the root command.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func completeSources(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return provider.Names(), cobra.ShellCompDirectiveNoFileComp
}

// singleSource creates the one source named by --source.
func singleSource() (source.Source, error) {
	names := viper.GetStringSlice(key.DefaultSources)
	switch len(names) {
	case 0:
		return nil, fmt.Errorf("no source given, use --source (one of %s)", strings.Join(provider.Names(), ", "))
	case 1:
		return provider.Create(names[0])
	default:
		return nil, fmt.Errorf("expected one source, got %d", len(names))
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

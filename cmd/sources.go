package cmd

import (
	"fmt"
	"strings"

	"github.com/kurasora/kurasora/color"
	"github.com/kurasora/kurasora/provider"
	"github.com/kurasora/kurasora/source"
	"github.com/kurasora/kurasora/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Inspect the built-in providers",
}

func init() {
	sourcesCmd.AddCommand(sourcesListCmd)

	sourcesListCmd.Flags().BoolP("raw", "r", false, "Print ids only")
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in providers",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("raw")) {
			for _, p := range provider.Builtins() {
				cmd.Println(p.ID)
			}
			return
		}

		cmd.Println(style.New().Foreground(color.HiBlue).Bold(true).Render("Builtin:"))
		for _, p := range provider.Builtins() {
			src, err := p.CreateSource()
			types := style.Faint("not configured")
			if err == nil {
				types = strings.Join(lo.Map(src.SupportedTypes(), func(t source.TvType, _ int) string {
					return string(t)
				}), ", ")
			}

			cmd.Println(fmt.Sprintf("%s %s %s %s",
				style.Bold(p.Name),
				style.Fg(color.Yellow)(p.ID),
				style.Faint("["+p.Lang+"]"),
				types,
			))
		}
	},
}

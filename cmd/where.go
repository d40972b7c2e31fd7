package cmd

import (
	"github.com/kurasora/kurasora/color"
	"github.com/kurasora/kurasora/style"
	"github.com/kurasora/kurasora/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

type location struct {
	title  string
	flag   string
	short  mo.Option[string]
	path   func() string
	hidden bool
}

var locations = []location{
	{title: "Config", flag: "config", short: mo.Some("c"), path: where.Config},
	{title: "Logs", flag: "logs", short: mo.Some("l"), path: where.Logs},
	{title: "Cache", flag: "cache", path: where.Cache},
	{title: "Responses", flag: "responses", path: where.Responses, hidden: true},
	{title: "Queries", flag: "queries", path: where.Queries, hidden: true},
	{title: "Temp", flag: "temp", path: where.Temp, hidden: true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	flags := whereCmd.Flags()
	for _, l := range locations {
		flags.BoolP(l.flag, l.short.OrEmpty(), false, "print only the "+l.title+" path")
		if l.hidden {
			lo.Must0(flags.MarkHidden(l.flag))
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l location, _ int) string {
		return l.flag
	})...)

}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where kurasora keeps its files",
	Run: func(cmd *cobra.Command, args []string) {
		if chosen, ok := lo.Find(locations, func(l location) bool {
			return lo.Must(cmd.Flags().GetBool(l.flag))
		}); ok {
			cmd.Println(chosen.path())
			return
		}

		heading := style.New().Bold(true).Foreground(color.HiPurple).Render
		flag := style.Fg(color.Yellow)

		shown := lo.Reject(locations, func(l location, _ int) bool {
			return l.hidden
		})
		for i, l := range shown {
			if i > 0 {
				cmd.Println()
			}
			cmd.Println(heading(l.title+"?"), flag("--"+l.flag))
			cmd.Println(l.path())
		}
	},
}

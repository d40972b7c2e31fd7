package cmd

import (
	"github.com/kurasora/kurasora/icon"
	"github.com/kurasora/kurasora/internal/cache"
	"github.com/kurasora/kurasora/util"
	"github.com/kurasora/kurasora/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type clearable struct {
	what  string
	flag  string
	short string
	clear func() error
}

func deleting(path func() string) func() error {
	return func() error {
		return util.Delete(path())
	}
}

var clearables = []clearable{
	{what: "response cache", flag: "cache", short: "c", clear: cache.Clear},
	{what: "anilist ids", flag: "anilist", short: "a", clear: deleting(where.AnilistIDs)},
	{what: "queries history", flag: "queries", short: "q", clear: deleting(where.Queries)},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, c := range clearables {
		clearCmd.Flags().BoolP(c.flag, c.short, false, "clear the "+c.what)
	}
	clearCmd.Flags().Bool("all", false, "clear everything")
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached responses and histories",
	Run: func(cmd *cobra.Command, args []string) {
		all := lo.Must(cmd.Flags().GetBool("all"))
		chosen := lo.Filter(clearables, func(c clearable, _ int) bool {
			return all || lo.Must(cmd.Flags().GetBool(c.flag))
		})

		if len(chosen) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, c := range chosen {
			erase := util.PrintErasable(icon.Get(icon.Progress) + " Clearing " + c.what + "...")
			err := c.clear()
			erase()
			handleErr(err)
			cmd.Println(icon.Get(icon.Success), util.Capitalize(c.what), "cleared")
		}
	},
}

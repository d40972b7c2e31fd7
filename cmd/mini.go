package cmd

import (
	"github.com/kurasora/kurasora/mini"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(miniCmd)
}

var miniCmd = &cobra.Command{
	Use:   "mini",
	Short: "Pick a source, a title and episodes through prompts",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(mini.Run(cmd.Context(), &mini.Options{}))
	},
}

package cmd

import (
	"github.com/kurasora/kurasora/streamurl"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(decryptCmd)

	decryptCmd.Flags().BoolP("masks", "m", false, "List the junk masks instead")
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [token]",
	Short: "Decode an obfuscated stream token into its URL",
	Args: func(cmd *cobra.Command, args []string) error {
		if lo.Must(cmd.Flags().GetBool("masks")) {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("masks")) {
			for _, mask := range streamurl.JunkMasks() {
				cmd.Println(mask)
			}
			return
		}

		decrypted, err := streamurl.Decrypt(args[0])
		handleErr(err)
		cmd.Println(decrypted)
	},
}

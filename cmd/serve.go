package cmd

import (
	"github.com/kurasora/kurasora/api"
	"github.com/kurasora/kurasora/key"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on")
	lo.Must0(viper.BindPFlag(key.ServeAddr, serveCmd.Flags().Lookup("addr")))
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the sources over a JSON API",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(api.Serve(cmd.Context(), &api.ServerConfig{
			Addr:            viper.GetString(key.ServeAddr),
			AllowedOrigins:  viper.GetStringSlice(key.ServeAllowedOrigins),
			ShowStartBanner: true,
		}))
	},
}

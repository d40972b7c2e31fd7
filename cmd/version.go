package cmd

import (
	"runtime"
	"strings"

	"github.com/kurasora/kurasora/color"
	"github.com/kurasora/kurasora/constant"
	"github.com/kurasora/kurasora/style"
	"github.com/kurasora/kurasora/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type buildInfo struct {
	Version  string `json:"version"`
	Revision string `json:"revision"`
	BuiltAt  string `json:"built_at"`
	BuiltBy  string `json:"built_by"`
	Platform string `json:"platform"`
	Go       string `json:"go"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:  constant.Version,
		Revision: constant.Revision,
		BuiltAt:  strings.TrimSpace(constant.BuiltAt),
		BuiltBy:  constant.BuiltBy,
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Go:       runtime.Version(),
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "Only print the version")
	versionCmd.Flags().BoolP("json", "j", false, "Print build information as JSON")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		build := currentBuild()

		switch {
		case lo.Must(cmd.Flags().GetBool("short")):
			cmd.Println(build.Version)
			return
		case lo.Must(cmd.Flags().GetBool("json")):
			handleErr(printJSON(cmd.OutOrStdout(), build))
			return
		}

		defer version.Notify()

		label := style.New().Faint(true).Width(12).Render
		accent := style.Fg(color.Purple)

		cmd.Println(accent("▇▇▇"), accent(constant.Kurasora))
		cmd.Println()
		for _, row := range [][2]string{
			{"Version", build.Version},
			{"Revision", build.Revision},
			{"Built at", build.BuiltAt},
			{"Built by", build.BuiltBy},
			{"Platform", build.Platform},
			{"Go", build.Go},
		} {
			cmd.Println(" ", label(row[0])+style.Bold(row[1]))
		}
	},
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/updatefeed/updatefeed/internal/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "updatefeed %s (commit %s, built %s)\n",
			build.Version, build.Commit, build.BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

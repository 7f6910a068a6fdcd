package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nevindra/fiscus/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Fiscus, version %s.\n", version.Version)
		fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render(
			fmt.Sprintf("commit %s, built %s", version.Commit, version.BuildDate)))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

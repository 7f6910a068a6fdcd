package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nevindra/fiscus/extraction"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Export extracted artifacts to XLSX or CSV",
	Long: `Export merges the per-page artifacts into a single output file. An .xlsx
output gets a Parameters sheet and a Transactions sheet; a .csv output gets
the concatenated transaction rows. Categorized tables are preferred over the
raw extractions when both exist.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := extraction.Export(args[0], exportOut); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", successStyle.Render("Wrote"), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Output file (.xlsx or .csv)")
	_ = exportCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(exportCmd)
}

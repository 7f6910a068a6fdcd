package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nevindra/fiscus/extraction"
)

var categorizeCmd = &cobra.Command{
	Use:   "categorize <dir>",
	Short: "Categorize extracted transaction tables",
	Long: `Categorize appends a Category column to every extracted table, chosen by the
LLM from the configured category list. Pages without a table and pages that
were already categorized are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close(context.Background())

		if err := extraction.CategorizePages(cmd.Context(), args[0], rt.extractionOptions(cmd.OutOrStdout())); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Categorization complete."))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categorizeCmd)
}

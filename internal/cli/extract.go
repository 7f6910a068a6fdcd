package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nevindra/fiscus/extraction"
)

var (
	extractMethod     string
	extractMaxRetries int
)

var extractCmd = &cobra.Command{
	Use:   "extract <dir>",
	Short: "Extract per-page params and transaction tables",
	Long: `Extract asks the LLM for a params JSON file and a transaction table CSV file
for every page of the registered document. Pages that already have their
artifacts are skipped, so an interrupted run can simply be started again.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close(context.Background())

		opts := rt.extractionOptions(cmd.OutOrStdout())
		if extractMethod != "" {
			opts.Method = extraction.Method(extractMethod)
		}
		if extractMaxRetries > 0 {
			opts.MaxRetries = extractMaxRetries
		}

		if err := extraction.ExtractPages(cmd.Context(), args[0], opts); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Extraction complete."))
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractMethod, "method", "",
		`Table extraction input: "table" or "text" (default from config)`)
	extractCmd.Flags().IntVar(&extractMaxRetries, "max-retries", 0,
		"Maximum LLM retries per artifact (default from config)")
	rootCmd.AddCommand(extractCmd)
}

// Package cli implements the fiscus command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/nevindra/fiscus/internal/version"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "fiscus",
	Short: "Extract and categorize transactions from PDF statements",
	Long: `Fiscus uses LLMs to turn bank statement PDFs into structured per-page
parameter and transaction-table files, categorizes the transactions, and
exports the result to XLSX or CSV.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to fiscus.toml (default: $FISCUS_CONFIG, ./fiscus.toml, ~/.config/fiscus/fiscus.toml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("Fiscus, version %s.\n", version.Version))
}

// Execute runs the root command and maps the result to the exit protocol:
// cancellation prints a yellow "Interrupted." and exits 7, any other error
// prints a red "Error:" line and exits 1.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, warnStyle.Render("Interrupted."))
		return 7
	}
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
	return 1
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nevindra/fiscus/document"
)

var initCmd = &cobra.Command{
	Use:   "init <document> <dir>",
	Short: "Register a document into a working directory",
	Long: `Init detects the document type, then creates the working directory with a
copy of the document and its metadata file. Later commands operate on the
directory, not the original document.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		meta, err := document.Init(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s) in %s\n",
			successStyle.Render("Registered"), meta.Filename, meta.FileType, args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

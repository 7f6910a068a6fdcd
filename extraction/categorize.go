package extraction

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nevindra/fiscus"
	"github.com/nevindra/fiscus/document"
	"github.com/nevindra/fiscus/document/pdf"
	"github.com/nevindra/fiscus/fileguard"
)

// DefaultCategories returns the built-in transaction taxonomy used when the
// configuration does not override it.
func DefaultCategories() []string {
	return []string{
		"Dining",
		"Groceries",
		"Shopping",
		"Transport",
		"Housing",
		"Utilities",
		"Communication",
		"Entertainment",
		"Health",
		"Education",
		"Travel",
		"Transfer",
		"Salary",
		"Investment",
		"Fees",
		"Other",
	}
}

// CategorizePages appends a Category column to every page table that has no
// categorized artifact yet. Pages without a table artifact are skipped, so
// this can run after a partial extraction.
func CategorizePages(ctx context.Context, docDir string, opts Options) error {
	opts, err := opts.withDefaults()
	if err != nil {
		return err
	}
	opts.Logger = opts.Logger.With("run", fiscus.NewID())

	meta, err := document.Load(docDir)
	if err != nil {
		return err
	}
	if meta.FileType != document.TypePDF {
		return fmt.Errorf("categorization needs a pdf document, %s holds %s", docDir, meta.FileType)
	}

	doc, err := pdf.Open(meta.Path(docDir))
	if err != nil {
		return err
	}
	total := doc.PageCount()
	doc.Close()

	taskOpts := opts.taskOptions()
	for page := 1; page <= total; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		tablePath := document.PageTablePath(docDir, page)
		if !fileExists(tablePath) {
			continue
		}
		catPath := document.PageCategorizedPath(docDir, page)
		if fileExists(catPath) {
			opts.emit(PageEvent{Page: page, Total: total, Artifact: ArtifactCategorized, Skipped: true})
			continue
		}

		raw, err := os.ReadFile(tablePath)
		if err != nil {
			return err
		}
		source, err := fiscus.ParseTable(string(raw))
		if err != nil {
			return fmt.Errorf("page %d table artifact: %w", page, err)
		}

		err = fileguard.Run([]string{catPath}, func() error {
			task := fiscus.NewCSVTask(opts.Provider, categorizePrompt, taskOpts...)
			task.Validate = categorizedValidator(source, opts.Categories)
			out, err := task.Ask(ctx, buildCategorizeInput(opts.Categories, source.Raw))
			if err != nil {
				return err
			}
			return writeTable(catPath, out)
		})
		if err != nil {
			return fmt.Errorf("page %d categorize: %w", page, err)
		}
		opts.Logger.InfoContext(ctx, "table categorized", "doc", meta.Filename, "page", page)
		opts.emit(PageEvent{Page: page, Total: total, Artifact: ArtifactCategorized})
	}
	return nil
}

func buildCategorizeInput(categories []string, tableCSV string) string {
	var b strings.Builder
	b.WriteString("# Allowed Categories\n\n")
	for _, c := range categories {
		b.WriteString("- ")
		b.WriteString(c)
		b.WriteString("\n")
	}
	b.WriteString("\n# Table To Categorize\n\n```\n")
	b.WriteString(strings.TrimRight(tableCSV, "\n"))
	b.WriteString("\n```\n")
	return b.String()
}

// categorizedValidator checks that the reply is the source table with one
// Category column appended: same header, same rows and values, and every
// category drawn from the allowed list.
func categorizedValidator(source *fiscus.Table, categories []string) func(*fiscus.Table) error {
	allowed := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		allowed[c] = struct{}{}
	}
	return func(t *fiscus.Table) error {
		if len(t.Header) != len(source.Header)+1 {
			return fmt.Errorf("reply has %d columns, want the original %d plus Category",
				len(t.Header), len(source.Header))
		}
		if last := t.Header[len(t.Header)-1]; last != "Category" {
			return fmt.Errorf("last column is %q, want Category", last)
		}
		for i, h := range source.Header {
			if t.Header[i] != h {
				return fmt.Errorf("column %d renamed from %q to %q", i+1, h, t.Header[i])
			}
		}
		if len(t.Rows) != len(source.Rows) {
			return fmt.Errorf("reply has %d rows, want %d", len(t.Rows), len(source.Rows))
		}
		for i, row := range t.Rows {
			for j, want := range source.Rows[i] {
				if row[j] != want {
					return fmt.Errorf("row %d column %d changed from %q to %q", i+1, j+1, want, row[j])
				}
			}
			if cat := row[len(row)-1]; !hasCategory(allowed, cat) {
				return fmt.Errorf("row %d: category %q is not in the allowed list", i+1, cat)
			}
		}
		return nil
	}
}

func hasCategory(allowed map[string]struct{}, c string) bool {
	_, ok := allowed[c]
	return ok
}

// Package extraction turns the pages of a registered document into
// per-page artifacts: a params JSON file and a table CSV file per page,
// plus an optional categorized CSV per page.
//
// The workflow is resumable. An artifact that already exists on disk is
// skipped, and each artifact is written under a rollback guard, so an
// interrupted or failed run never leaves a half-written file behind and
// can simply be started again.
//
// The first artifact of each kind becomes the reference included in every
// later prompt, which keeps parameter keys and table headers consistent
// across pages of the same document.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/nevindra/fiscus"
	"github.com/nevindra/fiscus/document"
	"github.com/nevindra/fiscus/document/pdf"
	"github.com/nevindra/fiscus/fileguard"
)

// Artifact names a per-page output kind.
type Artifact string

// Artifact kinds reported through Options.OnPage.
const (
	ArtifactParams      Artifact = "params"
	ArtifactTable       Artifact = "table"
	ArtifactCategorized Artifact = "categorized"
)

// PageEvent describes one page/artifact step of a workflow run.
type PageEvent struct {
	Page     int
	Total    int
	Artifact Artifact
	// Skipped is true when the artifact already existed and was left alone.
	Skipped bool
}

// Options configures a workflow run. Provider is required; everything else
// has defaults.
type Options struct {
	// Provider answers the extraction prompts.
	Provider fiscus.Provider
	// Method selects table extraction input. Default MethodTable.
	Method Method
	// MaxRetries bounds parse retries per artifact. Default
	// fiscus.DefaultMaxRetries.
	MaxRetries int
	// Categories is the allowed category list for CategorizePages.
	// Default DefaultCategories().
	Categories []string
	// Logger receives workflow progress. Default discards.
	Logger *slog.Logger
	// OnPage, when set, is called once per page/artifact step.
	OnPage func(PageEvent)
}

func (o Options) withDefaults() (Options, error) {
	if o.Provider == nil {
		return o, fmt.Errorf("extraction: Provider is required")
	}
	if o.Method == "" {
		o.Method = MethodTable
	}
	switch o.Method {
	case MethodTable, MethodText:
	default:
		return o, fmt.Errorf("unknown extract method %q", o.Method)
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = fiscus.DefaultMaxRetries
	}
	if len(o.Categories) == 0 {
		o.Categories = DefaultCategories()
	}
	if o.Logger == nil {
		o.Logger = slog.New(discardHandler{})
	}
	return o, nil
}

// discardHandler discards all log output; it stands in for Go 1.24's
// slog.DiscardHandler on older toolchains.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

func (o Options) taskOptions() []fiscus.TaskOption {
	return []fiscus.TaskOption{
		fiscus.TaskMaxRetries(o.MaxRetries),
		fiscus.TaskLogger(o.Logger),
	}
}

func (o Options) emit(e PageEvent) {
	if o.OnPage != nil {
		o.OnPage(e)
	}
}

// ExtractPages produces the params and table artifact for every page of the
// document in docDir that does not have one yet. The document must be a PDF.
func ExtractPages(ctx context.Context, docDir string, opts Options) error {
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
		return fmt.Errorf("page extraction needs a pdf document, %s holds %s", docDir, meta.FileType)
	}

	doc, err := pdf.Open(meta.Path(docDir))
	if err != nil {
		return err
	}
	defer doc.Close()

	total := doc.PageCount()
	refParams, refTable, err := scanReferences(docDir, total)
	if err != nil {
		return err
	}

	taskOpts := opts.taskOptions()
	for page := 1; page <= total; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		paramsPath := document.PageParamsPath(docDir, page)
		if fileExists(paramsPath) {
			opts.emit(PageEvent{Page: page, Total: total, Artifact: ArtifactParams, Skipped: true})
		} else {
			err := fileguard.Run([]string{paramsPath}, func() error {
				text, err := doc.PageText(page)
				if err != nil {
					return err
				}
				params, err := extractPageParams(ctx, opts.Provider, text, refParams, taskOpts...)
				if err != nil {
					return err
				}
				if refParams == nil {
					refParams = params
				}
				return writeJSON(paramsPath, params)
			})
			if err != nil {
				return fmt.Errorf("page %d params: %w", page, err)
			}
			opts.Logger.InfoContext(ctx, "params extracted", "doc", meta.Filename, "page", page)
			opts.emit(PageEvent{Page: page, Total: total, Artifact: ArtifactParams})
		}

		tablePath := document.PageTablePath(docDir, page)
		if fileExists(tablePath) {
			opts.emit(PageEvent{Page: page, Total: total, Artifact: ArtifactTable, Skipped: true})
		} else {
			err := fileguard.Run([]string{tablePath}, func() error {
				table, err := extractPageTable(ctx, opts.Provider, opts.Method, doc, page, refTable, taskOpts...)
				if err != nil {
					return err
				}
				if refTable == "" {
					refTable = table.Raw
				}
				return writeTable(tablePath, table)
			})
			if err != nil {
				return fmt.Errorf("page %d table: %w", page, err)
			}
			opts.Logger.InfoContext(ctx, "table extracted", "doc", meta.Filename, "page", page)
			opts.emit(PageEvent{Page: page, Total: total, Artifact: ArtifactTable})
		}
	}
	return nil
}

// scanReferences finds the lowest-numbered existing artifacts; they seed the
// consistency references included in later prompts.
func scanReferences(docDir string, pages int) (refParams any, refTable string, err error) {
	for page := 1; page <= pages; page++ {
		if refParams == nil {
			if data, readErr := os.ReadFile(document.PageParamsPath(docDir, page)); readErr == nil {
				var v any
				if jsonErr := json.Unmarshal(data, &v); jsonErr != nil {
					return nil, "", fmt.Errorf("parse page %d params reference: %w", page, jsonErr)
				}
				refParams = v
			}
		}
		if refTable == "" {
			if data, readErr := os.ReadFile(document.PageTablePath(docDir, page)); readErr == nil {
				refTable = strings.TrimRight(string(data), "\n")
			}
		}
		if refParams != nil && refTable != "" {
			break
		}
	}
	return refParams, refTable, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encode params: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func writeTable(path string, t *fiscus.Table) error {
	return os.WriteFile(path, []byte(t.Raw+"\n"), 0o644)
}

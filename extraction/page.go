package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nevindra/fiscus"
	"github.com/nevindra/fiscus/document/pdf"
)

// Method selects how table data is pulled from a page before the model
// cleans it up.
type Method string

const (
	// MethodTable feeds the page's detected table cells to the model as JSON.
	// Best for statements with a real table grid.
	MethodTable Method = "table"
	// MethodText feeds the page's plain text to the model and has it
	// reconstruct the table. Fallback for gridless layouts.
	MethodText Method = "text"
)

// extractPageParams runs the parameter-extraction task over one page's text.
// ref, when non-nil, is included so later pages reuse the same key set.
func extractPageParams(ctx context.Context, p fiscus.Provider, pageText string, ref any, opts ...fiscus.TaskOption) (any, error) {
	input, err := buildParamsInput(ref, pageText)
	if err != nil {
		return nil, err
	}
	return fiscus.NewJSONTask(p, paramsPrompt, opts...).Ask(ctx, input)
}

// extractPageTable runs the table task for the chosen method over the
// 1-indexed page. refCSV, when non-empty, pins the header for consistency.
func extractPageTable(ctx context.Context, p fiscus.Provider, method Method, doc *pdf.Document, page int, refCSV string, opts ...fiscus.TaskOption) (*fiscus.Table, error) {
	var system, input string
	switch method {
	case MethodTable:
		rows, err := doc.PageRows(page)
		if err != nil {
			return nil, err
		}
		input, err = buildTableInput(refCSV, rows)
		if err != nil {
			return nil, err
		}
		system = tableFixPrompt
	case MethodText:
		text, err := doc.PageText(page)
		if err != nil {
			return nil, err
		}
		input = buildTextTableInput(refCSV, text)
		system = textFixPrompt
	default:
		return nil, fmt.Errorf("unknown extract method %q", method)
	}
	return fiscus.NewCSVTask(p, system, opts...).Ask(ctx, input)
}

func buildParamsInput(ref any, pageText string) (string, error) {
	var b strings.Builder
	if ref != nil {
		refJSON, err := json.MarshalIndent(ref, "", "    ")
		if err != nil {
			return "", fmt.Errorf("encode params reference: %w", err)
		}
		b.WriteString("# Reference Data\n\n```json\n")
		b.Write(refJSON)
		b.WriteString("\n```\n")
	}
	b.WriteString("# Text To Extract Params From\n\n```text\n")
	b.WriteString(pageText)
	b.WriteString("\n```\n")
	return b.String(), nil
}

func buildTableInput(refCSV string, rows [][]string) (string, error) {
	// nil rows marshal to null, which tells the model no grid was found.
	rowJSON, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("encode page rows: %w", err)
	}
	var b strings.Builder
	writeTableRef(&b, refCSV)
	b.WriteString("# Text To Extract Table From\n\n```json\n")
	b.Write(rowJSON)
	b.WriteString("\n```\n")
	return b.String(), nil
}

func buildTextTableInput(refCSV, pageText string) string {
	var b strings.Builder
	writeTableRef(&b, refCSV)
	b.WriteString("# Text To Extract Table From\n\n```text\n")
	b.WriteString(pageText)
	b.WriteString("\n```\n")
	return b.String()
}

func writeTableRef(b *strings.Builder, refCSV string) {
	if refCSV == "" {
		return
	}
	b.WriteString("# Reference Data\n\n```\n")
	b.WriteString(strings.TrimRight(refCSV, "\n"))
	b.WriteString("\n```\n")
}

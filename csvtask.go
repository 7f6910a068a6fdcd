package fiscus

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
)

// Table is a parsed CSV reply: a header row, data rows, and the raw text the
// model produced. Artifact files store Raw verbatim so the model's quoting
// survives round trips.
type Table struct {
	Header []string
	Rows   [][]string
	Raw    string
}

// CSVTask is a Task whose replies must parse as CSV.
type CSVTask struct {
	task *Task

	// Validate, when set, runs on each parsed Table inside the retry loop,
	// so a structurally wrong reply gets a corrective re-ask like any other
	// parse failure.
	Validate func(*Table) error
}

// NewCSVTask creates a CSV task over p with the given system prompt.
func NewCSVTask(p Provider, system string, opts ...TaskOption) *CSVTask {
	return &CSVTask{task: NewTask(p, system, opts...)}
}

// Ask sends input and returns the reply parsed as a Table. Replies that
// never parse (or never validate) within the retry budget return *ErrParse.
func (t *CSVTask) Ask(ctx context.Context, input string) (*Table, error) {
	return askThenParse(ctx, t.task, input, func(s string) (*Table, error) {
		table, err := ParseTable(s)
		if err != nil {
			return nil, err
		}
		if t.Validate != nil {
			if err := t.Validate(table); err != nil {
				return nil, err
			}
		}
		return table, nil
	})
}

// ParseTable extracts the first code block from s and validates it as CSV:
// a header row plus zero or more data rows, every row with the same field
// count. The raw validated text is kept on the Table.
func ParseTable(s string) (*Table, error) {
	text := ExtractCode(s)
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("empty csv reply")
	}

	r := csv.NewReader(strings.NewReader(text))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("csv reply has no rows")
	}

	return &Table{Header: records[0], Rows: records[1:], Raw: text}, nil
}

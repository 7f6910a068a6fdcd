package fiscus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
)

// JSONTask is a Task whose replies must parse as JSON.
type JSONTask struct {
	task *Task
}

// NewJSONTask creates a JSON task over p with the given system prompt.
func NewJSONTask(p Provider, system string, opts ...TaskOption) *JSONTask {
	return &JSONTask{task: NewTask(p, system, opts...)}
}

// Ask sends input and returns the reply parsed as a JSON value
// (map[string]any or []any). Replies that never parse within the retry
// budget return *ErrParse.
func (t *JSONTask) Ask(ctx context.Context, input string) (any, error) {
	return askThenParse(ctx, t.task, input, ParseJSON)
}

// ParseJSON extracts the first code block from s and parses it as JSON.
// When strict parsing fails the text is run through jsonrepair first, which
// fixes the usual LLM damage: single quotes, trailing commas, unquoted keys,
// truncated closers. The top-level value must be an object or an array.
func ParseJSON(s string) (any, error) {
	text := ExtractCode(s)

	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(text)
		if repairErr != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		if err := json.Unmarshal([]byte(repaired), &v); err != nil {
			return nil, fmt.Errorf("parse repaired json: %w", err)
		}
	}

	switch v.(type) {
	case map[string]any, []any:
		return v, nil
	default:
		return nil, fmt.Errorf("top-level json value is %T, want object or array", v)
	}
}

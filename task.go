package fiscus

import (
	"context"
	"fmt"
	"log/slog"
)

// DefaultMaxRetries is how many times a task asks for a reply before giving
// up on getting one that parses.
const DefaultMaxRetries = 5

// Task drives a prompt exchange whose reply must parse into a structured
// value. The system prompt fixes the output contract; Ask-style methods on
// JSONTask and CSVTask send the input and re-ask with corrective feedback
// until the reply parses or the retry budget runs out.
type Task struct {
	provider    Provider
	system      string
	maxRetries  int
	temperature *float64
	logger      *slog.Logger
}

// TaskOption configures a Task.
type TaskOption func(*Task)

// TaskMaxRetries sets how many replies may fail to parse before the task
// returns ErrParse (default: DefaultMaxRetries).
func TaskMaxRetries(n int) TaskOption {
	return func(t *Task) { t.maxRetries = n }
}

// TaskTemperature sets the sampling temperature for every request the task makes.
func TaskTemperature(temp float64) TaskOption {
	return func(t *Task) { t.temperature = &temp }
}

// TaskLogger sets the structured logger for parse-retry events.
func TaskLogger(l *slog.Logger) TaskOption {
	return func(t *Task) { t.logger = l }
}

// NewTask creates a task over p with the given system prompt.
func NewTask(p Provider, system string, opts ...TaskOption) *Task {
	t := &Task{
		provider:   p,
		system:     system,
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = nopLogger
	}
	return t
}

// askThenParse sends input and parses the reply with parse. A reply that
// fails to parse is kept in the conversation together with a corrective user
// message, and the model is asked again, up to t.maxRetries attempts in
// total. Provider errors abort immediately — transport retry is WithRetry's
// job, not the task's.
func askThenParse[T any](ctx context.Context, t *Task, input string, parse func(string) (T, error)) (T, error) {
	var zero T

	msgs := make([]ChatMessage, 0, 2)
	if t.system != "" {
		msgs = append(msgs, SystemMessage(t.system))
	}
	msgs = append(msgs, UserMessage(input))

	var last error
	for attempt := 1; attempt <= t.maxRetries; attempt++ {
		resp, err := t.provider.Chat(ctx, ChatRequest{Messages: msgs, Temperature: t.temperature})
		if err != nil {
			return zero, err
		}

		v, err := parse(resp.Content)
		if err == nil {
			return v, nil
		}
		last = err
		t.logger.Warn("reply failed to parse",
			"provider", t.provider.Name(),
			"attempt", attempt,
			"max_retries", t.maxRetries,
			"error", err)
		msgs = append(msgs, AssistantMessage(resp.Content), UserMessage(parseFeedback(err)))
	}

	t.logger.Error("parse attempts exhausted",
		"provider", t.provider.Name(),
		"attempts", t.maxRetries,
		"error", last)
	return zero, &ErrParse{Attempts: t.maxRetries, Last: last}
}

func parseFeedback(err error) string {
	return fmt.Sprintf("The previous reply could not be parsed: %v. Answer again with only the requested format.", err)
}

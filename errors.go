package fiscus

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

type ErrLLM struct {
	Provider string
	Message  string
}

func (e *ErrLLM) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

type ErrHTTP struct {
	Status int
	Body   string
	// RetryAfter is the server-requested wait before retrying, parsed from
	// the Retry-After header. Zero when the header was absent or unparsable.
	RetryAfter time.Duration
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Body)
}

// Transient reports whether the status is worth retrying (429 or 503).
func (e *ErrHTTP) Transient() bool {
	return e.Status == 429 || e.Status == 503
}

// ParseRetryAfter parses a Retry-After header value: either delta-seconds
// ("120") or an HTTP-date. Returns 0 for empty, unparsable, or past values.
func ParseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// ErrParse is returned when an LLM reply never parsed into the expected
// structure within the task's retry budget.
type ErrParse struct {
	Attempts int
	Last     error
}

func (e *ErrParse) Error() string {
	return fmt.Sprintf("reply did not parse after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ErrParse) Unwrap() error { return e.Last }

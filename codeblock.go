package fiscus

import "strings"

// ExtractCode returns the body of the first fenced code block in s, with any
// language tag on the opening fence ignored. When s has no complete fence the
// whole trimmed string is returned, so parsers can run on bare replies too.
func ExtractCode(s string) string {
	trimmed := strings.TrimSpace(s)

	start := strings.Index(trimmed, "```")
	if start == -1 {
		return trimmed
	}
	rest := trimmed[start+3:]

	// The opening fence line holds at most a language tag; content starts
	// on the next line.
	nl := strings.IndexByte(rest, '\n')
	if nl == -1 {
		return trimmed
	}
	body := rest[nl+1:]

	end := strings.Index(body, "```")
	if end == -1 {
		// Unclosed fence: the model ran out of tokens mid-block. Take what came.
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(body[:end])
}

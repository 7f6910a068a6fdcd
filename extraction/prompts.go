package extraction

import "embed"

// promptFS holds the system prompts for the extraction tasks. They live in
// files rather than string literals so they can be reviewed and edited as
// plain markdown.
//
//go:embed prompts
var promptFS embed.FS

func promptText(name string) string {
	data, err := promptFS.ReadFile("prompts/" + name)
	if err != nil {
		panic("extraction: missing embedded prompt " + name)
	}
	return string(data)
}

var (
	paramsPrompt     = promptText("params_extract.md")
	tableFixPrompt   = promptText("table_fix.md")
	textFixPrompt    = promptText("text_fix.md")
	categorizePrompt = promptText("categorize.md")
)

package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/nevindra/fiscus/extraction"
)

var (
	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// errorStyle for error messages
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// warnStyle for warnings and interruptions
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// pageReporter returns an OnPage callback that prints one progress line per
// page/artifact step.
func pageReporter(w io.Writer) func(extraction.PageEvent) {
	return func(ev extraction.PageEvent) {
		page := dimStyle.Render(fmt.Sprintf("page %d/%d", ev.Page, ev.Total))
		mark := successStyle.Render("✓")
		if ev.Skipped {
			mark = dimStyle.Render("skipped")
		}
		fmt.Fprintf(w, "%s  %s %s\n", page, ev.Artifact, mark)
	}
}

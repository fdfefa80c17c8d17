package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const markdownStyle = "dark"

// renderMarkdown falls back to the raw source when glamour cannot render.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	// Fixed style instead of WithAutoStyle: auto detection queries the
	// terminal and can block.
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(markdownStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

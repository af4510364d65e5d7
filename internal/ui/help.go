package ui

import "github.com/charmbracelet/glamour"

const helpMarkdown = `# mavscope

Watches a fixed set of MAVLink messages and shows arrival counts, rates,
and recency, refreshed every second.

## Columns

- **Total** — messages received since the session started
- **Rate (Hz)** — total divided by whole seconds of runtime
- **Last Seen** — time since the most recent arrival, or Never

## Keys

- ` + "`?`" + ` toggle this help
- ` + "`esc`" + ` close this help
- ` + "`q`" + ` quit
`

// RenderHelp renders the help overlay. On a glamour failure the raw
// markdown is shown rather than nothing.
func RenderHelp(width int) string {
	if width <= 0 {
		width = 78
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}

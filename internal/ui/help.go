package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpIntro = `Folders and dashboards come from Grafana search. Select rows with
**space**, then **d** deletes or **m** moves them. Deleting a folder deletes
every dashboard inside it.`

// helpMarkdown builds the help text from the key map so bindings and help
// never drift apart.
func helpMarkdown(keys keyMap) string {
	var b strings.Builder
	b.WriteString("# Keyboard shortcuts\n\n")
	b.WriteString(helpIntro)
	b.WriteString("\n\n")

	for i, group := range keys.FullHelp() {
		title := "More"
		if i < len(helpGroupTitles) {
			title = helpGroupTitles[i]
		}
		fmt.Fprintf(&b, "## %s\n\n| Key | Action |\n| --- | --- |\n", title)
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderMarkdown renders md for the terminal, falling back to the raw text
// when glamour cannot build a renderer.
func renderMarkdown(md string, wrap int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
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

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	content := m.helpText
	if content == "" {
		content = renderMarkdown(helpMarkdown(m.keys), helpWidth-6)
	}

	lines := strings.Split(content, "\n")
	if limit := m.height - 4; limit > 0 && len(lines) > limit {
		lines = append(lines[:limit-1], m.theme.Styles().FaintText.Render("… resize the terminal to see more"))
	}
	return placeModal(m.theme, m.width, m.height, helpWidth, m.theme.Accent, strings.Join(lines, "\n"))
}

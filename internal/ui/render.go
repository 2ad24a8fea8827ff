package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// BgStyle renders segments over a fixed background color. Styling each word
// and joining with pre-styled spaces keeps the background continuous where
// lipgloss would otherwise emit resets between segments.
type BgStyle struct {
	bg    lipgloss.Color
	space string
}

// NewBgStyle creates a background helper for the given color.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render renders text with style, giving every cell the background color.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	wordStyle := style.Background(b.bg)
	if !strings.Contains(text, " ") {
		return wordStyle.Render(text)
	}
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = wordStyle.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// Space returns a single styled space.
func (b BgStyle) Space() string {
	return b.space
}

// Spaces returns n styled spaces.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(b.bg).Render(strings.Repeat(" ", n))
}

// Join joins rendered parts with a styled separator.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, lipgloss.NewStyle().Background(b.bg).Render(sep))
}

// FillLine pads rendered content to width with the background color.
func (b BgStyle) FillLine(content string, width int) string {
	return lipgloss.NewStyle().Background(b.bg).Width(width).MaxWidth(width).Render(content)
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐. Content lines are padded or cut to fit.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor, bgColor := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColor = m.theme.BorderFocus
	}
	bg := NewBgStyle(bgColor)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	title = truncate(title, innerWidth-4)
	titleWidth := runewidth.StringWidth(title) + 2
	leftPad := (innerWidth - titleWidth) / 2
	rightPad := innerWidth - titleWidth - leftPad
	if leftPad < 0 {
		leftPad, rightPad = 0, 0
	}

	var b strings.Builder
	b.WriteString(bg.Render("┌"+strings.Repeat("─", leftPad), borderStyle))
	b.WriteString(bg.Render(" "+title+" ", titleStyle))
	b.WriteString(bg.Render(strings.Repeat("─", rightPad)+"┐", borderStyle))
	b.WriteString("\n")

	lines := strings.Split(content, "\n")
	side := bg.Render("│", borderStyle)
	for i := 0; i < height-2; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		b.WriteString(side + bg.FillLine(line, innerWidth) + side + "\n")
	}

	b.WriteString(bg.Render("└"+strings.Repeat("─", innerWidth)+"┘", borderStyle))
	return b.String()
}

// renderChips renders each tag as a colored chip separated by bg spaces.
func renderChips(styles Styles, bg BgStyle, tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	chips := make([]string, 0, len(tags))
	for _, tag := range tags {
		chips = append(chips, styles.TagStyle(tag).Render(tag))
	}
	return strings.Join(chips, bg.Space())
}

// placeModal centers a bordered box over the full screen.
func placeModal(theme Theme, width, height, boxWidth int, borderColor, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Padding(1, 2).
		Width(boxWidth).
		Render(content)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

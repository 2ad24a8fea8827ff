package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/five82/boardwalk/internal/manage"
)

// tagPickedMsg reports a tag chosen in the picker.
type tagPickedMsg struct {
	option manage.TagOption
}

// tagPicker narrows the tag filter options with fuzzy matching.
type tagPicker struct {
	options []manage.TagOption
	labels  []string
	active  []string
	input   textinput.Model
	matches []int
	cursor  int
}

func newTagPicker(options []manage.TagOption, active []string) *tagPicker {
	input := textinput.New()
	input.Prompt = "tag: "
	input.Placeholder = "type to narrow"
	input.CharLimit = 64
	input.Focus()

	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.Label
	}

	p := &tagPicker{
		options: options,
		labels:  labels,
		active:  active,
		input:   input,
	}
	p.filter()
	return p
}

func (p *tagPicker) Init() tea.Cmd {
	return textinput.Blink
}

// filter recomputes matches from the input. An empty input lists every option
// in its original order; otherwise matches are ranked by fuzzy score.
func (p *tagPicker) filter() {
	p.matches = p.matches[:0]
	pattern := strings.TrimSpace(p.input.Value())
	if pattern == "" {
		for i := range p.options {
			p.matches = append(p.matches, i)
		}
	} else {
		for _, match := range fuzzy.Find(pattern, p.labels) {
			p.matches = append(p.matches, match.Index)
		}
	}
	p.cursor = clamp(p.cursor, 0, len(p.matches)-1)
}

func (p *tagPicker) selected() (manage.TagOption, bool) {
	if len(p.matches) == 0 {
		return manage.TagOption{}, false
	}
	return p.options[p.matches[p.cursor]], true
}

func (p *tagPicker) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd, false
	}

	switch {
	case key.Matches(k, keys.Escape):
		return p, nil, true
	case key.Matches(k, keys.Confirm):
		option, ok := p.selected()
		if !ok {
			return p, nil, false
		}
		return p, func() tea.Msg { return tagPickedMsg{option: option} }, true
	}

	switch k.String() {
	case "up", "ctrl+p":
		if p.cursor > 0 {
			p.cursor--
		}
		return p, nil, false
	case "down", "ctrl+n":
		if p.cursor < len(p.matches)-1 {
			p.cursor++
		}
		return p, nil, false
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.filter()
	return p, cmd, false
}

func (p *tagPicker) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Filter by tag"))
	b.WriteString("\n\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	if len(p.matches) == 0 {
		b.WriteString(styles.MutedText.Render("No matching tags"))
		return placeModal(theme, width, height, modalWidth, theme.BorderFocus, b.String())
	}

	start := 0
	if p.cursor >= tagPickerRows {
		start = p.cursor - tagPickerRows + 1
	}
	end := min(start+tagPickerRows, len(p.matches))
	for i := start; i < end; i++ {
		option := p.options[p.matches[i]]
		marker := "  "
		if i == p.cursor {
			marker = styles.AccentText.Render("> ")
		}
		line := marker + styles.TagStyle(option.Value).Render(truncate(option.Label, modalWidth-12))
		if slices.Contains(p.active, option.Value) {
			line += styles.SuccessText.Render(" ✓")
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if hidden := len(p.matches) - end; hidden > 0 {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("… " + pluralize(hidden, "more tag")))
	}

	return placeModal(theme, width, height, modalWidth, theme.BorderFocus, b.String())
}

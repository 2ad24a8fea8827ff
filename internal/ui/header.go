package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/boardwalk/internal/manage"
)

// renderHeader renders the top bar: logo, scope, user and list counts.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("boardwalk", styles.Logo)}
	parts = append(parts, bg.Render(m.scopeLabel(), styles.AccentText.Bold(true)))

	if m.login != "" {
		role := "viewer"
		switch {
		case m.view.IsEditor:
			role = "editor"
		case m.view.HasEditPermissionInFolders:
			role = "folder editor"
		}
		parts = append(parts,
			bg.Render(m.login, styles.Text)+bg.Space()+bg.Render(role, styles.MutedText))
	}

	if m.view.FolderUID != "" && m.view.Loaded && !m.view.CanSave {
		parts = append(parts, bg.Render("read-only folder", styles.WarningText))
	}

	if m.view.Loaded {
		folders, dashboards, selected := listCounts(m.view.Sections)
		parts = append(parts,
			bg.Render(pluralize(folders, "folder"), styles.MutedText),
			bg.Render(pluralize(dashboards, "dashboard"), styles.MutedText))
		if selected > 0 {
			parts = append(parts, bg.Render(fmt.Sprintf("%d selected", selected), styles.WarningText.Bold(true)))
		}
	}

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(strings.Join(parts, sep))
}

func (m Model) scopeLabel() string {
	switch {
	case m.view.FolderUID != "":
		return "Folder " + m.view.FolderUID
	case m.view.FolderID != 0:
		return fmt.Sprintf("Folder #%d", m.view.FolderID)
	default:
		return "All dashboards"
	}
}

// listCounts counts folder rows, loaded dashboards and checked rows.
func listCounts(sections []manage.Section) (folders, dashboards, selected int) {
	var countItems func(items []manage.Item)
	countItems = func(items []manage.Item) {
		for _, it := range items {
			dashboards++
			if it.Checked {
				selected++
			}
			countItems(it.Items)
		}
	}
	for _, s := range sections {
		if !s.IsGeneral() && !s.HideHeader {
			folders++
			if s.Checked {
				selected++
			}
		}
		countItems(s.Items)
	}
	return folders, dashboards, selected
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct {
		key, desc string
		enabled   bool
	}
	canEdit := m.view.CanEdit()
	commands := []cmd{
		{"/", "Search", true},
		{"t", "Tag", true},
		{"s", ternary(m.view.Query.Starred, "Unstar", "Starred"), true},
		{"space", "Select", canEdit},
		{"a", ternary(m.view.SelectAllChecked, "None", "All"), canEdit},
		{"d", "Delete", canEdit && m.view.CanDelete},
		{"m", "Move", canEdit && m.view.CanMove},
		{"y", "Copy URL", true},
		{"?", "More", true},
	}
	if m.view.HasFilters {
		commands = slices.Insert(commands, 3, cmd{"c", "Clear", true})
	}

	colon := bg.Render(":", styles.FaintText)
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		keyStyle, descStyle := styles.AccentText, styles.MutedText
		if !c.enabled {
			keyStyle, descStyle = styles.FaintText, styles.FaintText
		}
		segments = append(segments, bg.Render(c.key, keyStyle)+colon+bg.Render(c.desc, descStyle))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(bg.Join(segments, "  "))
}

// renderFilterBar shows the query input, tag chips and the starred filter.
func (m Model) renderFilterBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	var parts []string
	if m.editing {
		parts = append(parts, m.query.View())
	} else {
		text := m.view.Query.Text
		if text == "" {
			parts = append(parts, bg.Render("/ Search dashboards by name", styles.FaintText))
		} else {
			parts = append(parts, bg.Render("/", styles.AccentText)+bg.Space()+bg.Render(text, styles.Text))
		}
	}

	if len(m.view.Query.Tags) > 0 {
		parts = append(parts, bg.Render("tags", styles.FaintText)+bg.Space()+renderChips(styles, bg, m.view.Query.Tags))
	}
	if m.view.Query.Starred {
		parts = append(parts, bg.Render("★ "+m.view.SelectedStarredFilter, styles.WarningText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Padding(0, 1).
		Width(m.width).
		MaxWidth(m.width).
		Render(bg.Join(parts, "   "))
}

// renderStatusLine shows progress, the last error or the last result.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var content string
	switch {
	case m.pending > 0:
		content = m.spinner.View() + bg.Space() + bg.Render("Loading…", styles.MutedText)
	case m.status != "" && m.statusErr:
		content = bg.Render(truncate(m.status, m.width-4), styles.DangerText)
	case m.status != "":
		content = bg.Render(truncate(m.status, m.width-4), styles.SuccessText)
	default:
		content = bg.Render("Ready", styles.FaintText)
	}
	return styles.Header.Width(m.width).MaxWidth(m.width).Render(content)
}

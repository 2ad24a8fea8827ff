package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/five82/boardwalk/internal/manage"
)

// row is one visible line of the list: a section header or an item. path
// indexes the item within its section, one entry per nesting level.
type row struct {
	section int
	path    []int
	depth   int
}

func (r row) isSection() bool { return len(r.path) == 0 }

// flattenRows lists the visible rows. Hidden section headers are skipped but
// their items stay visible; collapsed sections show only their header.
func flattenRows(sections []manage.Section) []row {
	var rows []row
	for i, s := range sections {
		if !s.HideHeader {
			rows = append(rows, row{section: i})
		}
		if s.Expanded || s.HideHeader {
			depth := 1
			if s.HideHeader {
				depth = 0
			}
			rows = appendItemRows(rows, i, nil, s.Items, depth)
		}
	}
	return rows
}

func appendItemRows(rows []row, section int, parent []int, items []manage.Item, depth int) []row {
	for j, it := range items {
		path := append(slices.Clone(parent), j)
		rows = append(rows, row{section: section, path: path, depth: depth})
		if len(it.Items) > 0 {
			rows = appendItemRows(rows, section, path, it.Items, depth+1)
		}
	}
	return rows
}

// itemAt resolves an item row against sections.
func itemAt(sections []manage.Section, r row) (manage.Item, bool) {
	if r.section < 0 || r.section >= len(sections) || r.isSection() {
		return manage.Item{}, false
	}
	items := sections[r.section].Items
	var it manage.Item
	for _, idx := range r.path {
		if idx < 0 || idx >= len(items) {
			return manage.Item{}, false
		}
		it = items[idx]
		items = it.Items
	}
	return it, true
}

// rowKey identifies a row across refreshes.
func rowKey(sections []manage.Section, r row) string {
	if r.section < 0 || r.section >= len(sections) {
		return ""
	}
	if r.isSection() {
		return "s:" + sections[r.section].UID + ":" + sections[r.section].Title
	}
	if it, ok := itemAt(sections, r); ok {
		return "i:" + it.UID
	}
	return ""
}

// rowURL is the Grafana URL of the row's folder or dashboard.
func rowURL(sections []manage.Section, r row) string {
	if r.isSection() {
		if r.section >= 0 && r.section < len(sections) {
			return sections[r.section].URL
		}
		return ""
	}
	it, _ := itemAt(sections, r)
	return it.URL
}

// renderRows renders every row at the given inner width. The cursor row is
// highlighted.
func (m Model) renderRows(width int) string {
	if len(m.rows) == 0 {
		styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
		msg := "No dashboards found"
		if m.view.HasFilters {
			msg = "No dashboards matching your query were found"
		}
		if !m.view.Loaded {
			msg = "Loading dashboards…"
		}
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, styles.MutedText.Render(msg),
			lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.SurfaceAlt)))
	}

	lines := make([]string, len(m.rows))
	for i, r := range m.rows {
		lines[i] = m.renderRow(r, width, i == m.cursor)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(r row, width int, selected bool) string {
	bgColor := m.theme.SurfaceAlt
	if selected {
		bgColor = m.theme.SelectionBg
	}
	styles := m.theme.Styles().WithBackground(bgColor)
	if selected {
		styles.Text = styles.Selected
	}
	bg := NewBgStyle(bgColor)

	if r.isSection() {
		return bg.FillLine(m.renderSectionRow(m.view.Sections[r.section], styles, bg, width), width)
	}
	it, ok := itemAt(m.view.Sections, r)
	if !ok {
		return bg.FillLine("", width)
	}
	return bg.FillLine(m.renderItemRow(it, r.depth, styles, bg, width), width)
}

func (m Model) renderSectionRow(s manage.Section, styles Styles, bg BgStyle, width int) string {
	arrow := ternary(s.Expanded, "▾", "▸")
	icon := ternary(s.Icon == manage.IconFolderOpen, "📂", "📁")

	left := bg.Render(checkbox(s.Checked), styles.AccentText) + bg.Space() +
		bg.Render(arrow, styles.MutedText) + bg.Space() +
		bg.Render(icon, styles.Text) + bg.Space()

	var suffix string
	if n := len(s.Items); n > 0 {
		suffix = pluralize(n, "dashboard")
	}

	used := runewidth.StringWidth(checkbox(false)+" "+arrow+" "+icon+" ") + runewidth.StringWidth(suffix) + 2
	title := truncate(s.Title, width-used)
	line := left + bg.Render(title, styles.Text.Bold(true))
	if suffix != "" {
		gap := width - used - runewidth.StringWidth(title) + 1
		line += bg.Spaces(gap) + bg.Render(suffix, styles.FaintText)
	}
	return line
}

func (m Model) renderItemRow(it manage.Item, depth int, styles Styles, bg BgStyle, width int) string {
	indent := strings.Repeat("  ", depth)
	star := ternary(it.IsStarred, "★", " ")

	prefix := indent + checkbox(false) + " " + star + " "
	left := bg.Spaces(len(indent)) + bg.Render(checkbox(it.Checked), styles.AccentText) + bg.Space() +
		bg.Render(star, styles.WarningText) + bg.Space()

	var right string
	rightWidth := 0
	if m.view.HasFilters && it.FolderTitle != "" && width >= LayoutWideWidth {
		folder := truncate(it.FolderTitle, 24)
		right = bg.Render("📁 "+folder, styles.FaintText)
		rightWidth = runewidth.StringWidth("📁 "+folder) + 1
	}
	if m.showTags && len(it.Tags) > 0 && width >= LayoutCompactWidth {
		tags := visibleTags(it.Tags, width/3)
		if len(tags) > 0 {
			chips := renderChips(styles, bg, tags)
			if right != "" {
				chips += bg.Spaces(2)
				rightWidth++
			}
			right = chips + right
			rightWidth += lipgloss.Width(chips) + 1
		}
	}

	avail := width - runewidth.StringWidth(prefix) - rightWidth - 1
	title := truncate(it.Title, avail)
	line := left + bg.Render(title, styles.Text)
	if right != "" {
		gap := width - runewidth.StringWidth(prefix) - runewidth.StringWidth(title) - rightWidth
		line += bg.Spaces(max(gap, 1)) + right
	}
	return line
}

// visibleTags keeps the leading tags whose chips fit in maxWidth cells.
func visibleTags(tags []string, maxWidth int) []string {
	used := 0
	for i, tag := range tags {
		used += runewidth.StringWidth(tag) + 3 // padding and separator
		if used > maxWidth {
			return tags[:i]
		}
	}
	return tags
}

func checkbox(checked bool) string {
	return ternary(checked, "[x]", "[ ]")
}

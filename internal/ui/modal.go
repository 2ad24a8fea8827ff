package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/five82/boardwalk/internal/grafana"
	"github.com/five82/boardwalk/internal/manage"
)

// Modal is the interface for modal dialogs.
// Update returns the updated modal, a command, and whether the modal should close.
type Modal interface {
	Init() tea.Cmd
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmedMsg reports an accepted prompt.
type confirmedMsg struct {
	prompt manage.Prompt
}

// moveTargetMsg reports the folder picked for a move.
type moveTargetMsg struct {
	req    moveRequest
	folder grafana.Folder
}

// confirmModal shows a manage.Prompt as a yes/no form.
type confirmModal struct {
	prompt    manage.Prompt
	form      *huh.Form
	confirmed *bool
}

func newConfirmModal(p manage.Prompt) *confirmModal {
	confirmed := new(bool)
	desc := p.Text
	if p.Text2 != "" {
		desc += "\n\n" + p.Text2
	}
	yes := p.YesText
	if yes == "" {
		yes = "Yes"
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(p.Title).
			Description(desc).
			Affirmative(yes).
			Negative("Cancel").
			Value(confirmed),
	)).WithShowHelp(false).WithWidth(modalWidth - 6)

	return &confirmModal{prompt: p, form: form, confirmed: confirmed}
}

func (c *confirmModal) Init() tea.Cmd {
	return c.form.Init()
}

func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keys.Escape) {
		return c, nil, true
	}

	model, cmd := c.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		c.form = f
	}

	switch c.form.State {
	case huh.StateCompleted:
		return c, c.resolve(*c.confirmed), true
	case huh.StateAborted:
		return c, nil, true
	}
	return c, cmd, false
}

// resolve emits confirmedMsg when the prompt was accepted.
func (c *confirmModal) resolve(accepted bool) tea.Cmd {
	if !accepted {
		return nil
	}
	p := c.prompt
	return func() tea.Msg { return confirmedMsg{prompt: p} }
}

func (c *confirmModal) View(theme Theme, width, height int) string {
	return placeModal(theme, width, height, modalWidth, theme.Danger, c.form.View())
}

// moveModal picks the destination folder for a move. The General folder is
// always the first option.
type moveModal struct {
	req     moveRequest
	folders []grafana.Folder
	form    *huh.Form
	target  *int64
}

func newMoveModal(req moveRequest, folders []grafana.Folder) *moveModal {
	all := make([]grafana.Folder, 0, len(folders)+1)
	all = append(all, grafana.Folder{ID: manage.GeneralFolderID, Title: "General"})
	all = append(all, folders...)

	options := make([]huh.Option[int64], 0, len(all))
	for _, f := range all {
		options = append(options, huh.NewOption(f.Title, f.ID))
	}

	target := new(int64)
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int64]().
			Title(fmt.Sprintf("Move %s to", pluralize(len(req.dashboardUIDs), "dashboard"))).
			Options(options...).
			Height(min(len(options)+2, moveSelectRows)).
			Value(target),
	)).WithShowHelp(false).WithWidth(modalWidth - 6)

	return &moveModal{req: req, folders: all, form: form, target: target}
}

func (mm *moveModal) Init() tea.Cmd {
	return mm.form.Init()
}

func (mm *moveModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keys.Escape) {
		return mm, nil, true
	}

	model, cmd := mm.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		mm.form = f
	}

	switch mm.form.State {
	case huh.StateCompleted:
		return mm, mm.resolve(*mm.target), true
	case huh.StateAborted:
		return mm, nil, true
	}
	return mm, cmd, false
}

// resolve emits moveTargetMsg for the folder with the given id.
func (mm *moveModal) resolve(folderID int64) tea.Cmd {
	for _, f := range mm.folders {
		if f.ID != folderID {
			continue
		}
		msg := moveTargetMsg{req: mm.req, folder: f}
		return func() tea.Msg { return msg }
	}
	return nil
}

func (mm *moveModal) View(theme Theme, width, height int) string {
	return placeModal(theme, width, height, modalWidth, theme.BorderFocus, mm.form.View())
}

// moveSummary describes a finished move for the status line.
func moveSummary(res grafana.MoveResult, folderTitle string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Moved %s to %s", pluralize(res.Moved, "dashboard"), folderTitle)
	if res.AlreadyInFolder > 0 {
		fmt.Fprintf(&b, " (%d already there)", res.AlreadyInFolder)
	}
	return b.String()
}

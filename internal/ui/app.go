package ui

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/boardwalk/internal/grafana"
	"github.com/five82/boardwalk/internal/manage"
	"github.com/five82/boardwalk/internal/prefs"
)

// FolderBackend lists move targets and moves dashboards between folders.
type FolderBackend interface {
	Folders(ctx context.Context) ([]grafana.Folder, error)
	MoveDashboards(ctx context.Context, dashboardUIDs []string, folderID int64) (grafana.MoveResult, error)
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *manage.Controller
	// Host must be the Confirmer and Mover the controller was built with.
	Host    *Host
	Folders FolderBackend
	// BaseURL turns relative Grafana URLs into copyable links.
	BaseURL   string
	Login     string
	ThemeName string
	ShowTags  bool
	PrefsPath string
	Logger    *slog.Logger
	// CopyText defaults to the system clipboard.
	CopyText func(string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctrl      *manage.Controller
	host      *Host
	folders   FolderBackend
	baseURL   string
	login     string
	prefsPath string
	logger    *slog.Logger
	copyText  func(string) error
	keys      keyMap

	// UI state
	theme    Theme
	showTags bool
	width    int
	height   int
	ready    bool

	// Data state
	view   manage.View
	rows   []row
	cursor int
	list   viewport.Model

	// Background work
	pending int
	spinner spinner.Model

	// Query editing
	query   textinput.Model
	editing bool

	// Overlays
	modal    Modal
	showHelp bool
	helpText string

	status    string
	statusErr bool
}

// New creates the model. The first refresh is issued by Init.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	host := opts.Host
	if host == nil {
		host = NewHost()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	copyText := opts.CopyText
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	query := textinput.New()
	query.Prompt = "/ "
	query.Placeholder = "Search dashboards by name"
	query.CharLimit = 256

	return Model{
		ctx:       ctx,
		ctrl:      opts.Controller,
		host:      host,
		folders:   opts.Folders,
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		login:     opts.Login,
		prefsPath: prefsPath,
		logger:    logger,
		copyText:  copyText,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(opts.ThemeName),
		showTags:  opts.ShowTags,
		view:      opts.Controller.Snapshot(),
		pending:   1,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		query:     query,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchCmd(m.ctx, "refresh", "", m.ctrl.Refresh()),
		m.spinner.Tick,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.list = viewport.New(0, 0)
		}
		m.ready = true
		m.helpText = ""
		m.resize()
		return m, nil

	case fetchDoneMsg:
		return m.handleFetchDone(msg)

	case foldersMsg:
		return m.handleFolders(msg)

	case confirmedMsg:
		return m, m.start("delete", "Deleted selection", msg.prompt.OnConfirm)

	case moveTargetMsg:
		tick := m.tickIfIdle()
		m.pending++
		return m, tea.Batch(moveCmd(m.ctx, m.folders, msg.req, msg.folder), tick)

	case tagPickedMsg:
		return m, m.start("tag filter", "", m.ctrl.OnTagFilterChange(msg.option))

	case copiedMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard write failed", slog.Any("error", msg.err))
			m.setStatus("Copy failed: "+msg.err.Error(), true)
		} else {
			m.setStatus("Copied "+msg.text, false)
		}
		return m, nil

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}
	if m.editing {
		var cmd tea.Cmd
		m.query, cmd = m.query.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.modal != nil {
		return m.updateModal(msg)
	}
	if m.editing {
		return m.handleQueryKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		if m.helpText == "" {
			m.helpText = renderMarkdown(helpMarkdown(m.keys), helpWidth-6)
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.refreshList()
		return m, nil

	case key.Matches(msg, m.keys.ToggleTags):
		m.showTags = !m.showTags
		m.savePrefs()
		m.refreshList()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.status, m.statusErr = "", false
		return m, nil

	case key.Matches(msg, m.keys.EditQuery):
		m.editing = true
		m.query.SetValue(m.view.Query.Text)
		m.query.CursorEnd()
		return m, m.query.Focus()

	case key.Matches(msg, m.keys.TagPicker):
		if len(m.view.TagOptions) == 0 {
			m.setStatus("No tags to filter by", true)
			return m, nil
		}
		m.modal = newTagPicker(m.view.TagOptions, m.view.Query.Tags)
		return m, m.modal.Init()

	case key.Matches(msg, m.keys.RemoveTag):
		tags := m.view.Query.Tags
		if len(tags) == 0 {
			return m, nil
		}
		return m, m.start("remove tag", "", m.ctrl.RemoveTag(tags[len(tags)-1]))

	case key.Matches(msg, m.keys.Starred):
		if m.view.Query.Starred {
			return m, m.start("starred filter", "", m.ctrl.RemoveStarred())
		}
		return m, m.start("starred filter", "", m.ctrl.OnStarredFilterChange(true))

	case key.Matches(msg, m.keys.ClearFilters):
		return m, m.start("clear filters", "", m.ctrl.ClearFilters())

	case key.Matches(msg, m.keys.Refresh):
		return m, m.start("refresh", "", m.ctrl.Refresh())

	case key.Matches(msg, m.keys.ToggleRow):
		if m.blockReadOnly() {
			return m, nil
		}
		m.toggleRow()
		return m, nil

	case key.Matches(msg, m.keys.SelectAll):
		if m.blockReadOnly() {
			return m, nil
		}
		m.ctrl.ToggleSelectAll()
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		return m.toggleFolder(func(manage.Section) bool { return true })

	case key.Matches(msg, m.keys.Expand):
		return m.toggleFolder(func(s manage.Section) bool { return !s.Expanded })

	case key.Matches(msg, m.keys.Collapse):
		if r, ok := m.currentRow(); ok && !r.isSection() {
			m.jumpToSection(r.section)
			return m, nil
		}
		return m.toggleFolder(func(s manage.Section) bool { return s.Expanded })

	case key.Matches(msg, m.keys.Delete):
		return m.deleteSelection()

	case key.Matches(msg, m.keys.Move):
		return m.moveSelection()

	case key.Matches(msg, m.keys.CopyURL):
		r, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		rel := rowURL(m.view.Sections, r)
		if rel == "" {
			m.setStatus("Row has no URL", true)
			return m, nil
		}
		return m, copyCmd(m.copyText, absoluteURL(m.baseURL, rel))

	case key.Matches(msg, m.keys.CopyNew):
		return m, copyCmd(m.copyText, absoluteURL(m.baseURL, m.ctrl.CreateDashboardURL()))

	case key.Matches(msg, m.keys.CopyImport):
		return m, copyCmd(m.copyText, absoluteURL(m.baseURL, m.ctrl.ImportDashboardURL()))
	}

	m.handleNavKey(msg)
	return m, nil
}

// handleQueryKey edits the text query. Enter applies it, esc discards it.
func (m Model) handleQueryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.editing = false
		m.query.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.editing = false
		m.query.Blur()
		text := strings.TrimSpace(m.query.Value())
		if text == m.view.Query.Text {
			return m, nil
		}
		return m, m.start("search", "", m.ctrl.SetQueryText(text))
	}

	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	return m, cmd
}

func (m *Model) handleNavKey(msg tea.KeyMsg) {
	if len(m.rows) == 0 {
		return
	}
	page := max(m.list.Height-1, 1)
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.rows) - 1
	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= page
	case key.Matches(msg, m.keys.PageDown):
		m.cursor += page
	default:
		return
	}
	m.cursor = clamp(m.cursor, 0, len(m.rows)-1)
	m.refreshList()
}

func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	modal, cmd, closed := m.modal.Update(msg, m.keys)
	if closed {
		m.modal = nil
	} else {
		m.modal = modal
	}
	return m, cmd
}

func (m *Model) toggleRow() {
	r, ok := m.currentRow()
	if !ok {
		return
	}
	if r.isSection() {
		m.ctrl.ToggleSection(r.section)
	} else {
		m.ctrl.ToggleItem(r.section, r.path...)
	}
	m.sync()
}

// toggleFolder flips the folder under the cursor when want approves it.
func (m Model) toggleFolder(want func(manage.Section) bool) (tea.Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok || !r.isSection() || !want(m.view.Sections[r.section]) {
		return m, nil
	}
	return m, m.start("load folder", "", m.ctrl.ToggleFolder(r.section))
}

func (m *Model) jumpToSection(section int) {
	for i, r := range m.rows {
		if r.section == section && r.isSection() {
			m.cursor = i
			m.refreshList()
			return
		}
	}
}

func (m Model) deleteSelection() (tea.Model, tea.Cmd) {
	if m.blockReadOnly() {
		return m, nil
	}
	if !m.view.CanDelete || !m.ctrl.Delete() {
		m.setStatus("Select folders or dashboards to delete", true)
		return m, nil
	}
	prompt, ok := m.host.takePrompt()
	if !ok {
		return m, nil
	}
	m.modal = newConfirmModal(prompt)
	return m, m.modal.Init()
}

func (m Model) moveSelection() (tea.Model, tea.Cmd) {
	if m.blockReadOnly() {
		return m, nil
	}
	if !m.view.CanMove || !m.ctrl.MoveTo() {
		m.setStatus("Select dashboards to move", true)
		return m, nil
	}
	req, ok := m.host.takeMove()
	if !ok {
		return m, nil
	}
	if m.folders == nil {
		m.setStatus("Moving dashboards is not available", true)
		return m, nil
	}
	tick := m.tickIfIdle()
	m.pending++
	return m, tea.Batch(loadFoldersCmd(m.ctx, m.folders, req), tick)
}

// blockReadOnly reports whether editing is off and sets the status hint.
func (m *Model) blockReadOnly() bool {
	if m.view.CanEdit() {
		return false
	}
	m.setStatus("No permission to edit dashboards here", true)
	return true
}

func (m Model) handleFolders(msg foldersMsg) (tea.Model, tea.Cmd) {
	m.done()
	if msg.err != nil {
		m.logger.Error("load folders failed", slog.Any("error", msg.err))
		m.setStatus("Load folders: "+msg.err.Error(), true)
		return m, nil
	}
	m.modal = newMoveModal(msg.req, msg.folders)
	return m, m.modal.Init()
}

func (m Model) handleFetchDone(msg fetchDoneMsg) (tea.Model, tea.Cmd) {
	m.done()
	m.sync()

	switch {
	case msg.err == nil:
		if msg.success != "" {
			m.setStatus(msg.success, false)
		} else if m.statusErr {
			m.status, m.statusErr = "", false
		}
	case errors.Is(msg.err, manage.ErrSuperseded), errors.Is(msg.err, context.Canceled):
		m.logger.Debug("discarded stale result", slog.String("op", msg.op))
		if msg.success != "" {
			m.setStatus(msg.success, false)
		}
	default:
		m.logger.Error("operation failed", slog.String("op", msg.op), slog.Any("error", msg.err))
		m.setStatus(msg.err.Error(), true)
	}
	return m, nil
}

// start runs f in the background after the controller's synchronous state
// change has been rendered.
func (m *Model) start(op, success string, f manage.Fetch) tea.Cmd {
	m.sync()
	if f == nil {
		return nil
	}
	tick := m.tickIfIdle()
	m.pending++
	return tea.Batch(fetchCmd(m.ctx, op, success, f), tick)
}

func (m *Model) tickIfIdle() tea.Cmd {
	if m.pending > 0 {
		return nil
	}
	return m.spinner.Tick
}

func (m *Model) done() {
	if m.pending > 0 {
		m.pending--
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, ShowTags: m.showTags}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", slog.Any("error", err))
	}
}

// sync takes a fresh snapshot from the controller and keeps the cursor on the
// same folder or dashboard when it is still listed.
func (m *Model) sync() {
	var current string
	if r, ok := m.currentRow(); ok {
		current = rowKey(m.view.Sections, r)
	}

	m.view = m.ctrl.Snapshot()
	m.rows = flattenRows(m.view.Sections)

	if current != "" {
		for i, r := range m.rows {
			if rowKey(m.view.Sections, r) == current {
				m.cursor = i
				break
			}
		}
	}
	m.cursor = clamp(m.cursor, 0, len(m.rows)-1)
	m.refreshList()
}

func (m Model) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model) resize() {
	m.list.Width = max(m.width-2, 0)
	m.list.Height = max(m.height-chromeHeight, 1)
	m.query.Width = max(m.width-8, 10)
	m.refreshList()
}

// refreshList re-renders the rows into the viewport and scrolls the cursor
// into view.
func (m *Model) refreshList() {
	if !m.ready {
		return
	}
	m.list.SetContent(m.renderRows(m.list.Width))
	switch {
	case m.cursor < m.list.YOffset:
		m.list.SetYOffset(m.cursor)
	case m.cursor >= m.list.YOffset+m.list.Height:
		m.list.SetYOffset(m.cursor - m.list.Height + 1)
	}
}

// renderMain renders the full screen.
func (m Model) renderMain() string {
	title := "Dashboards"
	if m.view.HasFilters {
		title = "Search results"
	}
	box := m.renderTitledBox(title, m.list.View(), m.width, m.list.Height+2, true)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderCommandBar(),
		m.renderFilterBar(),
		box,
		m.renderStatusLine(),
	)
}

// absoluteURL joins a Grafana URL onto base. Search results already carry
// the server's sub path, so a rel starting with it is joined onto the host.
func absoluteURL(base, rel string) string {
	if rel == "" || strings.HasPrefix(rel, "http://") || strings.HasPrefix(rel, "https://") {
		return rel
	}
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return rel
	}
	subPath := strings.TrimRight(u.Path, "/")
	if strings.HasPrefix(rel, "/") {
		if subPath != "" && (rel == subPath || strings.HasPrefix(rel, subPath+"/")) {
			return u.Scheme + "://" + u.Host + rel
		}
		return u.Scheme + "://" + u.Host + subPath + rel
	}
	return u.Scheme + "://" + u.Host + subPath + "/" + rel
}

// Messages

type fetchDoneMsg struct {
	op      string
	success string
	err     error
}

type foldersMsg struct {
	req     moveRequest
	folders []grafana.Folder
	err     error
}

type copiedMsg struct {
	text string
	err  error
}

// Commands

func fetchCmd(ctx context.Context, op, success string, f manage.Fetch) tea.Cmd {
	return func() tea.Msg {
		return fetchDoneMsg{op: op, success: success, err: f.Run(ctx)}
	}
}

func loadFoldersCmd(ctx context.Context, backend FolderBackend, req moveRequest) tea.Cmd {
	return func() tea.Msg {
		folders, err := backend.Folders(ctx)
		return foldersMsg{req: req, folders: folders, err: err}
	}
}

// moveCmd moves the dashboards and then runs the controller's after-save
// refresh.
func moveCmd(ctx context.Context, backend FolderBackend, req moveRequest, folder grafana.Folder) tea.Cmd {
	return func() tea.Msg {
		res, err := backend.MoveDashboards(ctx, req.dashboardUIDs, folder.ID)
		if err != nil {
			return fetchDoneMsg{op: "move", err: err}
		}
		return fetchDoneMsg{
			op:      "move",
			success: moveSummary(res, folder.Title),
			err:     req.afterSave.Run(ctx),
		}
	}
}

func copyCmd(copyText func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{text: text, err: copyText(text)}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}

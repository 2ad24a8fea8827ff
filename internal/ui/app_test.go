package ui

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/boardwalk/internal/grafana"
	"github.com/five82/boardwalk/internal/manage"
	"github.com/five82/boardwalk/internal/prefs"
)

type fakeSearch struct {
	mu          sync.Mutex
	queries     []manage.Query
	folderCalls []int64
}

func (f *fakeSearch) Search(_ context.Context, q manage.Query) ([]manage.Section, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	return fixtureSections(), nil
}

func (f *fakeSearch) DashboardTags(context.Context) ([]grafana.TagTerm, error) {
	return []grafana.TagTerm{{Term: "prod", Count: 3}, {Term: "staging", Count: 1}}, nil
}

func (f *fakeSearch) FolderItems(_ context.Context, folderID int64) ([]manage.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.folderCalls = append(f.folderCalls, folderID)
	return []manage.Item{{ID: 31, UID: "latency", Title: "Latency", URL: "/d/latency/latency", FolderID: folderID}}, nil
}

func (f *fakeSearch) lastQuery() manage.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return manage.Query{}
	}
	return f.queries[len(f.queries)-1]
}

func (f *fakeSearch) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

type fakeFolderService struct {
	mu             sync.Mutex
	readOnly       bool
	deletedFolders [][]string
	deletedDash    [][]string
}

func (f *fakeFolderService) GetFolderByUID(_ context.Context, uid string) (grafana.Folder, error) {
	return grafana.Folder{UID: uid, CanSave: !f.readOnly}, nil
}

func (f *fakeFolderService) DeleteFoldersAndDashboards(_ context.Context, folderUIDs, dashboardUIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedFolders = append(f.deletedFolders, folderUIDs)
	f.deletedDash = append(f.deletedDash, dashboardUIDs)
	return nil
}

type fakeBackend struct {
	mu       sync.Mutex
	folders  []grafana.Folder
	moved    []string
	target   int64
	moveErr  error
	listErr  error
	listCall int
}

func (f *fakeBackend) Folders(context.Context) ([]grafana.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCall++
	return f.folders, f.listErr
}

func (f *fakeBackend) MoveDashboards(_ context.Context, uids []string, folderID int64) (grafana.MoveResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.moveErr != nil {
		return grafana.MoveResult{}, f.moveErr
	}
	f.moved = append(f.moved, uids...)
	f.target = folderID
	return grafana.MoveResult{Total: len(uids), Moved: len(uids)}, nil
}

// fixtureSections lists Ops (expanded), General (expanded) and Apps
// (collapsed, not loaded). Visible rows: Ops, CPU, General, Home, Apps.
func fixtureSections() []manage.Section {
	return []manage.Section{
		{
			ID: 1, UID: "ops", Title: "Ops", URL: "/dashboards/f/ops/ops",
			Icon: manage.IconFolderOpen, Expanded: true,
			Items: []manage.Item{{ID: 11, UID: "cpu", Title: "CPU", URL: "/d/cpu/cpu", Tags: []string{"prod"}, FolderID: 1}},
		},
		{
			ID: 0, Title: "General", Icon: manage.IconFolderOpen, Expanded: true,
			Items: []manage.Item{{ID: 21, UID: "home", Title: "Home", URL: "/d/home/home"}},
		},
		{ID: 2, UID: "apps", Title: "Apps", URL: "/dashboards/f/apps/apps", Icon: manage.IconFolder},
	}
}

type testEnv struct {
	search    *fakeSearch
	folderSvc *fakeFolderService
	backend   *fakeBackend
	prefsPath string
	copied    []string
}

func newTestModel(t *testing.T) (Model, *testEnv) {
	t.Helper()
	return newTestModelWith(t, manage.Options{IsEditor: true, HasEditPermissionInFolders: true}, &fakeFolderService{})
}

func newTestModelWith(t *testing.T, opts manage.Options, folderSvc *fakeFolderService) (Model, *testEnv) {
	t.Helper()
	env := &testEnv{
		search:    &fakeSearch{},
		folderSvc: folderSvc,
		backend:   &fakeBackend{folders: []grafana.Folder{{ID: 1, Title: "Ops"}, {ID: 2, Title: "Apps"}}},
		prefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	}
	host := NewHost()
	ctrl := manage.New(env.search, env.folderSvc, host, host, opts)

	m := New(Options{
		Controller: ctrl,
		Host:       host,
		Folders:    env.backend,
		BaseURL:    "https://grafana.example.com/",
		Login:      "admin",
		ThemeName:  "Nightfox",
		ShowTags:   true,
		PrefsPath:  env.prefsPath,
		CopyText: func(s string) error {
			env.copied = append(env.copied, s)
			return nil
		},
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = drain(t, next.(Model), m.Init())
	return m, env
}

// runCmd executes c, giving up on commands that block (timers, blinks).
func runCmd(c tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- c() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(250 * time.Millisecond):
		return nil, false
	}
}

// drain runs cmd and feeds the Model's own messages back into Update until
// no work is left.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "command loop did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg, ok := runCmd(c)
		if !ok {
			continue
		}
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case fetchDoneMsg, foldersMsg, confirmedMsg, moveTargetMsg, tagPickedMsg, copiedMsg:
			next, nc := m.Update(msg)
			m = next.(Model)
			queue = append(queue, nc)
		}
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends each key in turn and returns the command of the last one.
func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = press(m, string(r))
	}
	return m
}

func TestInit_LoadsDashboards(t *testing.T) {
	m, env := newTestModel(t)

	assert.Equal(t, 1, env.search.count())
	assert.True(t, m.view.Loaded)
	assert.Equal(t, 0, m.pending)
	assert.Len(t, m.rows, 5)
	assert.Len(t, m.view.TagOptions, 2)

	out := m.View()
	assert.Contains(t, out, "Ops")
	assert.Contains(t, out, "CPU")
	assert.Contains(t, out, "boardwalk")
}

func TestNavigation_ClampsCursor(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(m, "k")
	assert.Equal(t, 0, m.cursor)

	m, _ = press(m, "G")
	assert.Equal(t, 4, m.cursor)

	m, _ = press(m, "j", "j")
	assert.Equal(t, 4, m.cursor)

	m, _ = press(m, "g", "down")
	assert.Equal(t, 1, m.cursor)
}

func TestToggleRow_EnablesDeleteAndMove(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(m, "j", " ")
	assert.True(t, m.view.CanDelete)
	assert.True(t, m.view.CanMove)
	assert.True(t, m.view.Sections[0].Items[0].Checked)

	m, _ = press(m, " ")
	assert.False(t, m.view.CanDelete)
	assert.False(t, m.view.CanMove)
}

func TestSelectAll_ChecksEverySection(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(m, "a")
	assert.True(t, m.view.SelectAllChecked)
	for _, s := range m.view.Sections {
		assert.True(t, s.Checked, "section %s", s.Title)
	}

	m, _ = press(m, "a")
	assert.False(t, m.view.SelectAllChecked)
	assert.False(t, m.view.CanDelete)
}

func TestDelete_ConfirmedDeletesAndRefreshes(t *testing.T) {
	m, env := newTestModel(t)
	m, _ = press(m, "j", " ", "d")

	modal, ok := m.modal.(*confirmModal)
	require.True(t, ok, "modal = %T, want *confirmModal", m.modal)
	assert.Equal(t, "Delete", modal.prompt.Title)
	assert.Equal(t, "Do you want to delete the selected dashboard?", modal.prompt.Text)
	assert.Empty(t, env.folderSvc.deletedDash, "nothing is deleted before confirmation")

	m.modal = nil
	m = drain(t, m, modal.resolve(true))

	require.Len(t, env.folderSvc.deletedDash, 1)
	assert.Equal(t, []string{"cpu"}, env.folderSvc.deletedDash[0])
	assert.Empty(t, env.folderSvc.deletedFolders[0])
	assert.Equal(t, 2, env.search.count())
	assert.Equal(t, "Deleted selection", m.status)
	assert.False(t, m.statusErr)
}

func TestDelete_EscapeCancels(t *testing.T) {
	m, env := newTestModel(t)
	m, _ = press(m, "j", " ", "d")
	require.NotNil(t, m.modal)

	m, cmd := press(m, "esc")
	assert.Nil(t, m.modal)
	assert.Nil(t, cmd)
	assert.Empty(t, env.folderSvc.deletedDash)
}

func TestDelete_DeclinedDoesNothing(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(m, "j", " ", "d")

	modal := m.modal.(*confirmModal)
	assert.Nil(t, modal.resolve(false))
}

func TestDelete_NothingSelectedShowsHint(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := press(m, "d")
	assert.Nil(t, m.modal)
	assert.Nil(t, cmd)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "Select folders or dashboards")
}

func TestReadOnlyFolder_BlocksSelectionAndActions(t *testing.T) {
	m, env := newTestModelWith(t,
		manage.Options{FolderID: 1, FolderUID: "ops", IsEditor: true, HasEditPermissionInFolders: true},
		&fakeFolderService{readOnly: true})

	require.True(t, m.view.Loaded)
	assert.False(t, m.view.CanSave)
	assert.False(t, m.view.HasEditPermissionInFolders)

	for _, k := range []string{" ", "a", "d", "m"} {
		m.status, m.statusErr = "", false
		var cmd tea.Cmd
		m, cmd = press(m, k)
		assert.Nil(t, cmd, "key %q", k)
		assert.Nil(t, m.modal, "key %q opened a modal", k)
		assert.True(t, m.statusErr, "key %q", k)
		assert.Equal(t, "No permission to edit dashboards here", m.status)
	}

	assert.False(t, m.view.SelectAllChecked)
	assert.False(t, m.view.CanDelete)
	assert.False(t, m.view.CanMove)
	assert.Empty(t, env.folderSvc.deletedDash)
	assert.Zero(t, env.backend.listCall)
}

func TestMove_PicksFolderAndRefreshes(t *testing.T) {
	m, env := newTestModel(t)
	m, cmd := press(m, "j", " ", "m")
	m = drain(t, m, cmd)

	modal, ok := m.modal.(*moveModal)
	require.True(t, ok, "modal = %T, want *moveModal", m.modal)
	assert.Equal(t, 1, env.backend.listCall)
	require.Len(t, modal.folders, 3)
	assert.Equal(t, "General", modal.folders[0].Title)
	assert.Equal(t, []string{"cpu"}, modal.req.dashboardUIDs)

	m.modal = nil
	m = drain(t, m, modal.resolve(2))

	assert.Equal(t, []string{"cpu"}, env.backend.moved)
	assert.Equal(t, int64(2), env.backend.target)
	assert.Equal(t, 2, env.search.count(), "after-save refresh")
	assert.Equal(t, "Moved 1 dashboard to Apps", m.status)
	assert.Equal(t, 0, m.pending)
}

func TestMove_FailureIsReported(t *testing.T) {
	m, env := newTestModel(t)
	env.backend.moveErr = errors.New("save dashboard cpu: boom")

	m, cmd := press(m, "j", " ", "m")
	m = drain(t, m, cmd)
	modal := m.modal.(*moveModal)
	m.modal = nil
	m = drain(t, m, modal.resolve(0))

	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "boom")
	assert.Equal(t, 1, env.search.count(), "no refresh after a failed move")
}

func TestMove_FolderListFailure(t *testing.T) {
	m, env := newTestModel(t)
	env.backend.listErr = errors.New("unauthorized")

	m, cmd := press(m, "j", " ", "m")
	m = drain(t, m, cmd)

	assert.Nil(t, m.modal)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "unauthorized")
}

func TestTagPicker_FiltersAndApplies(t *testing.T) {
	m, env := newTestModel(t)

	m, _ = press(m, "t")
	picker, ok := m.modal.(*tagPicker)
	require.True(t, ok, "modal = %T, want *tagPicker", m.modal)
	assert.Len(t, picker.matches, 2)

	m = typeText(m, "stag")
	assert.Len(t, m.modal.(*tagPicker).matches, 1)

	m, cmd := press(m, "enter")
	assert.Nil(t, m.modal)
	m = drain(t, m, cmd)

	assert.Equal(t, []string{"staging"}, env.search.lastQuery().Tags)
	assert.Equal(t, "staging", m.view.SelectedTagFilter)
	assert.True(t, m.view.HasFilters)
}

func TestTagPicker_NoMatchKeepsOpen(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(m, "t")
	m = typeText(m, "zzz")

	m, cmd := press(m, "enter")
	assert.NotNil(t, m.modal)
	assert.Nil(t, cmd)
}

func TestRemoveTagAndClearFilters(t *testing.T) {
	m, env := newTestModel(t)

	m, _ = press(m, "t")
	m, cmd := press(m, "enter")
	m = drain(t, m, cmd)
	require.Equal(t, []string{"prod"}, env.search.lastQuery().Tags)

	m, cmd = press(m, "x")
	m = drain(t, m, cmd)
	assert.Empty(t, env.search.lastQuery().Tags)

	m, cmd = press(m, "s")
	m = drain(t, m, cmd)
	require.True(t, env.search.lastQuery().Starred)

	m, cmd = press(m, "c")
	m = drain(t, m, cmd)
	q := env.search.lastQuery()
	assert.False(t, q.Starred)
	assert.Empty(t, q.Text)
	assert.Equal(t, manage.StarredFilterPlaceholder, m.view.SelectedStarredFilter)
}

func TestStarred_Toggles(t *testing.T) {
	m, env := newTestModel(t)

	m, cmd := press(m, "s")
	m = drain(t, m, cmd)
	assert.True(t, env.search.lastQuery().Starred)
	assert.Equal(t, "Yes", m.view.SelectedStarredFilter)

	m, cmd = press(m, "s")
	m = drain(t, m, cmd)
	assert.False(t, env.search.lastQuery().Starred)
}

func TestQueryEditing(t *testing.T) {
	m, env := newTestModel(t)

	m, _ = press(m, "/")
	require.True(t, m.editing)
	m = typeText(m, "cpu")
	m, cmd := press(m, "enter")
	assert.False(t, m.editing)
	m = drain(t, m, cmd)

	assert.Equal(t, "cpu", env.search.lastQuery().Text)
	assert.Equal(t, "cpu", m.view.Query.Text)

	// esc discards the edit
	m, _ = press(m, "/")
	m = typeText(m, "x")
	m, cmd = press(m, "esc")
	assert.False(t, m.editing)
	assert.Nil(t, cmd)
	assert.Equal(t, "cpu", m.view.Query.Text)
	assert.Equal(t, 2, env.search.count())
}

func TestQueryEditing_KeysDoNotTriggerActions(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(m, "/")
	m, cmd := press(m, "q")
	assert.True(t, m.editing)
	if cmd != nil {
		msg, _ := runCmd(cmd)
		_, quit := msg.(tea.QuitMsg)
		assert.False(t, quit, "q quits while typing a query")
	}
}

func TestExpandFolder_LoadsItemsLazily(t *testing.T) {
	m, env := newTestModel(t)

	m, _ = press(m, "G")
	require.Equal(t, 4, m.cursor)

	m, cmd := press(m, "enter")
	m = drain(t, m, cmd)

	assert.Equal(t, []int64{2}, env.search.folderCalls)
	assert.Len(t, m.rows, 6)
	assert.True(t, m.view.Sections[2].Expanded)
	assert.Equal(t, manage.IconFolderOpen, m.view.Sections[2].Icon)

	// l on an expanded folder does nothing
	m, cmd = press(m, "l")
	assert.Nil(t, cmd)
	assert.True(t, m.view.Sections[2].Expanded)

	// h collapses
	m, _ = press(m, "h")
	assert.False(t, m.view.Sections[2].Expanded)
	assert.Len(t, m.rows, 5)
}

func TestCollapse_OnItemJumpsToFolder(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(m, "j", "j", "j")
	require.Equal(t, 3, m.cursor)

	m, _ = press(m, "h")
	assert.Equal(t, 2, m.cursor)
	assert.True(t, m.view.Sections[1].Expanded)
}

func TestCopyURLs(t *testing.T) {
	m, env := newTestModel(t)

	m, cmd := press(m, "j", "y")
	m = drain(t, m, cmd)
	m, cmd = press(m, "N")
	m = drain(t, m, cmd)
	m, cmd = press(m, "I")
	m = drain(t, m, cmd)

	assert.Equal(t, []string{
		"https://grafana.example.com/d/cpu/cpu",
		"https://grafana.example.com/dashboard/new",
		"https://grafana.example.com/dashboard/import",
	}, env.copied)
	assert.Equal(t, "Copied https://grafana.example.com/dashboard/import", m.status)
}

func TestCopyURL_GeneralHasNoURL(t *testing.T) {
	m, env := newTestModel(t)

	m, cmd := press(m, "j", "j", "y")
	assert.Nil(t, cmd)
	assert.True(t, m.statusErr)
	assert.Empty(t, env.copied)
}

func TestFetchDone_SupersededIsSilent(t *testing.T) {
	m, _ := newTestModel(t)
	m.pending = 1

	next, _ := m.Update(fetchDoneMsg{op: "refresh", err: manage.ErrSuperseded})
	m = next.(Model)
	assert.Empty(t, m.status)
	assert.False(t, m.statusErr)
	assert.Equal(t, 0, m.pending)
}

func TestFetchDone_ErrorIsShownUntilNextSuccess(t *testing.T) {
	m, _ := newTestModel(t)

	next, _ := m.Update(fetchDoneMsg{op: "refresh", err: errors.New("search dashboards: connection refused")})
	m = next.(Model)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "connection refused")

	next, _ = m.Update(fetchDoneMsg{op: "refresh"})
	m = next.(Model)
	assert.Empty(t, m.status)
	assert.False(t, m.statusErr)
}

func TestCycleTheme_SavesPrefs(t *testing.T) {
	m, env := newTestModel(t)

	m, _ = press(m, "T")
	assert.Equal(t, "Kanagawa", m.theme.Name)

	m, _ = press(m, "v")
	assert.False(t, m.showTags)

	saved, err := prefs.Load(env.prefsPath)
	require.NoError(t, err)
	assert.Equal(t, prefs.Prefs{Theme: "Kanagawa", ShowTags: false}, saved)
}

func TestHelp_AnyKeyCloses(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(m, "?")
	require.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard")

	m, cmd := press(m, "d")
	assert.False(t, m.showHelp)
	assert.Nil(t, cmd)
	assert.Nil(t, m.modal)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := press(m, "q")
	require.NotNil(t, cmd)
	msg, ok := runCmd(cmd)
	require.True(t, ok)
	assert.IsType(t, tea.QuitMsg{}, msg)
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		base, rel, want string
	}{
		{"https://g.example.com", "/d/abc/cpu", "https://g.example.com/d/abc/cpu"},
		{"https://g.example.com", "dashboard/new", "https://g.example.com/dashboard/new"},
		{"https://g.example.com/grafana", "/grafana/d/abc/cpu", "https://g.example.com/grafana/d/abc/cpu"},
		{"https://g.example.com/grafana", "/d/abc/cpu", "https://g.example.com/grafana/d/abc/cpu"},
		{"https://g.example.com/grafana", "dashboard/import?folderId=3", "https://g.example.com/grafana/dashboard/import?folderId=3"},
		{"https://g.example.com", "https://other/d/x", "https://other/d/x"},
		{"not a url", "/d/x", "/d/x"},
		{"https://g.example.com", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, absoluteURL(tt.base, tt.rel), "absoluteURL(%q, %q)", tt.base, tt.rel)
	}
}

func TestFlattenRows(t *testing.T) {
	sections := []manage.Section{
		{ID: 5, Title: "Scoped", HideHeader: true, Items: []manage.Item{
			{UID: "a", Items: []manage.Item{{UID: "a1"}}},
			{UID: "b"},
		}},
		{ID: 6, Title: "Collapsed", Items: []manage.Item{{UID: "c"}}},
	}

	rows := flattenRows(sections)
	require.Len(t, rows, 4)

	assert.Equal(t, row{section: 0, path: []int{0}, depth: 0}, rows[0])
	assert.Equal(t, row{section: 0, path: []int{0, 0}, depth: 1}, rows[1])
	assert.Equal(t, row{section: 0, path: []int{1}, depth: 0}, rows[2])
	assert.True(t, rows[3].isSection())

	it, ok := itemAt(sections, rows[1])
	require.True(t, ok)
	assert.Equal(t, "a1", it.UID)
	assert.Equal(t, "i:a1", rowKey(sections, rows[1]))
}

func TestHost_HandsOutRequestsOnce(t *testing.T) {
	h := NewHost()

	_, ok := h.takePrompt()
	assert.False(t, ok)

	h.Confirm(manage.Prompt{Title: "first"})
	h.Confirm(manage.Prompt{Title: "second"})
	p, ok := h.takePrompt()
	require.True(t, ok)
	assert.Equal(t, "second", p.Title)
	_, ok = h.takePrompt()
	assert.False(t, ok)

	uids := []string{"a", "b"}
	h.Move(uids, nil)
	uids[0] = "changed"
	req, ok := h.takeMove()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, req.dashboardUIDs)
	_, ok = h.takeMove()
	assert.False(t, ok)
}

func TestMoveSummary(t *testing.T) {
	assert.Equal(t, "Moved 2 dashboards to Ops", moveSummary(grafana.MoveResult{Total: 2, Moved: 2}, "Ops"))
	assert.Equal(t, "Moved 1 dashboard to General (2 already there)",
		moveSummary(grafana.MoveResult{Total: 3, Moved: 1, AlreadyInFolder: 2}, "General"))
}

func TestTruncate_WideRunes(t *testing.T) {
	assert.Equal(t, "CPU", truncate("  CPU  ", 10))
	assert.Equal(t, "Late…", truncate("Latency", 5))
	assert.Equal(t, "日本…", truncate("日本語のダッシュボード", 5))
}

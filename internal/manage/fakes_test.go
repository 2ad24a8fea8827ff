package manage

import (
	"context"
	"sync"

	"github.com/five82/boardwalk/internal/grafana"
)

type fakeSearcher struct {
	mu          sync.Mutex
	sections    []Section
	err         error
	searchFn    func(ctx context.Context, q Query) ([]Section, error)
	queries     []Query
	tags        []grafana.TagTerm
	tagsErr     error
	tagCalls    int
	folderItems map[int64][]Item
	folderCalls []int64
}

func (f *fakeSearcher) Search(ctx context.Context, q Query) ([]Section, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	fn := f.searchFn
	sections, err := cloneSections(f.sections), f.err
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, q)
	}
	return sections, err
}

func (f *fakeSearcher) DashboardTags(context.Context) ([]grafana.TagTerm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tagCalls++
	return f.tags, f.tagsErr
}

func (f *fakeSearcher) FolderItems(_ context.Context, folderID int64) ([]Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.folderCalls = append(f.folderCalls, folderID)
	return cloneItems(f.folderItems[folderID]), nil
}

func (f *fakeSearcher) lastQuery() Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return Query{}
	}
	return f.queries[len(f.queries)-1]
}

func (f *fakeSearcher) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

type fakeFolders struct {
	folder        grafana.Folder
	folderErr     error
	folderFn      func(uid string)
	folderCalls   []string
	deleteErr     error
	deletedFolder [][]string
	deletedDash   [][]string
}

func (f *fakeFolders) GetFolderByUID(_ context.Context, uid string) (grafana.Folder, error) {
	f.folderCalls = append(f.folderCalls, uid)
	if f.folderFn != nil {
		f.folderFn(uid)
	}
	return f.folder, f.folderErr
}

func (f *fakeFolders) DeleteFoldersAndDashboards(_ context.Context, folderUIDs, dashboardUIDs []string) error {
	f.deletedFolder = append(f.deletedFolder, folderUIDs)
	f.deletedDash = append(f.deletedDash, dashboardUIDs)
	return f.deleteErr
}

type fakeConfirmer struct {
	prompts []Prompt
}

func (f *fakeConfirmer) Confirm(p Prompt) { f.prompts = append(f.prompts, p) }

type fakeMover struct {
	uids      []string
	afterSave Fetch
	calls     int
}

func (f *fakeMover) Move(uids []string, afterSave Fetch) {
	f.calls++
	f.uids = uids
	f.afterSave = afterSave
}

func cloneSections(sections []Section) []Section {
	if sections == nil {
		return nil
	}
	out := make([]Section, len(sections))
	for i, s := range sections {
		out[i] = s.clone()
	}
	return out
}

type harness struct {
	ctrl    *Controller
	search  *fakeSearcher
	folders *fakeFolders
	confirm *fakeConfirmer
	mover   *fakeMover
}

func newHarness(opts Options, sections ...Section) *harness {
	h := &harness{
		search:  &fakeSearcher{sections: sections},
		folders: &fakeFolders{},
		confirm: &fakeConfirmer{},
		mover:   &fakeMover{},
	}
	h.ctrl = New(h.search, h.folders, h.confirm, h.mover, opts)
	return h
}

func twoSections() []Section {
	return []Section{
		{ID: 1, UID: "folder-1", Title: "Infra", Items: []Item{{ID: 11, UID: "dash-11", Title: "CPU"}}},
		{ID: 2, UID: "folder-2", Title: "Apps", Items: []Item{{ID: 21, UID: "dash-21", Title: "Latency"}}},
	}
}

package manage

import (
	"context"
	"errors"

	"github.com/five82/boardwalk/internal/grafana"
)

// ErrSuperseded is returned by a refresh whose results were discarded because
// a newer refresh started before it completed.
var ErrSuperseded = errors.New("refresh superseded")

// Placeholder values shown by the tag and starred pickers when nothing is selected.
const (
	TagFilterPlaceholder     = "tag"
	StarredFilterPlaceholder = "starred"
)

// Section icons.
const (
	IconFolder     = "folder"
	IconFolderOpen = "folder-open"
)

// GeneralFolderID identifies the built-in folder holding unfiled dashboards.
const GeneralFolderID int64 = 0

// Query is the search state mutated by the filter operations.
type Query struct {
	Text        string
	Mode        string
	Tags        []string
	Starred     bool
	SkipRecent  bool
	SkipStarred bool
	FolderIDs   []int64
}

// HasFilters reports whether any text, tag or starred filter is active.
func (q Query) HasFilters() bool {
	return q.Text != "" || len(q.Tags) > 0 || q.Starred
}

func (q Query) clone() Query {
	dup := q
	dup.Tags = append([]string(nil), q.Tags...)
	dup.FolderIDs = append([]int64(nil), q.FolderIDs...)
	return dup
}

// Section is a folder row, or the General folder when ID is 0.
type Section struct {
	ID         int64
	UID        string
	Title      string
	URL        string
	Icon       string
	Score      int
	Type       string
	Expanded   bool
	Removable  bool
	Items      []Item
	Checked    bool
	HideHeader bool
}

// IsGeneral reports whether the section is the General folder.
func (s Section) IsGeneral() bool { return s.ID == GeneralFolderID }

func (s Section) clone() Section {
	dup := s
	dup.Items = cloneItems(s.Items)
	return dup
}

// Item is a dashboard row. Items only nest in tree mode.
type Item struct {
	ID          int64
	UID         string
	Title       string
	URL         string
	Type        string
	Tags        []string
	IsStarred   bool
	FolderID    int64
	FolderUID   string
	FolderTitle string
	Checked     bool
	Items       []Item
}

func (it Item) clone() Item {
	dup := it
	dup.Tags = append([]string(nil), it.Tags...)
	dup.Items = cloneItems(it.Items)
	return dup
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	dup := make([]Item, len(items))
	for i, it := range items {
		dup[i] = it.clone()
	}
	return dup
}

// TagOption is an entry of the tag filter picker.
type TagOption struct {
	Label string
	Value string
}

// Fetch is the blocking half of a controller operation. Mutating operations
// update controller state immediately and return a Fetch that performs the
// backend round trip. A nil Fetch has nothing to do.
type Fetch func(ctx context.Context) error

// Run executes f, treating nil as a no-op.
func (f Fetch) Run(ctx context.Context) error {
	if f == nil {
		return nil
	}
	return f(ctx)
}

// Prompt describes a confirmation request.
type Prompt struct {
	Title     string
	Text      string
	Text2     string
	Icon      string
	YesText   string
	OnConfirm Fetch
}

// Searcher resolves queries into sections.
type Searcher interface {
	Search(ctx context.Context, query Query) ([]Section, error)
	DashboardTags(ctx context.Context) ([]grafana.TagTerm, error)
	FolderItems(ctx context.Context, folderID int64) ([]Item, error)
}

// FolderService covers the folder and dashboard persistence calls.
type FolderService interface {
	GetFolderByUID(ctx context.Context, uid string) (grafana.Folder, error)
	DeleteFoldersAndDashboards(ctx context.Context, folderUIDs, dashboardUIDs []string) error
}

// Confirmer presents a prompt and runs its OnConfirm only when the user accepts.
type Confirmer interface {
	Confirm(prompt Prompt)
}

// Mover lets the user pick a target folder for the given dashboards and
// runs afterSave once the move has been persisted.
type Mover interface {
	Move(dashboardUIDs []string, afterSave Fetch)
}

// FoldersAndDashboards partitions a selection for deletion.
type FoldersAndDashboards struct {
	FolderUIDs    []string
	DashboardUIDs []string
}

package manage

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Options configure a Controller.
type Options struct {
	// FolderID scopes the view to a single folder when non-zero.
	FolderID int64
	// FolderUID enables the per-folder save permission check.
	FolderUID string

	IsEditor                   bool
	HasEditPermissionInFolders bool

	Logger *slog.Logger
}

// View is a copy of the controller state for rendering.
type View struct {
	Query                 Query
	Sections              []Section
	SelectAllChecked      bool
	CanDelete             bool
	CanMove               bool
	HasFilters            bool
	TagOptions            []TagOption
	SelectedTagFilter     string
	SelectedStarredFilter string

	FolderID                   int64
	FolderUID                  string
	CanSave                    bool
	IsEditor                   bool
	HasEditPermissionInFolders bool

	// Loaded is set after the first successful refresh.
	Loaded bool
}

// CanEdit reports whether the user may select rows and run bulk actions.
// A folder without save rights revokes it even for editors.
func (v View) CanEdit() bool {
	return v.HasEditPermissionInFolders || v.CanSave
}

// Controller holds the query, the result sections and the selection state of
// the dashboard management view. All methods are safe for concurrent use.
type Controller struct {
	search  Searcher
	folders FolderService
	confirm Confirmer
	mover   Mover
	logger  *slog.Logger

	mu                         sync.Mutex
	query                      Query
	sections                   []Section
	selectAllChecked           bool
	canDelete                  bool
	canMove                    bool
	hasFilters                 bool
	tagOptions                 []TagOption
	tagsRequested              bool
	selectedTagFilter          string
	selectedStarredFilter      string
	folderID                   int64
	folderUID                  string
	canSave                    bool
	isEditor                   bool
	hasEditPermissionInFolders bool
	loaded                     bool

	seq    uint64
	cancel context.CancelFunc
}

// New builds a controller. Nothing is fetched until Refresh is run.
func New(search Searcher, folders FolderService, confirm Confirmer, mover Mover, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	query := Query{
		Mode:        "tree",
		SkipRecent:  true,
		SkipStarred: true,
	}
	if opts.FolderID != 0 {
		query.FolderIDs = []int64{opts.FolderID}
	}
	return &Controller{
		search:                     search,
		folders:                    folders,
		confirm:                    confirm,
		mover:                      mover,
		logger:                     logger,
		query:                      query,
		selectedTagFilter:          TagFilterPlaceholder,
		selectedStarredFilter:      StarredFilterPlaceholder,
		folderID:                   opts.FolderID,
		folderUID:                  opts.FolderUID,
		isEditor:                   opts.IsEditor,
		hasEditPermissionInFolders: opts.HasEditPermissionInFolders,
	}
}

// Snapshot returns a deep copy of the current state.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	sections := make([]Section, len(c.sections))
	for i, s := range c.sections {
		sections[i] = s.clone()
	}
	return View{
		Query:                      c.query.clone(),
		Sections:                   sections,
		SelectAllChecked:           c.selectAllChecked,
		CanDelete:                  c.canDelete,
		CanMove:                    c.canMove,
		HasFilters:                 c.hasFilters,
		TagOptions:                 slices.Clone(c.tagOptions),
		SelectedTagFilter:          c.selectedTagFilter,
		SelectedStarredFilter:      c.selectedStarredFilter,
		FolderID:                   c.folderID,
		FolderUID:                  c.folderUID,
		CanSave:                    c.canSave,
		IsEditor:                   c.isEditor,
		HasEditPermissionInFolders: c.hasEditPermissionInFolders,
		Loaded:                     c.loaded,
	}
}

// SetQueryText replaces the free text filter.
func (c *Controller) SetQueryText(text string) Fetch {
	c.mu.Lock()
	c.query.Text = text
	c.mu.Unlock()
	return c.Refresh()
}

// FilterByTag adds tag to the tag filter unless it is empty or already present.
// The list is refreshed either way.
func (c *Controller) FilterByTag(tag string) Fetch {
	c.mu.Lock()
	c.addTagLocked(tag)
	c.mu.Unlock()
	return c.Refresh()
}

// OnTagFilterChange applies a tag picked from the tag filter options.
func (c *Controller) OnTagFilterChange(option TagOption) Fetch {
	c.mu.Lock()
	c.addTagLocked(option.Value)
	c.selectedTagFilter = option.Value
	c.mu.Unlock()
	return c.Refresh()
}

func (c *Controller) addTagLocked(tag string) {
	if tag == "" || slices.Contains(c.query.Tags, tag) {
		return
	}
	c.query.Tags = append(c.query.Tags, tag)
}

// RemoveTag drops tag from the tag filter.
func (c *Controller) RemoveTag(tag string) Fetch {
	c.mu.Lock()
	c.query.Tags = slices.DeleteFunc(c.query.Tags, func(t string) bool { return t == tag })
	c.mu.Unlock()
	return c.Refresh()
}

// OnStarredFilterChange sets the starred filter from the starred picker.
func (c *Controller) OnStarredFilterChange(starred bool) Fetch {
	c.mu.Lock()
	c.query.Starred = starred
	c.selectedStarredFilter = StarredFilterLabel(starred)
	c.mu.Unlock()
	return c.Refresh()
}

// RemoveStarred turns the starred filter off.
func (c *Controller) RemoveStarred() Fetch {
	c.mu.Lock()
	c.query.Starred = false
	c.mu.Unlock()
	return c.Refresh()
}

// ClearFilters resets text, tags and starred and the picker selections.
func (c *Controller) ClearFilters() Fetch {
	c.mu.Lock()
	c.query.Text = ""
	c.query.Tags = nil
	c.query.Starred = false
	c.selectedStarredFilter = StarredFilterPlaceholder
	c.selectedTagFilter = TagFilterPlaceholder
	c.mu.Unlock()
	return c.Refresh()
}

// StarredFilterLabel names a starred picker choice.
func StarredFilterLabel(starred bool) string {
	if starred {
		return "Yes"
	}
	return "No"
}

// Refresh claims a new refresh generation and captures the current query.
// Claiming cancels any refresh still in flight; the returned Fetch reports
// ErrSuperseded if another refresh is claimed before it applies its results.
//
// A successful refresh replaces the sections, clears every checked flag, and
// re-checks the scoping folder's save permission. The first successful
// refresh also loads the tag filter options.
func (c *Controller) Refresh() Fetch {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	query := c.query.clone()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		c.mu.Lock()
		if seq != c.seq {
			c.mu.Unlock()
			return ErrSuperseded
		}
		c.cancel = cancel
		c.mu.Unlock()

		sections, err := c.search.Search(ctx, query)
		if err != nil {
			if c.stale(seq) {
				return ErrSuperseded
			}
			return fmt.Errorf("search dashboards: %w", err)
		}

		c.mu.Lock()
		if seq != c.seq {
			c.mu.Unlock()
			return ErrSuperseded
		}
		c.initDashboardListLocked(sections, query)
		folderUID := c.folderUID
		c.mu.Unlock()

		c.logger.Debug("dashboard list refreshed",
			slog.Int("sections", len(sections)),
			slog.String("query", query.Text),
			slog.Any("tags", query.Tags),
			slog.Bool("starred", query.Starred),
		)

		if folderUID != "" {
			if err := c.applyFolderPermission(ctx, seq, folderUID); err != nil {
				return err
			}
		}
		if c.claimTagLoad(seq) {
			if err := c.loadTags(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}

// claimTagLoad reports whether this refresh should load the tag options.
// Only a current refresh that got past the folder check claims them.
func (c *Controller) claimTagLoad(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq || c.tagsRequested {
		return false
	}
	c.tagsRequested = true
	return true
}

func (c *Controller) stale(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return seq != c.seq
}

func (c *Controller) initDashboardListLocked(sections []Section, query Query) {
	c.canMove = false
	c.canDelete = false
	c.selectAllChecked = false
	c.hasFilters = query.HasFilters()
	c.loaded = true

	c.sections = make([]Section, 0, len(sections))
	for _, s := range sections {
		s = s.clone()
		s.Checked = false
		uncheckItems(s.Items)
		c.sections = append(c.sections, s)
	}
	if c.folderID != 0 && len(c.sections) > 0 {
		c.sections[0].HideHeader = true
	}
}

func (c *Controller) applyFolderPermission(ctx context.Context, seq uint64, uid string) error {
	folder, err := c.folders.GetFolderByUID(ctx, uid)
	if err != nil {
		if c.stale(seq) {
			return ErrSuperseded
		}
		return fmt.Errorf("get folder %s: %w", uid, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return ErrSuperseded
	}
	c.canSave = folder.CanSave
	if !c.canSave {
		// folder-level override for the rest of the view
		c.hasEditPermissionInFolders = false
	}
	return nil
}

func (c *Controller) loadTags(ctx context.Context) error {
	terms, err := c.search.DashboardTags(ctx)
	if err != nil {
		c.mu.Lock()
		c.tagsRequested = false
		c.mu.Unlock()
		return fmt.Errorf("load dashboard tags: %w", err)
	}
	options := make([]TagOption, 0, len(terms))
	for _, term := range terms {
		options = append(options, TagOption{Label: term.Term, Value: term.Term})
	}

	c.mu.Lock()
	c.tagOptions = options
	c.mu.Unlock()
	return nil
}

// ToggleFolder expands or collapses the section at index. Expanding a
// section with no items returns a Fetch that loads them.
func (c *Controller) ToggleFolder(index int) Fetch {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.sections) {
		return nil
	}
	section := &c.sections[index]
	section.Expanded = !section.Expanded
	section.Icon = IconFolder
	if section.Expanded {
		section.Icon = IconFolderOpen
	}
	if !section.Expanded || len(section.Items) > 0 {
		return nil
	}

	seq := c.seq
	folderID := section.ID
	return func(ctx context.Context) error {
		items, err := c.search.FolderItems(ctx, folderID)
		if err != nil {
			return fmt.Errorf("load folder %d: %w", folderID, err)
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if seq != c.seq {
			return ErrSuperseded
		}
		for i := range c.sections {
			if c.sections[i].ID != folderID {
				continue
			}
			loaded := cloneItems(items)
			uncheckItems(loaded)
			c.sections[i].Items = loaded
			c.selectionChangedLocked()
			break
		}
		return nil
	}
}

// CreateDashboardURL is the relative URL for a new dashboard in scope.
func (c *Controller) CreateDashboardURL() string {
	return c.scopedURL("dashboard/new")
}

// ImportDashboardURL is the relative URL for importing a dashboard in scope.
func (c *Controller) ImportDashboardURL() string {
	return c.scopedURL("dashboard/import")
}

func (c *Controller) scopedURL(path string) string {
	c.mu.Lock()
	folderID := c.folderID
	c.mu.Unlock()
	if folderID != 0 {
		return fmt.Sprintf("%s?folderId=%d", path, folderID)
	}
	return path
}

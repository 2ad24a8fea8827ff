// Package manage holds the state of the dashboard management view.
//
// # Overview
//
// Controller owns three pieces of state:
//
//   - the search Query (free text, tags, starred, folder scope)
//   - the result Sections, each a folder holding dashboard Items
//   - the checkbox selection and the flags derived from it (CanMove, CanDelete)
//
// Every filter mutation triggers a refresh. A refresh replaces the sections
// wholesale and resets every checked flag; nothing is patched incrementally.
//
// # Collaborators
//
// The controller reaches the outside world through four interfaces:
//
//   - Searcher: search queries, tag listing, lazy folder loading
//   - FolderService: folder lookup and bulk delete
//   - Confirmer: the confirmation surface used by Delete
//   - Mover: the move-to-folder surface used by MoveTo
//
// # Fetch
//
// Operations that need a backend round trip split into two halves. The
// state change happens immediately under the controller's mutex, and the
// network call is returned as a Fetch for the caller to run where blocking is
// allowed (a tea.Cmd in the UI, the test goroutine in tests):
//
//	if err := ctrl.FilterByTag("prod").Run(ctx); err != nil {
//		if errors.Is(err, manage.ErrSuperseded) {
//			return nil // a newer refresh owns the view
//		}
//		return err
//	}
//
// # Refresh Ordering
//
// Refresh claims a generation number when it is called. Claiming cancels the
// context of the refresh still in flight, and results are only applied while
// their generation is current. A refresh that loses the race returns
// ErrSuperseded and leaves the state untouched, so a slow response can never
// overwrite a newer one.
//
// # Snapshots
//
// Snapshot returns a View with deep copies of the query and sections.
// Renderers may hold on to it without further locking.
package manage

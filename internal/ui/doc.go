// Package ui provides the Boardwalk terminal interface, built on Bubble Tea.
//
// # Architecture Overview
//
// A single screen shows the dashboard management view of one Grafana
// instance: a header with scope and permissions, a command bar, the filter
// bar, the folder/dashboard list and a status line. All list state lives in
// a manage.Controller; the Model only renders controller snapshots and turns
// keys into controller calls.
//
// # Package Structure
//
//   - app.go: Model, Update loop, background commands and Run
//   - list.go: flattening sections into rows and rendering them
//   - header.go: header, command bar, filter bar and status line
//   - modal.go: the Modal interface plus the delete confirm and move dialogs (huh)
//   - tagpicker.go: fuzzy tag filter picker
//   - help.go: markdown help overlay rendered with glamour
//   - host.go: Host, the manage.Confirmer and manage.Mover implementation
//   - theme.go, render.go, keys.go: styling and key bindings
//
// # Event Flow
//
//  1. A key calls a controller operation, which updates state at once and
//     returns a manage.Fetch
//  2. The Model re-snapshots the controller and runs the Fetch as a tea.Cmd
//  3. The Fetch result arrives as fetchDoneMsg; the Model re-snapshots again
//     and reports errors on the status line. Superseded refreshes are dropped
//     silently.
//
// Delete and move go through Host: the controller calls Host.Confirm or
// Host.Move, the Model picks the request up right after and opens a modal.
// Nothing is deleted unless the confirm modal is accepted.
//
// # Usage Example
//
//	host := ui.NewHost()
//	ctrl := manage.New(searchSvc, client, host, host, manage.Options{})
//	err := ui.Run(ui.Options{
//		Context:    ctx,
//		Controller: ctrl,
//		Host:       host,
//		Folders:    client,
//		BaseURL:    client.BaseURL(),
//	})
//
// # Key Bindings
//
//   - /: Edit the name query (enter applies, esc cancels)
//   - t: Tag picker, x: remove the last tag, s: starred filter, c: clear filters
//   - space: Select row, a: select all, enter/l/h: expand or collapse a folder
//   - d: Delete selection, m: move selected dashboards
//   - y: Copy row URL, N/I: copy new/import dashboard URL
//   - r: Refresh, v: show/hide tags, T: cycle theme, ?: help
//   - q or Ctrl+C: Exit
package ui

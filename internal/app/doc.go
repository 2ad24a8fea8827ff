// Package app is the composition root of Boardwalk.
//
// # Overview
//
// Run loads configuration, opens the log file, checks that Grafana is
// reachable with the configured token and then hands a fully wired
// manage.Controller to the terminal UI.
//
// # Startup
//
//  1. config.Load reads ~/.config/boardwalk/config.toml; GRAFANA_URL and
//     GRAFANA_TOKEN override it, and Options override the folder scope
//  2. Logs go to the configured log_file only, since the TUI owns the terminal
//  3. prefs.Load restores the theme and tag visibility; failures fall back to
//     defaults
//  4. A preflight call to Permissions (5 second timeout) resolves the user's
//     role and fails fast on a bad URL or token
//  5. A folder UID without an id is resolved through /api/folders/:uid
//  6. ui.Run blocks until the user quits or the context is cancelled
//
// # Error Handling
//
// Everything before ui.Run is fatal and returned to the caller. Errors during
// the session are logged and shown on the status line instead.
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{FolderUID: "ops"}); err != nil {
//		log.Fatalf("boardwalk failed: %v", err)
//	}
package app

// Package config loads Boardwalk's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/boardwalk/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. GRAFANA_URL and GRAFANA_TOKEN from the environment win over the file
//
// The CLI loads a .env file from the working directory before Load runs, so
// the token can live there instead of in the config file.
//
// # TOML Format
//
//	url = "https://grafana.example.com"
//	token = "glsa_..."
//	org_id = 1
//	folder_uid = "ops"      # scope the view to one folder
//	folder_id = 12
//	timeout_seconds = 10
//	concurrency = 4         # parallel deletes/moves
//	log_file = "~/.local/state/boardwalk/boardwalk.log"
//	log_level = "info"      # debug, info, warn, error
//
// Every field is optional. Tilde expansion applies to log_file.
//
// # Validation
//
// Load validates the merged result with ozzo-validation and returns the
// field errors prefixed with the config path. Missing config files are NOT
// an error.
package config

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/five82/boardwalk/internal/config"
	"github.com/five82/boardwalk/internal/grafana"
	"github.com/five82/boardwalk/internal/manage"
	"github.com/five82/boardwalk/internal/prefs"
	"github.com/five82/boardwalk/internal/search"
	"github.com/five82/boardwalk/internal/ui"
)

// preflightTimeout bounds the startup permission check.
const preflightTimeout = 5 * time.Second

// Options configure the Boardwalk application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/boardwalk/prefs.toml

	// FolderUID and FolderID override the config's folder scope.
	FolderUID string
	FolderID  int64

	// Debug forces debug logging regardless of log_level.
	Debug bool
}

// Run boots the Boardwalk TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	uiOpts, cleanup, err := build(ctx, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := ui.Run(uiOpts); err != nil {
		uiOpts.Logger.Error("ui exited with error", slog.Any("error", err))
		return fmt.Errorf("run ui: %w", err)
	}
	uiOpts.Logger.Info("boardwalk stopped")
	return nil
}

// build wires config, logging, the Grafana client and the controller into
// ui.Options. cleanup closes the log file.
func build(ctx context.Context, opts Options) (ui.Options, func(), error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return ui.Options{}, nil, fmt.Errorf("load config: %w", err)
	}
	if opts.FolderUID != "" {
		cfg.FolderUID = opts.FolderUID
	}
	if opts.FolderID != 0 {
		cfg.FolderID = opts.FolderID
	}

	level := cfg.Level()
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger, closeLog, err := openLogger(cfg.LogFile, level)
	if err != nil {
		return ui.Options{}, nil, err
	}
	cleanup := func() { _ = closeLog() }

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("using default preferences", slog.Any("error", err))
	}

	client, err := grafana.NewClient(grafana.ClientOptions{
		BaseURL:     cfg.URL,
		Token:       cfg.Token,
		OrgID:       cfg.OrgID,
		Timeout:     cfg.Timeout,
		Concurrency: cfg.Concurrency,
	})
	if err != nil {
		cleanup()
		return ui.Options{}, nil, fmt.Errorf("init grafana client: %w", err)
	}

	perms, err := checkGrafana(ctx, client)
	if err != nil {
		logger.Error("grafana preflight failed", slog.String("url", client.BaseURL()), slog.Any("error", err))
		cleanup()
		return ui.Options{}, nil, err
	}

	folderID, err := resolveFolderID(ctx, client, cfg.FolderUID, cfg.FolderID)
	if err != nil {
		cleanup()
		return ui.Options{}, nil, err
	}

	logger.Info("boardwalk started",
		slog.String("url", client.BaseURL()),
		slog.String("login", perms.Login),
		slog.String("role", perms.Role),
		slog.String("folder_uid", cfg.FolderUID),
		slog.Int64("folder_id", folderID),
	)

	host := ui.NewHost()
	ctrl := manage.New(search.NewService(client, logger), client, host, host, manage.Options{
		FolderID:                   folderID,
		FolderUID:                  cfg.FolderUID,
		IsEditor:                   perms.IsEditor,
		HasEditPermissionInFolders: perms.HasEditPermissionInFolders,
		Logger:                     logger,
	})

	return ui.Options{
		Context:    ctx,
		Controller: ctrl,
		Host:       host,
		Folders:    client,
		BaseURL:    client.BaseURL(),
		Login:      perms.Login,
		ThemeName:  userPrefs.Theme,
		ShowTags:   userPrefs.ShowTags,
		PrefsPath:  opts.PrefsPath,
		Logger:     logger,
	}, cleanup, nil
}

// permissionsSource is the part of the Grafana client the preflight needs.
type permissionsSource interface {
	Permissions(ctx context.Context) (grafana.Permissions, error)
}

// checkGrafana verifies Grafana is reachable and the token is accepted
// before the UI takes over the terminal.
func checkGrafana(ctx context.Context, src permissionsSource) (grafana.Permissions, error) {
	ctx, cancel := context.WithTimeout(ctx, preflightTimeout)
	defer cancel()

	perms, err := src.Permissions(ctx)
	switch {
	case err == nil:
		return perms, nil
	case errors.Is(err, grafana.ErrUnauthorized):
		return grafana.Permissions{}, fmt.Errorf("grafana rejected the token (set GRAFANA_TOKEN or token in config): %w", err)
	default:
		return grafana.Permissions{}, fmt.Errorf("grafana unavailable: %w", err)
	}
}

// folderLookup resolves folder UIDs.
type folderLookup interface {
	GetFolderByUID(ctx context.Context, uid string) (grafana.Folder, error)
}

// resolveFolderID returns the numeric id of the scoping folder. An explicit
// id wins; otherwise the uid is looked up.
func resolveFolderID(ctx context.Context, folders folderLookup, uid string, id int64) (int64, error) {
	if id != 0 || uid == "" {
		return id, nil
	}
	folder, err := folders.GetFolderByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, grafana.ErrNotFound) {
			return 0, fmt.Errorf("folder %q not found", uid)
		}
		return 0, fmt.Errorf("resolve folder %q: %w", uid, err)
	}
	return folder.ID, nil
}

// openLogger opens the log file for appending. The TUI owns stdout and
// stderr, so logs only go to the file.
func openLogger(path string, level slog.Level) (*slog.Logger, func() error, error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("component", "boardwalk")), file.Close, nil
}

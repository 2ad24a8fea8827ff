package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures how Boardwalk reaches Grafana and where it logs.
type Config struct {
	URL         string
	Token       string
	OrgID       int64
	FolderUID   string
	FolderID    int64
	Timeout     time.Duration
	Concurrency int
	LogFile     string
	LogLevel    string
}

// Log levels accepted by log_level.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

const (
	defaultConfigPath  = "~/.config/boardwalk/config.toml"
	defaultLogFile     = "~/.local/state/boardwalk/boardwalk.log"
	defaultURL         = "http://127.0.0.1:3000"
	defaultTimeout     = 10 * time.Second
	defaultConcurrency = 4

	envURL   = "GRAFANA_URL"
	envToken = "GRAFANA_TOKEN"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		URL:         defaultURL,
		Timeout:     defaultTimeout,
		Concurrency: defaultConcurrency,
		LogFile:     mustExpand(defaultLogFile),
		LogLevel:    LevelInfo,
	}
}

// Load locates and parses the Boardwalk config, falling back to defaults when
// the file is missing. GRAFANA_URL and GRAFANA_TOKEN override the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		if err := cfg.decode(file); err != nil {
			return Config{}, err
		}
	}

	if v := strings.TrimSpace(os.Getenv(envURL)); v != "" {
		cfg.URL = v
	}
	if v := strings.TrimSpace(os.Getenv(envToken)); v != "" {
		cfg.Token = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", resolved, err)
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		URL            string `toml:"url"`
		Token          string `toml:"token"`
		OrgID          int64  `toml:"org_id"`
		FolderUID      string `toml:"folder_uid"`
		FolderID       int64  `toml:"folder_id"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
		Concurrency    int    `toml:"concurrency"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.URL); v != "" {
		c.URL = v
	}
	c.Token = strings.TrimSpace(raw.Token)
	c.OrgID = raw.OrgID
	c.FolderUID = strings.TrimSpace(raw.FolderUID)
	c.FolderID = raw.FolderID
	if raw.TimeoutSeconds > 0 {
		c.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if raw.Concurrency != 0 {
		c.Concurrency = raw.Concurrency
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		c.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.URL, validation.Required, validation.By(validateURL)),
		validation.Field(&c.OrgID, validation.Min(int64(0))),
		validation.Field(&c.FolderID, validation.Min(int64(0))),
		validation.Field(&c.Concurrency, validation.Required, validation.Min(1), validation.Max(32)),
		validation.Field(&c.LogFile, validation.Required),
		validation.Field(&c.LogLevel, validation.Required, validation.In(LevelDebug, LevelInfo, LevelWarn, LevelError)),
	)
}

func validateURL(value any) error {
	s, _ := value.(string)
	raw := s
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return fmt.Errorf("must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https")
	}
	return nil
}

// Level maps LogLevel onto slog.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultPath is the config path used when none is given.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

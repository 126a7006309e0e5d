package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	SortModeShared    = "shared"
	SortModePerColumn = "per_column"
)

type Config struct {
	ProjectDir string `json:"project_dir" yaml:"project_dir"`
	ExportDir  string `json:"export_dir" yaml:"export_dir"`

	BaseURL        string `json:"base_url" yaml:"base_url"`
	DataPath       string `json:"data_path" yaml:"data_path"`
	RefreshPath    string `json:"refresh_path" yaml:"refresh_path"`
	DashboardPath  string `json:"dashboard_path" yaml:"dashboard_path"`
	CSRFCookieName string `json:"csrf_cookie_name" yaml:"csrf_cookie_name"`
	// Cookies uses the browser's document.cookie format: "a=1; b=2".
	Cookies        string `json:"cookies" yaml:"cookies"`
	UserAgent      string `json:"user_agent" yaml:"user_agent"`
	RequestTimeout int    `json:"request_timeout_seconds" yaml:"request_timeout_seconds"`

	Theme          string `json:"theme" yaml:"theme"`
	SortMode       string `json:"sort_mode" yaml:"sort_mode"`
	ReloadSchedule string `json:"reload_schedule" yaml:"reload_schedule"`

	LogFile string `json:"log_file" yaml:"log_file"`
	Debug   bool   `json:"debug" yaml:"debug"`
}

// ApplyEnv overlays INDEXSTATS_* environment variables, including those set
// in a .env file in the working directory, onto c.
func (c *Config) ApplyEnv() {
	// Load environment variables from .env file
	_ = godotenv.Load()

	c.loadFromEnv()
}

// DefaultConfigWithRoot returns the built-in defaults with every directory
// rooted at root. Environment variables are not consulted.
func DefaultConfigWithRoot(root string) *Config {
	return &Config{
		ProjectDir: root,
		ExportDir:  filepath.Join(root, "exports"),

		BaseURL:        "http://localhost:8000",
		DataPath:       "/ticker-data/",
		RefreshPath:    "/refresh-data/",
		DashboardPath:  "/",
		CSRFCookieName: "csrftoken",
		UserAgent:      "IndexStats/1.0",
		RequestTimeout: 30,

		Theme:          ThemeLight,
		SortMode:       SortModeShared,
		ReloadSchedule: "@every 5m",
	}
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("PROJECT_DIR"); val != "" {
		c.ProjectDir = val
	}
	if val := os.Getenv("INDEXSTATS_EXPORT_DIR"); val != "" {
		c.ExportDir = val
	}

	if val := os.Getenv("INDEXSTATS_BASE_URL"); val != "" {
		c.BaseURL = val
	}
	if val := os.Getenv("INDEXSTATS_COOKIES"); val != "" {
		c.Cookies = val
	}
	if val := os.Getenv("INDEXSTATS_CSRF_COOKIE"); val != "" {
		c.CSRFCookieName = val
	}
	if val := os.Getenv("INDEXSTATS_USER_AGENT"); val != "" {
		c.UserAgent = val
	}
	if val := os.Getenv("INDEXSTATS_TIMEOUT"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.RequestTimeout = v
		}
	}

	if val := os.Getenv("INDEXSTATS_THEME"); val != "" {
		c.Theme = strings.ToLower(val)
	}
	if val := os.Getenv("INDEXSTATS_SORT_MODE"); val != "" {
		c.SortMode = strings.ToLower(val)
	}
	if val := os.Getenv("INDEXSTATS_RELOAD_SCHEDULE"); val != "" {
		c.ReloadSchedule = val
	}

	if val := os.Getenv("INDEXSTATS_LOG_FILE"); val != "" {
		c.LogFile = val
	}
	if val := os.Getenv("INDEXSTATS_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
}

// Timeout returns the HTTP request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base url must be http or https, got %q", c.BaseURL)
	}
	if c.DataPath == "" || c.RefreshPath == "" {
		return fmt.Errorf("data and refresh paths are required")
	}
	if c.CSRFCookieName == "" {
		return fmt.Errorf("csrf cookie name is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %d", c.RequestTimeout)
	}
	switch c.Theme {
	case ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	switch c.SortMode {
	case SortModeShared, SortModePerColumn:
	default:
		return fmt.Errorf("unknown sort mode %q", c.SortMode)
	}
	return nil
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{c.ProjectDir, c.ExportDir}
	if c.LogFile != "" {
		dirs = append(dirs, filepath.Dir(c.LogFile))
	}
	for _, dir := range dirs {
		path := strings.TrimSpace(dir)
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", path, err)
		}
	}
	return nil
}

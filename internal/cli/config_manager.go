package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dyike/indexstats/config"
)

// configField reads and writes one config key as text.
type configField struct {
	get func(c *config.Config) string
	set func(c *config.Config, value string) error
}

func stringField(ptr func(c *config.Config) *string) configField {
	return configField{
		get: func(c *config.Config) string { return *ptr(c) },
		set: func(c *config.Config, value string) error {
			*ptr(c) = value
			return nil
		},
	}
}

var configFields = map[string]configField{
	"project_dir":      stringField(func(c *config.Config) *string { return &c.ProjectDir }),
	"export_dir":       stringField(func(c *config.Config) *string { return &c.ExportDir }),
	"base_url":         stringField(func(c *config.Config) *string { return &c.BaseURL }),
	"data_path":        stringField(func(c *config.Config) *string { return &c.DataPath }),
	"refresh_path":     stringField(func(c *config.Config) *string { return &c.RefreshPath }),
	"dashboard_path":   stringField(func(c *config.Config) *string { return &c.DashboardPath }),
	"csrf_cookie_name": stringField(func(c *config.Config) *string { return &c.CSRFCookieName }),
	"cookies":          stringField(func(c *config.Config) *string { return &c.Cookies }),
	"user_agent":       stringField(func(c *config.Config) *string { return &c.UserAgent }),
	"reload_schedule":  stringField(func(c *config.Config) *string { return &c.ReloadSchedule }),
	"log_file":         stringField(func(c *config.Config) *string { return &c.LogFile }),
	"theme": {
		get: func(c *config.Config) string { return c.Theme },
		set: func(c *config.Config, value string) error {
			c.Theme = strings.ToLower(value)
			return nil
		},
	},
	"sort_mode": {
		get: func(c *config.Config) string { return c.SortMode },
		set: func(c *config.Config, value string) error {
			c.SortMode = strings.ToLower(value)
			return nil
		},
	},
	"request_timeout_seconds": {
		get: func(c *config.Config) string { return strconv.Itoa(c.RequestTimeout) },
		set: func(c *config.Config, value string) error {
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("request_timeout_seconds must be an integer: %w", err)
			}
			c.RequestTimeout = n
			return nil
		},
	},
	"debug": {
		get: func(c *config.Config) string { return strconv.FormatBool(c.Debug) },
		set: func(c *config.Config, value string) error {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("debug must be true or false: %w", err)
			}
			c.Debug = b
			return nil
		},
	},
}

// GetConfigValue returns the value of key as text.
func GetConfigValue(cfg *config.Config, key string) (string, error) {
	field, ok := configFields[key]
	if !ok {
		return "", fmt.Errorf("unknown config key: %s", key)
	}
	return field.get(cfg), nil
}

// SetConfigValue updates key on a copy of cfg and returns the copy once it
// validates. cfg itself is never modified.
func SetConfigValue(cfg config.Config, key, value string) (config.Config, error) {
	field, ok := configFields[key]
	if !ok {
		return cfg, fmt.Errorf("unknown config key: %s", key)
	}
	if err := field.set(&cfg, strings.TrimSpace(value)); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return cfg, nil
}

// ListAvailableKeys returns every settable config key in sorted order.
func ListAvailableKeys() []string {
	keys := make([]string, 0, len(configFields))
	for k := range configFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

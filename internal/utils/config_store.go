package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultConfigFilenames are looked up, in order, in the working directory
// when no config file is given explicitly.
var DefaultConfigFilenames = []string{"indexstats.yaml", "indexstats.yml", "indexstats.json"}

// ConfigStore resolves which config file a run uses.
type ConfigStore struct {
	mu        sync.RWMutex
	path      string
	filenames []string
}

// NewConfigStore creates a store that detects the given filenames. With no
// filenames DefaultConfigFilenames are used.
func NewConfigStore(filenames ...string) *ConfigStore {
	if len(filenames) == 0 {
		filenames = DefaultConfigFilenames
	}
	return &ConfigStore{filenames: filenames}
}

// Path returns the resolved absolute config file path or empty if unset.
func (s *ConfigStore) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// SetPath normalises and stores the provided path. An empty path clears
// the stored value. The resolved absolute path is returned.
func (s *ConfigStore) SetPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		s.mu.Lock()
		s.path = ""
		s.mu.Unlock()
		return "", nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("determine working directory: %w", err)
	}

	s.mu.Lock()
	s.path = absPath
	s.mu.Unlock()
	return absPath, nil
}

// DetectDefault returns the first known config file that exists in dir.
func (s *ConfigStore) DetectDefault(dir string) (string, bool) {
	for _, name := range s.filenames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Resolve picks the config file for this run: explicit wins, then a known
// file in the working directory. An empty result means the caller should
// fall back to its own default location.
func (s *ConfigStore) Resolve(explicit string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return s.SetPath(explicit)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determine working directory: %w", err)
	}
	if path, ok := s.DetectDefault(cwd); ok {
		return s.SetPath(path)
	}
	return s.SetPath("")
}

package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigStoreExplicitPath(t *testing.T) {
	s := NewConfigStore()
	got, err := s.Resolve("relative/config.yaml")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !filepath.IsAbs(got) || filepath.Base(got) != "config.yaml" {
		t.Fatalf("Resolve = %q", got)
	}
	if s.Path() != got {
		t.Fatalf("Path = %q, want %q", s.Path(), got)
	}
}

func TestConfigStoreDetectDefault(t *testing.T) {
	dir := t.TempDir()
	s := NewConfigStore()

	if _, ok := s.DetectDefault(dir); ok {
		t.Fatalf("nothing to detect in an empty dir")
	}

	jsonPath := filepath.Join(dir, "indexstats.json")
	yamlPath := filepath.Join(dir, "indexstats.yaml")
	for _, p := range []string{jsonPath, yamlPath} {
		if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, ok := s.DetectDefault(dir)
	if !ok || got != yamlPath {
		t.Fatalf("DetectDefault = %q, %v; yaml should win", got, ok)
	}
}

func TestConfigStoreClear(t *testing.T) {
	s := NewConfigStore("custom.json")
	if _, err := s.SetPath("x.json"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SetPath("  "); err != nil {
		t.Fatal(err)
	}
	if s.Path() != "" {
		t.Fatalf("path not cleared: %q", s.Path())
	}
}

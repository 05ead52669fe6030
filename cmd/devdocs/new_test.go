package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/senghongH/devdocs/internal/config"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Array Methods", "array-methods"},
		{"The Event Loop!", "the-event-loop"},
		{"  spaced  out  ", "spaced-out"},
		{"C# Records & Structs", "c-records-structs"},
		{"already-slugged", "already-slugged"},
	}

	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScaffoldPage(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ContentDir = filepath.Join(t.TempDir(), "content")

	path, err := scaffoldPage(cfg, "nodejs", "Worker Threads")
	if err != nil {
		t.Fatal(err)
	}

	if filepath.Base(path) != "worker-threads.md" {
		t.Errorf("path = %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	body := string(data)
	if !strings.HasPrefix(body, "# Worker Threads") {
		t.Errorf("missing title heading: %q", body)
	}
	if !strings.Contains(body, "```javascript") {
		t.Errorf("missing language fence: %q", body)
	}

	// Refusing to overwrite
	if _, err := scaffoldPage(cfg, "nodejs", "Worker Threads"); err == nil {
		t.Error("expected error for existing page")
	}
}

func TestIsKnownSection(t *testing.T) {
	for _, s := range knownSections {
		if !isKnownSection(s) {
			t.Errorf("%q should be known", s)
		}
	}
	if isKnownSection("rust") {
		t.Error("rust is not a section")
	}
}

package source

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestScanSessions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "projects", "-Users-me-projects-gitlore", "abc.jsonl"), "{}\n")
	writeFile(t, filepath.Join(dir, "projects", "-Users-me-projects-gitlore", "def.jsonl"), "{}\n")
	writeFile(t, filepath.Join(dir, "projects", "-Users-me-dev-api", "ghi.jsonl"), "{}\n")
	writeFile(t, filepath.Join(dir, "projects", "-Users-me-dev-api", "notes.txt"), "skip me")
	writeFile(t, filepath.Join(dir, "stray.jsonl"), "{}\n")
	writeFile(t, filepath.Join(dir, "history.jsonl"), "{}\n")

	files := ScanSessions(dir)
	if len(files) != 4 {
		t.Fatalf("got %d files, want 4", len(files))
	}

	byID := make(map[string]DiscoveredSession)
	for _, f := range files {
		byID[f.SessionID] = f
	}

	if got := byID["abc"].Project; got != "/Users/me/projects/gitlore" {
		t.Errorf("abc project = %q", got)
	}
	if got := byID["stray"].Project; got != "root" {
		t.Errorf("stray project = %q, want root", got)
	}
	if _, found := byID["history"]; found {
		t.Error("history.jsonl must not be scanned as a session")
	}

	if got := CountProjects(files); got != 3 {
		t.Errorf("CountProjects = %d, want 3", got)
	}
}

func TestScanSessions_MissingDir(t *testing.T) {
	files := ScanSessions(filepath.Join(t.TempDir(), "nope"))
	if len(files) != 0 {
		t.Errorf("got %d files for missing dir, want 0", len(files))
	}
}

func TestDecodeProjectPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"encoded absolute", "-Users-me-projects-gitlore", "/Users/me/projects/gitlore"},
		{"no marker unchanged", "scratch", "scratch"},
		{"already decoded", "/Users/me/projects/gitlore", "/Users/me/projects/gitlore"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeProjectPath(tt.input)
			if got != tt.want {
				t.Errorf("DecodeProjectPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := DecodeProjectPath(got); again != got {
				t.Errorf("decode not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestProjectDisplayName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/Users/me/projects/gitlore", "gitlore"},
		{"/Users/me/dev/api/", "api"},
		{"scratch", "scratch"},
		{"root", "root"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ProjectDisplayName(tt.input); got != tt.want {
			t.Errorf("ProjectDisplayName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

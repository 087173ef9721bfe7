package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "rush.yaml")
	content := "truncation-factor: 4\nmulti-line-prompt: true\n"
	if err := os.WriteFile(fname, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(fname)
	if err != nil {
		t.Fatalf("LoadConfig errors: %v", err)
	}
	want := Config{TruncationFactor: 4, MultiLinePrompt: true}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "no-such-file.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig of missing file errors: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_MalformedFileErrors(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "rush.yaml")
	if err := os.WriteFile(fname, []byte("truncation-factor: [oops\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(fname); err == nil {
		t.Errorf("LoadConfig of malformed file does not error")
	}
}

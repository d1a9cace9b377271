package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "realistly.yaml")

	out, err := executeCommand("config", "init", path)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output = %q, want path", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	if _, err := executeCommand("config", "init", path); err == nil {
		t.Error("expected refusal to overwrite")
	}
	if _, err := executeCommand("config", "init", path, "--force"); err != nil {
		t.Errorf("force overwrite: %v", err)
	}
}

func TestConfigShow(t *testing.T) {
	out, err := executeCommand("config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"classifier:", "gazetteer:", "Indiranagar", "min_length: 5"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestConfigShowCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pune.yaml")
	if err := os.WriteFile(path, []byte("gazetteer: [Baner, Kothrud]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand("--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "Kothrud") || strings.Contains(out, "Indiranagar") {
		t.Errorf("expected custom gazetteer only:\n%s", out)
	}
}

func TestConfigShowDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pune.yaml")
	if err := os.WriteFile(path, []byte("gazetteer: [Baner]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand("--config", path, "config", "show", "--default")
	if err != nil {
		t.Fatalf("config show --default: %v", err)
	}
	if !strings.HasPrefix(out, "# Default realistly configuration") {
		t.Errorf("expected embedded file with comments:\n%s", out)
	}
	if !strings.Contains(out, "Indiranagar") {
		t.Error("--default should ignore --config")
	}
}

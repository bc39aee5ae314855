package overrides

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/portico-home/portico/internal/logger"
)

func TestLoaderLoadJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "overrides.json")

	content := `{
		"omv": {"Name": "Storage", "Hide": false, "Enable": true, "Badge": "new"},
		"pihole": {"Hide": true},
		"nas": {"Enable": true, "Url": "https://nas.example.com"}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create override file: %v", err)
	}

	loader := NewLoader(path, logger.New("error", false))
	records, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Load() = %d records, want 3", len(records))
	}

	omv := records["omv"]
	if omv.Name != "Storage" || omv.Badge != "new" {
		t.Errorf("omv = %+v, want Name and Badge set", omv)
	}
	if omv.Enable == nil || !*omv.Enable {
		t.Errorf("omv.Enable = %v, want explicit true", omv.Enable)
	}
	if !records["pihole"].Hide {
		t.Error("pihole.Hide = false, want true")
	}
	if records["nas"].URL != "https://nas.example.com" {
		t.Errorf("nas.URL = %q, want single url field", records["nas"].URL)
	}
	// Absent tri-state stays unset.
	if records["pihole"].Enable != nil {
		t.Errorf("pihole.Enable = %v, want nil", records["pihole"].Enable)
	}
}

func TestLoaderLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "overrides.yaml")

	content := `---
omv:
  Name: Storage
  Enable: false
wiki:
  URLs:
    - https://wiki.example.com
    - https://wiki-alt.example.com
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create override file: %v", err)
	}

	loader := NewLoader(path, logger.New("error", false))
	records, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if records["omv"].Enable == nil || *records["omv"].Enable {
		t.Errorf("omv.Enable = %v, want explicit false", records["omv"].Enable)
	}
	if len(records["wiki"].URLs) != 2 {
		t.Errorf("wiki.URLs = %v, want 2 entries", records["wiki"].URLs)
	}
}

func TestLoaderMissingFileIsNotAnError(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "absent.json"), logger.New("error", false))
	records, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if len(records) != 0 {
		t.Errorf("Load() = %v, want empty map", records)
	}
}

func TestLoaderEmptyPathDisablesOverrides(t *testing.T) {
	loader := NewLoader("", logger.New("error", false))
	records, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Load() = %v, want empty map", records)
	}
}

func TestLoaderMalformedFileIsAnError(t *testing.T) {
	tmpDir := t.TempDir()

	jsonPath := filepath.Join(tmpDir, "bad.json")
	if err := os.WriteFile(jsonPath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Failed to create override file: %v", err)
	}
	if _, err := NewLoader(jsonPath, logger.New("error", false)).Load(); err == nil {
		t.Error("Load() error = nil for malformed JSON, want error")
	}

	yamlPath := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(yamlPath, []byte(":\n\t- broken"), 0o644); err != nil {
		t.Fatalf("Failed to create override file: %v", err)
	}
	if _, err := NewLoader(yamlPath, logger.New("error", false)).Load(); err == nil {
		t.Error("Load() error = nil for malformed YAML, want error")
	}
}

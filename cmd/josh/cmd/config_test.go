package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

const testConfigDoc = `
wind:
  speed: [2.5, "m / s"]
label: "north field"
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sim.jshc")
	if err := os.WriteFile(path, []byte(testConfigDoc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunConfigValidateListsNames(t *testing.T) {
	path := writeTestConfig(t)
	if err := runConfigValidate(nil, []string{path}); err != nil {
		t.Fatalf("runConfigValidate: %v", err)
	}
}

func TestRunConfigGetResolvesKnownName(t *testing.T) {
	path := writeTestConfig(t)
	if err := runConfigGet(nil, []string{path, "label"}); err != nil {
		t.Fatalf("runConfigGet: %v", err)
	}
}

func TestRunConfigGetFailsOnUnknownName(t *testing.T) {
	path := writeTestConfig(t)
	if err := runConfigGet(nil, []string{path, "nonexistent"}); err == nil {
		t.Fatal("expected error for unknown config name")
	}
}

func TestLoadConfigFailsOnMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.jshc")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

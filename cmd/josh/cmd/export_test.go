package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joshsim/joshc/internal/joshexport"
)

func writeTestExportFile(t *testing.T) string {
	t.Helper()
	line1, err := joshexport.EncodeRow(joshexport.Row{"name": "deer-1", "age": "3"}, 0, 0)
	if err != nil {
		t.Fatalf("EncodeRow: %v", err)
	}
	line2, err := joshexport.EncodeRow(joshexport.Row{"name": "deer-2", "age": "1"}, 1, 0)
	if err != nil {
		t.Fatalf("EncodeRow: %v", err)
	}
	path := filepath.Join(t.TempDir(), "rows.jsonl")
	if err := os.WriteFile(path, []byte(line1+"\n"+line2+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunExportViewPrintsRows(t *testing.T) {
	path := writeTestExportFile(t)
	if err := runExportView(nil, []string{path}); err != nil {
		t.Fatalf("runExportView: %v", err)
	}
}

func TestRunExportViewFailsOnMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	if err := os.WriteFile(path, []byte("not json\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := runExportView(nil, []string{path}); err == nil {
		t.Fatal("expected error for malformed row")
	}
}

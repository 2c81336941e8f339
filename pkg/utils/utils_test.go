package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestColorLoggerPrefixesLines(t *testing.T) {
	color.NoColor = true
	var b bytes.Buffer

	w := NewColorLogger("a-very-long-configuration-name", &b, true)
	p := []byte("{\n  \"id\": \"x\"\n}")
	n, err := w.Write(p)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(p) {
		t.Errorf("expected %d bytes written, got %d", len(p), n)
	}

	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), b.String())
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "a-very-long-confi... | ") {
			t.Errorf("line not prefixed: %q", line)
		}
	}
}

func TestDocumentFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yml", "a.json", "notes.txt", filepath.Join("nested", "c.YAML")} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	files, err := DocumentFiles(dir)
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.yml"), filepath.Join(dir, "nested", "c.YAML")}
	if strings.Join(files, ",") != strings.Join(expected, ",") {
		t.Errorf("expected %v, got %v", expected, files)
	}
}

func TestDocumentFilesMissingDir(t *testing.T) {
	if _, err := DocumentFiles(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

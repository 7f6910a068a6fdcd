package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nevindra/fiscus/extraction"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "Fiscus, version 0.1.0.") {
		t.Errorf("output = %q", out)
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := runCommand(t, "--version")
	if err != nil {
		t.Fatalf("--version: %v", err)
	}
	if !strings.Contains(out, "Fiscus, version 0.1.0.") {
		t.Errorf("output = %q", out)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := runCommand(t, "bogus")
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("err = %v", err)
	}
}

func TestInitCommand(t *testing.T) {
	src := filepath.Join(t.TempDir(), "statement.pdf")
	if err := os.WriteFile(src, []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(t.TempDir(), "work")

	out, err := runCommand(t, "init", src, dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "Registered") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "document_metadata.json")); err != nil {
		t.Errorf("metadata not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "document.pdf")); err != nil {
		t.Errorf("document copy not written: %v", err)
	}
}

func TestInitCommandMissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := runCommand(t, "init", filepath.Join(dir, "absent.pdf"), filepath.Join(dir, "work"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	table := "Date,Amount\n2024-01-02,12.50\n"
	if err := os.WriteFile(filepath.Join(dir, "page-1-table.csv"), []byte(table), 0o644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(t.TempDir(), "out.csv")

	out, err := runCommand(t, "export", dir, "-o", outPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "Wrote") {
		t.Errorf("output = %q", out)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output file: %v", err)
	}
	if !strings.Contains(string(data), "2024-01-02") {
		t.Errorf("exported CSV = %q", data)
	}
}

func TestExtractUnknownMethod(t *testing.T) {
	_, err := runCommand(t, "extract", t.TempDir(), "--method", "bogus")
	if err == nil || !strings.Contains(err.Error(), "unknown extract method") {
		t.Errorf("err = %v", err)
	}
}

func TestPageReporter(t *testing.T) {
	buf := &bytes.Buffer{}
	report := pageReporter(buf)

	report(extraction.PageEvent{Page: 1, Total: 3, Artifact: extraction.ArtifactParams})
	report(extraction.PageEvent{Page: 2, Total: 3, Artifact: extraction.ArtifactTable, Skipped: true})

	out := buf.String()
	if !strings.Contains(out, "page 1/3") || !strings.Contains(out, "params") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "page 2/3") || !strings.Contains(out, "skipped") {
		t.Errorf("output = %q", out)
	}
}

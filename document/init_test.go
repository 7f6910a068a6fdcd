package document

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestInitCreatesLayout(t *testing.T) {
	src := writeSample(t, "statement.pdf", pdfSample)
	dir := filepath.Join(t.TempDir(), "doc")

	meta, err := Init(src, dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load after Init: %v", err)
	}
	if loaded != meta {
		t.Errorf("Load = %+v, want %+v", loaded, meta)
	}

	got, err := os.ReadFile(meta.Path(dir))
	if err != nil {
		t.Fatalf("read document copy: %v", err)
	}
	if !bytes.Equal(got, pdfSample) {
		t.Error("document copy differs from source")
	}
}

func TestInitOverwritesOnReinit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "doc")

	first := writeSample(t, "a.pdf", pdfSample)
	if _, err := Init(first, dir); err != nil {
		t.Fatal(err)
	}

	second := append(append([]byte{}, pdfSample...), []byte("% second revision\n")...)
	srcPath := writeSample(t, "b.pdf", second)
	meta, err := Init(srcPath, dir)
	if err != nil {
		t.Fatalf("re-init: %v", err)
	}
	if meta.Filename != "b.pdf" {
		t.Errorf("Filename = %q, want b.pdf", meta.Filename)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Filename != "b.pdf" {
		t.Errorf("metadata not overwritten: %+v", loaded)
	}
	got, err := os.ReadFile(loaded.Path(dir))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, second) {
		t.Error("document copy not overwritten")
	}
}

func TestInitMissingSource(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "doc")
	if _, err := Init(filepath.Join(t.TempDir(), "absent.pdf"), dir); err == nil {
		t.Fatal("expected error for missing source document")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("directory should not be created when detection fails")
	}
}

func TestInitUnsupportedSource(t *testing.T) {
	src := writeSample(t, "notes.txt", []byte("plain text\n"))
	dir := filepath.Join(t.TempDir(), "doc")
	if _, err := Init(src, dir); err == nil {
		t.Fatal("expected error for unsupported document type")
	}
}

package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var (
	pdfSample  = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
	pngSample  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	webpSample = []byte("RIFF\x00\x00\x00\x00WEBPVP8 ")
)

func writeSample(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDetectPDF(t *testing.T) {
	path := writeSample(t, "statement.pdf", pdfSample)

	meta, err := Detect(path)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if meta.FileType != TypePDF || meta.DetailedType != "pdf" {
		t.Errorf("got type %q/%q, want pdf/pdf", meta.FileType, meta.DetailedType)
	}
	if meta.Filename != "statement.pdf" {
		t.Errorf("Filename = %q", meta.Filename)
	}
	if meta.LocalFile != "document.pdf" {
		t.Errorf("LocalFile = %q", meta.LocalFile)
	}
}

func TestDetectImage(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		detailed string
	}{
		{"pic.png", pngSample, "png"},
		{"pic.webp", webpSample, "webp"},
	}
	for _, tt := range tests {
		meta, err := Detect(writeSample(t, tt.name, tt.data))
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if meta.FileType != TypeImage {
			t.Errorf("%s: FileType = %q, want image", tt.name, meta.FileType)
		}
		if meta.DetailedType != tt.detailed {
			t.Errorf("%s: DetailedType = %q, want %q", tt.name, meta.DetailedType, tt.detailed)
		}
	}
}

func TestDetectExtensionLowercased(t *testing.T) {
	meta, err := Detect(writeSample(t, "Statement.PDF", pdfSample))
	if err != nil {
		t.Fatal(err)
	}
	if meta.LocalFile != "document.pdf" {
		t.Errorf("LocalFile = %q, want document.pdf", meta.LocalFile)
	}
	if meta.Filename != "Statement.PDF" {
		t.Errorf("Filename = %q, want original casing kept", meta.Filename)
	}
}

func TestDetectUnsupported(t *testing.T) {
	path := writeSample(t, "notes.txt", []byte("just some plain text\n"))

	_, err := Detect(path)
	var unsupported *ErrUnsupportedType
	if !errors.As(err, &unsupported) {
		t.Fatalf("got %v, want ErrUnsupportedType", err)
	}
	if unsupported.Path != path {
		t.Errorf("Path = %q, want %q", unsupported.Path, path)
	}
	if strings.Contains(unsupported.MIME, ";") {
		t.Errorf("MIME %q should not carry parameters", unsupported.MIME)
	}
}

func TestDetectMissingFile(t *testing.T) {
	_, err := Detect(filepath.Join(t.TempDir(), "absent.pdf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLayoutPaths(t *testing.T) {
	dir := "docs/stmt"
	if got := MetadataPath(dir); got != filepath.Join(dir, "document_metadata.json") {
		t.Errorf("MetadataPath = %q", got)
	}
	if got := PageParamsPath(dir, 3); got != filepath.Join(dir, "page-3-params.json") {
		t.Errorf("PageParamsPath = %q", got)
	}
	if got := PageTablePath(dir, 12); got != filepath.Join(dir, "page-12-table.csv") {
		t.Errorf("PageTablePath = %q", got)
	}
	if got := PageCategorizedPath(dir, 1); got != filepath.Join(dir, "page-1-categorized.csv") {
		t.Errorf("PageCategorizedPath = %q", got)
	}
	m := Metadata{LocalFile: "document.pdf"}
	if got := m.Path(dir); got != filepath.Join(dir, "document.pdf") {
		t.Errorf("Metadata.Path = %q", got)
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing metadata")
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(MetadataPath(dir), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

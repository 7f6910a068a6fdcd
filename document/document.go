// Package document manages document directories: self-contained working
// directories holding a canonical copy of a source document, a metadata
// file describing it, and the per-page artifacts produced by extraction.
//
// A directory is created with Init, which detects the document type from
// its content and lays down the metadata file and the document copy under
// a rollback guard so a failed initialization leaves no partial state.
package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FileType is the general category of a document.
type FileType string

// Supported document categories.
const (
	TypePDF   FileType = "pdf"
	TypeWord  FileType = "word"
	TypeExcel FileType = "excel"
	TypeImage FileType = "image"
)

// Metadata describes a document registered in a document directory.
// It is persisted as document_metadata.json inside the directory.
type Metadata struct {
	// Filename is the base name of the original source file.
	Filename string `json:"filename"`
	// LocalFile is the name of the canonical copy inside the directory,
	// always "document" plus the original extension.
	LocalFile string `json:"local_file"`
	// FileType is the general category of the file.
	FileType FileType `json:"file_type"`
	// DetailedType is the specific format or version of the file type,
	// such as "word2007+" or "png".
	DetailedType string `json:"detailed_type"`
}

// ErrUnsupportedType reports a document whose content type is not handled.
type ErrUnsupportedType struct {
	Path string
	MIME string
}

func (e *ErrUnsupportedType) Error() string {
	return fmt.Sprintf("unsupported file type %s for file %s", e.MIME, e.Path)
}

// Detect builds Metadata for the file at path by sniffing its content
// type. It returns *ErrUnsupportedType when the type is not one of the
// supported categories.
func Detect(path string) (Metadata, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("detect document type: %w", err)
	}

	mime := mtype.String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}

	var fileType FileType
	var detailedType string
	switch {
	case mtype.Is("application/pdf"):
		fileType, detailedType = TypePDF, "pdf"
	case mtype.Is("application/msword"):
		fileType, detailedType = TypeWord, "word2003"
	case mtype.Is("application/vnd.openxmlformats-officedocument.wordprocessingml.document"):
		fileType, detailedType = TypeWord, "word2007+"
	case mtype.Is("application/vnd.ms-excel"):
		fileType, detailedType = TypeExcel, "excel2003"
	case mtype.Is("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"):
		fileType, detailedType = TypeExcel, "excel2007+"
	case strings.HasPrefix(mime, "image/"):
		fileType, detailedType = TypeImage, strings.TrimPrefix(mime, "image/")
	default:
		return Metadata{}, &ErrUnsupportedType{Path: path, MIME: mime}
	}

	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))

	return Metadata{
		Filename:     base,
		LocalFile:    "document" + ext,
		FileType:     fileType,
		DetailedType: detailedType,
	}, nil
}

// Load reads the metadata file from a document directory.
func Load(dir string) (Metadata, error) {
	data, err := os.ReadFile(MetadataPath(dir))
	if err != nil {
		return Metadata{}, fmt.Errorf("read document metadata: %w", err)
	}
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, fmt.Errorf("parse document metadata: %w", err)
	}
	return m, nil
}

func writeMetadata(path string, m Metadata) error {
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return fmt.Errorf("encode document metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write document metadata: %w", err)
	}
	return nil
}

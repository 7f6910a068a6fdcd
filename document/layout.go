package document

import (
	"fmt"
	"path/filepath"
)

// MetadataPath returns the location of the metadata file inside a
// document directory.
func MetadataPath(dir string) string {
	return filepath.Join(dir, "document_metadata.json")
}

// Path returns the location of the canonical document copy inside a
// document directory.
func (m Metadata) Path(dir string) string {
	return filepath.Join(dir, m.LocalFile)
}

// PageParamsPath returns the parameter artifact for a 1-based page number.
func PageParamsPath(dir string, page int) string {
	return filepath.Join(dir, fmt.Sprintf("page-%d-params.json", page))
}

// PageTablePath returns the table artifact for a 1-based page number.
func PageTablePath(dir string, page int) string {
	return filepath.Join(dir, fmt.Sprintf("page-%d-table.csv", page))
}

// PageCategorizedPath returns the categorized-table artifact for a
// 1-based page number.
func PageCategorizedPath(dir string, page int) string {
	return filepath.Join(dir, fmt.Sprintf("page-%d-categorized.csv", page))
}

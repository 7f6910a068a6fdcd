package document

import (
	"fmt"
	"io"
	"os"

	"github.com/nevindra/fiscus/fileguard"
)

// Init registers the document at docPath inside dir. It detects the
// document type, creates dir if needed, writes the metadata file and
// places a canonical copy of the document next to it. Both files are
// written under a rollback guard so a failed initialization restores
// whatever was there before. Re-initializing an existing directory
// overwrites the metadata and the copy.
func Init(docPath, dir string) (Metadata, error) {
	meta, err := Detect(docPath)
	if err != nil {
		return Metadata{}, err
	}

	docCopy := meta.Path(dir)
	metaFile := MetadataPath(dir)

	err = fileguard.Run([]string{docCopy, metaFile}, func() error {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create document directory: %w", err)
		}
		if err := writeMetadata(metaFile, meta); err != nil {
			return err
		}
		return copyDocument(docPath, docCopy)
	})
	if err != nil {
		return Metadata{}, err
	}
	return meta, nil
}

// copyDocument copies file contents only. Unlike the guard's backups,
// the canonical copy does not carry over source file metadata.
func copyDocument(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create document copy: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy document: %w", err)
	}
	return out.Close()
}

// Package fileguard provides transactional rollback for a fixed set of files
// across a risky operation. Entering a scope snapshots each path's content
// and existence; if the operation fails, every path is restored to its
// snapshot state — prior bytes for files that existed, removal for files the
// operation created. On success nothing is touched and the caller's writes
// stand.
//
// The guard assumes a single caller mutating the paths sequentially. Two
// active scopes over the same path are a precondition violation; scopes over
// disjoint paths nest freely since each owns a private backup area.
package fileguard

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// entry records one protected path and its pre-scope state.
type entry struct {
	path    string
	existed bool
	backup  string // backup file path; set only when existed
}

// Guard holds the snapshots for one scope. Create it with Protect, roll back
// with Restore, and always Close to release the backup area. Most callers
// should use Run instead of driving a Guard by hand.
type Guard struct {
	dir     string
	entries []entry
	closed  bool
}

// Protect snapshots the given paths and returns a Guard over them. Existing
// files are copied byte-for-byte (permissions and modification time included)
// into a private temporary directory; missing files are recorded as absent.
// Duplicate paths are recorded once. Any snapshot failure aborts: the partial
// backup area is removed and no Guard is returned.
func Protect(paths ...string) (*Guard, error) {
	dir, err := os.MkdirTemp("", "fileguard-")
	if err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	g := &Guard{dir: dir}

	seen := make(map[string]bool, len(paths))
	for i, p := range paths {
		if seen[p] {
			continue
		}
		seen[p] = true

		_, err := os.Stat(p)
		switch {
		case err == nil:
			// Index plus basename keeps same-named files in different
			// directories from colliding in the backup area.
			backup := filepath.Join(dir, fmt.Sprintf("backup_%d_%s", i, filepath.Base(p)))
			if err := copyFile(p, backup); err != nil {
				g.Close()
				return nil, fmt.Errorf("snapshot %s: %w", p, err)
			}
			g.entries = append(g.entries, entry{path: p, existed: true, backup: backup})
		case errors.Is(err, fs.ErrNotExist):
			g.entries = append(g.entries, entry{path: p, existed: false})
		default:
			g.Close()
			return nil, fmt.Errorf("snapshot %s: %w", p, err)
		}
	}
	return g, nil
}

// Restore puts every protected path back to its snapshot state, in the order
// they were recorded: files that existed are overwritten from their backups
// (recreated if deleted), files that were absent are removed if they now
// exist. Restoration is best-effort — every entry is attempted even when an
// earlier one fails — and failures come back joined. A missing backup is
// skipped rather than treated as an error. Call before Close; after Close
// the backups are gone.
func (g *Guard) Restore() error {
	var errs []error
	for _, e := range g.entries {
		if e.existed {
			if _, err := os.Stat(e.backup); err != nil {
				continue
			}
			if err := copyFile(e.backup, e.path); err != nil {
				errs = append(errs, fmt.Errorf("restore %s: %w", e.path, err))
			}
		} else {
			if err := os.Remove(e.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, fmt.Errorf("remove %s: %w", e.path, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close deletes the backup area. Idempotent.
func (g *Guard) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	return os.RemoveAll(g.dir)
}

// Run executes fn with the given paths under guard. If fn returns an error
// or panics, every path is restored to its pre-Run state and the original
// error (or panic value) propagates unchanged — restoration failures never
// mask it. On success the files are left exactly as fn wrote them. The
// backup area is removed on every exit path. A snapshot failure returns
// before fn runs.
func Run(paths []string, fn func() error) error {
	g, err := Protect(paths...)
	if err != nil {
		return err
	}
	defer g.Close()
	defer func() {
		if r := recover(); r != nil {
			_ = g.Restore()
			panic(r)
		}
	}()

	if err := fn(); err != nil {
		_ = g.Restore()
		return err
	}
	return nil
}

// copyFile copies src to dst, truncating dst if it exists, and carries over
// the source's permission bits and modification time so a snapshot (and a
// restore from one) is faithful to the original file's metadata.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

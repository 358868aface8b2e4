package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	ferrors "git.home.luguber.info/inful/moss/internal/foundation/errors"
	"git.home.luguber.info/inful/moss/internal/logfields"
	"git.home.luguber.info/inful/moss/internal/util/sets"
)

// skippedDirs are directory names never descended into: the generator's
// own state and version control metadata. Other dot-prefixed entries are
// ordinary content.
var skippedDirs = sets.New(".moss", ".git", ".hg", ".svn")

// Result is the raw output of a folder walk.
type Result struct {
	Files    []FileRecord
	Warnings []ferrors.Warning
}

// Scan walks every regular file under root.
//
// A missing root or a root that is not a directory is fatal. Anything that
// goes wrong with an individual entry below root is recorded as a
// PartialScan warning and the walk continues.
func Scan(root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.InputError(fmt.Sprintf("folder does not exist: %s", root)).
				WithCause(ErrNotFound).
				WithContext("path", root).
				Build()
		}
		return nil, ferrors.InputError(fmt.Sprintf("cannot access folder: %s", root)).
			WithCause(err).
			WithContext("path", root).
			Build()
	}
	if !info.IsDir() {
		return nil, ferrors.InputError(fmt.Sprintf("path is not a folder: %s", root)).
			WithCause(ErrNotADirectory).
			WithContext("path", root).
			Build()
	}

	slog.Debug("Scanning folder", logfields.Path(root))
	return ScanFS(os.DirFS(root)), nil
}

// ScanFS walks fsys from its root. It never fails; unreadable entries become warnings.
func ScanFS(fsys fs.FS) *Result {
	res := &Result{Files: make([]FileRecord, 0)}

	_ = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			res.warn(p, fmt.Errorf("%w: %w", ErrEntryUnreadable, err))
			if d != nil && d.IsDir() && p != "." {
				return fs.SkipDir
			}
			return nil
		}
		if p == "." {
			return nil
		}

		if d.IsDir() {
			if skippedDirs.Has(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}

		info, ok := res.resolve(fsys, p, d)
		if !ok || !info.Mode().IsRegular() {
			return nil
		}

		size := uint64(0)
		if info.Size() > 0 {
			size = uint64(info.Size())
		}
		rec := NewFileRecord(p, size, info.ModTime())
		res.Files = append(res.Files, rec)

		slog.Debug("Discovered file",
			logfields.File(p),
			slog.String("type", rec.Type().String()),
			slog.Uint64("size", rec.SizeBytes))
		return nil
	})

	return res
}

// resolve returns file metadata for an entry, following symlinks without
// descending into linked directories.
func (r *Result) resolve(fsys fs.FS, p string, d fs.DirEntry) (fs.FileInfo, bool) {
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := fs.Stat(fsys, p)
		if err != nil {
			r.warn(p, fmt.Errorf("%w: %w", ErrBrokenSymlink, err))
			return nil, false
		}
		if info.IsDir() {
			slog.Debug("Not following directory symlink", logfields.Path(p))
			return nil, false
		}
		return info, true
	}

	info, err := d.Info()
	if err != nil {
		r.warn(p, fmt.Errorf("%w: %w", ErrEntryUnreadable, err))
		return nil, false
	}
	return info, true
}

func (r *Result) warn(p string, err error) {
	slog.Warn("Skipping unreadable entry", logfields.Path(p), logfields.Error(err))
	r.Warnings = append(r.Warnings, ferrors.Warning{Kind: ferrors.WarningPartialScan, Path: p, Err: err})
}


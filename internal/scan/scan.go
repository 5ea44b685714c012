// Package scan lists the immediate children of a directory.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"pigeonhole/internal/model"
)

// Scanner enumerates one directory, one level deep.
type Scanner struct {
	dir string
}

// New returns a Scanner for dir.
func New(dir string) *Scanner {
	return &Scanner{dir: dir}
}

// Dir returns the scanned directory.
func (s *Scanner) Dir() string {
	return s.dir
}

// Scan returns the names of the directory's immediate children. Directory
// names come first when showDirs is set; otherwise only files are returned.
// Names keep the order the filesystem reports them in.
func (s *Scanner) Scan(showDirs bool) ([]string, error) {
	f, err := os.Open(s.dir)
	if err != nil {
		return []string{}, model.NewError(model.DirReadError, "", errors.Wrapf(err, "open %s", s.dir))
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return []string{}, model.NewError(model.DirReadError, "", errors.Wrapf(err, "list %s", s.dir))
	}

	var dirs, files []string
	for _, e := range entries {
		if s.isDir(e) {
			dirs = append(dirs, e.Name())
		} else {
			files = append(files, e.Name())
		}
	}

	names := make([]string, 0, len(entries))
	if showDirs {
		names = append(names, dirs...)
	}
	return append(names, files...), nil
}

// isDir follows symlinks; a dangling link counts as a file.
func (s *Scanner) isDir(e fs.DirEntry) bool {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.IsDir()
	}
	info, err := os.Stat(filepath.Join(s.dir, e.Name()))
	return err == nil && info.IsDir()
}

// FilterHidden drops dot-names unless showHidden is set.
func FilterHidden(names []string, showHidden bool) []string {
	if showHidden {
		return names
	}
	visible := make([]string, 0, len(names))
	for _, n := range names {
		if !model.IsHidden(n) {
			visible = append(visible, n)
		}
	}
	return visible
}

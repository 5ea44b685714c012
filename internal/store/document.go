// Package store persists the entries and flags documents. Every read
// loads the whole document and every write replaces it whole.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"pigeonhole/internal/logging"
	"pigeonhole/internal/model"
)

// Document is one JSON file holding a value of type T.
type Document[T any] struct {
	path string
	name string // "entries" or "flags", used in error messages
	log  *zap.Logger
}

func newDocument[T any](path, name string) *Document[T] {
	return &Document[T]{
		path: path,
		name: name,
		log:  logging.Named("store").With(zap.String("doc", name)),
	}
}

// Path returns the backing file path.
func (d *Document[T]) Path() string {
	return d.path
}

// Read loads and decodes the document. On failure the zero T is returned
// with a ReadError or ParseError.
func (d *Document[T]) Read() (T, error) {
	var zero, v T

	data, err := os.ReadFile(d.path)
	if err != nil {
		return zero, model.NewError(model.ReadError, d.name, errors.Wrapf(err, "read %s", d.path))
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, model.NewError(model.ParseError, d.name, errors.Wrapf(err, "decode %s", d.path))
	}

	d.log.Debug("read", zap.String("path", d.path), zap.Int("bytes", len(data)))
	return v, nil
}

// Write replaces the document with v, indented for humans. The content is
// written to a temporary file in the same directory and renamed over the
// old document, so readers see either the old or the new content.
func (d *Document[T]) Write(v T) (T, error) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return v, model.NewError(model.WriteError, d.name, errors.Wrap(err, "encode"))
	}
	data = append(data, '\n')

	if err := writeAtomic(d.path, data); err != nil {
		return v, model.NewError(model.WriteError, d.name, err)
	}

	d.log.Debug("wrote", zap.String("path", d.path), zap.Int("bytes", len(data)))
	return v, nil
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "create temp file in %s", dir)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "write %s", tmpPath)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "sync %s", tmpPath)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", tmpPath)
	}
	mode := os.FileMode(0644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}
	if err = os.Chmod(tmpPath, mode); err != nil {
		return errors.Wrapf(err, "chmod %s", tmpPath)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return errors.Wrapf(err, "replace %s", path)
	}
	return nil
}

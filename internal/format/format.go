// Package format turns directory entry names into stored records.
package format

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"pigeonhole/internal/logging"
	"pigeonhole/internal/model"
)

// Formatter builds EntryRecords for names inside one directory.
type Formatter struct {
	dir string
	log *zap.Logger
}

// New returns a Formatter for entries of dir.
func New(dir string) *Formatter {
	return &Formatter{dir: dir, log: logging.Named("format")}
}

// Format stats name and returns a record with exactly the keys of schema,
// in schema order. An empty schema means model.DefaultSchema. An entry that
// vanished or cannot be stat'ed yields a DirReadError and no record.
func (f *Formatter) Format(name string, schema []string) (model.EntryRecord, error) {
	if len(schema) == 0 {
		schema = model.DefaultSchema
	}

	path := filepath.Join(f.dir, name)
	info, err := os.Stat(path)
	if err != nil && os.IsNotExist(err) {
		// A dangling symlink still exists as a link
		info, err = os.Lstat(path)
	}
	if err != nil {
		return nil, model.NewError(model.DirReadError, "", errors.Wrapf(err, "stat %s", path))
	}

	e := entry{name: name, path: path, info: info}
	rec := make(model.EntryRecord, 0, len(schema))
	for _, field := range schema {
		value := model.Sentinel
		if extract, ok := extractors[field]; ok {
			value = extract(e)
		} else {
			f.log.Debug("no extractor for field", zap.String("field", field))
		}
		rec = append(rec, model.Field{Key: field, Value: value})
	}
	return rec, nil
}

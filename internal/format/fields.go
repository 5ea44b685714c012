package format

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/h2non/filetype"

	"pigeonhole/internal/model"
)

// TimeLayout renders modification times: local, second precision, no zone.
const TimeLayout = "2006-01-02 15:04:05"

// entry is everything an extractor may look at.
type entry struct {
	name string
	path string
	info fs.FileInfo
}

type extractor func(e entry) string

// extractors maps every known field name to the function producing it.
// Fields that do not apply to directories return the sentinel for them.
var extractors = map[string]extractor{
	model.FieldName: func(e entry) string {
		return e.name
	},
	model.FieldLastModified: func(e entry) string {
		return e.info.ModTime().Local().Format(TimeLayout)
	},
	model.FieldSize: func(e entry) string {
		if e.info.IsDir() {
			return model.Sentinel
		}
		return strconv.FormatInt(e.info.Size(), 10)
	},
	model.FieldHumanSize: func(e entry) string {
		if e.info.IsDir() || e.info.Size() < 0 {
			return model.Sentinel
		}
		return humanize.Bytes(uint64(e.info.Size()))
	},
	model.FieldExtension: func(e entry) string {
		if e.info.IsDir() {
			return model.Sentinel
		}
		return extension(e.name)
	},
	model.FieldType: func(e entry) string {
		if e.info.IsDir() {
			return model.TypeDir
		}
		if !e.info.Mode().IsRegular() {
			return model.TypeFile
		}
		kind, err := filetype.MatchFile(e.path)
		if err != nil || kind == filetype.Unknown {
			return model.TypeFile
		}
		return kind.MIME.Value
	},
}

// extension returns the suffix after the last dot, ignoring leading dots
// so ".bashrc" has none.
func extension(name string) string {
	ext := filepath.Ext(strings.TrimLeft(name, "."))
	return strings.TrimPrefix(ext, ".")
}

// Known reports whether a field name has an extractor.
func Known(field string) bool {
	_, ok := extractors[field]
	return ok
}

// Fields lists every supported field name, sorted.
func Fields() []string {
	names := make([]string, 0, len(extractors))
	for name := range extractors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

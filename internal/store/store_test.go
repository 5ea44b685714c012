package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pigeonhole/internal/model"
)

func TestFlagStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewFlagStore(filepath.Join(dir, "flags.json"))

	for i := 0; i < 8; i++ {
		want := model.DisplayFlags{
			ShowHidden: i&1 != 0,
			ShowDirs:   i&2 != 0,
			RepeatShow: i&4 != 0,
		}
		written, err := s.Write(want)
		require.NoError(t, err)
		assert.Equal(t, want, written)

		got, err := s.Read()
		require.NoError(t, err)
		assert.Equal(t, want, got, "combination %d", i)
	}
}

func TestFlagDocumentShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")
	s := NewFlagStore(path)
	_, err := s.Write(model.DisplayFlags{ShowDirs: true})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "{\n    \"show_hidden\": false,\n    \"show_dirs\": true,\n    \"repeat_show\": false\n}\n"
	assert.Equal(t, want, string(data))
}

func TestEntryStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.json")
	s := NewEntryStore(path)

	records := model.Records{
		{{Key: model.FieldName, Value: "a.txt"}, {Key: model.FieldLastModified, Value: "2024-01-01 10:00:00"}, {Key: model.FieldSize, Value: "3"}},
		{{Key: model.FieldName, Value: "docs"}, {Key: model.FieldLastModified, Value: "2024-01-01 11:00:00"}, {Key: model.FieldSize, Value: model.Sentinel}},
	}
	_, err := s.Write(records)
	require.NoError(t, err)

	got, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, records, got)
	assert.Equal(t, []string{model.FieldName, model.FieldLastModified, model.FieldSize}, got.Schema())
}

func TestEntryStoreWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.json")
	s := NewEntryStore(path)

	_, err := s.Write(nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))

	got, err := s.Read()
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReadMissingDocument(t *testing.T) {
	s := NewEntryStore(filepath.Join(t.TempDir(), "missing.json"))

	got, err := s.Read()
	assert.True(t, errors.Is(err, model.ReadError))
	assert.NotNil(t, got)
	assert.Empty(t, got)

	var classified *model.Error
	require.True(t, errors.As(err, &classified))
	assert.Equal(t, "entries read error", classified.Message())
}

func TestReadMalformedDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "entries.json")
	require.NoError(t, os.WriteFile(path, []byte("[{\"Name\": "), 0644))

	got, err := NewEntryStore(path).Read()
	assert.True(t, errors.Is(err, model.ParseError))
	assert.Empty(t, got)

	flagsPath := filepath.Join(dir, "flags.json")
	require.NoError(t, os.WriteFile(flagsPath, []byte("not json"), 0644))
	_, err = NewFlagStore(flagsPath).Read()
	assert.True(t, errors.Is(err, model.ParseError))
}

func TestFailedWriteLeavesNoTrace(t *testing.T) {
	dir := t.TempDir()
	// A directory in place of the document makes the final rename fail.
	target := filepath.Join(dir, "entries.json")
	require.NoError(t, os.Mkdir(target, 0755))

	_, err := NewEntryStore(target).Write(model.Records{{{Key: model.FieldName, Value: "a"}}})
	assert.True(t, errors.Is(err, model.WriteError))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestWriteIntoMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "flags.json")
	_, err := NewFlagStore(path).Write(model.DisplayFlags{})
	assert.True(t, errors.Is(err, model.WriteError))
}

func TestWriteReplacesWholeDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.json")
	s := NewEntryStore(path)

	three := model.Records{
		{{Key: model.FieldName, Value: "a"}},
		{{Key: model.FieldName, Value: "b"}},
		{{Key: model.FieldName, Value: "c"}},
	}
	_, err := s.Write(three)
	require.NoError(t, err)

	_, err = s.Write(three[:1])
	require.NoError(t, err)

	got, err := s.Read()
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestWriteKeepsFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.json")
	s := NewEntryStore(path)

	_, err := s.Write(model.Records{})
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	require.NoError(t, os.Chmod(path, 0600))
	_, err = s.Write(model.Records{})
	require.NoError(t, err)
	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

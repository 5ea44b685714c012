package format

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pigeonhole/internal/model"
)

func value(t *testing.T, rec model.EntryRecord, key string) string {
	t.Helper()
	v, ok := rec.Get(key)
	require.True(t, ok, "missing field %q", key)
	return v
}

func TestFormatFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))
	mtime := time.Date(2024, 3, 4, 5, 6, 7, 0, time.Local)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	rec, err := New(dir).Format("notes.txt", nil)
	require.NoError(t, err)

	assert.Equal(t, model.DefaultSchema, rec.Keys())
	assert.Equal(t, "notes.txt", value(t, rec, model.FieldName))
	assert.Equal(t, "2024-03-04 05:06:07", value(t, rec, model.FieldLastModified))
	assert.Equal(t, "5", value(t, rec, model.FieldSize))
}

func TestFormatDirectorySentinel(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "docs"), 0755))

	schema := []string{model.FieldName, model.FieldSize, model.FieldExtension, model.FieldHumanSize, model.FieldType}
	rec, err := New(dir).Format("docs", schema)
	require.NoError(t, err)

	assert.Equal(t, model.Sentinel, value(t, rec, model.FieldSize))
	assert.Equal(t, model.Sentinel, value(t, rec, model.FieldExtension))
	assert.Equal(t, model.Sentinel, value(t, rec, model.FieldHumanSize))
	assert.Equal(t, model.TypeDir, value(t, rec, model.FieldType))
	assert.True(t, rec.IsDir())
}

func TestFormatFollowsSchemaOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.tar.gz"), []byte("abc"), 0644))

	schema := []string{model.FieldSize, model.FieldExtension, model.FieldName, "Owner"}
	rec, err := New(dir).Format("a.tar.gz", schema)
	require.NoError(t, err)

	assert.Equal(t, schema, rec.Keys())
	assert.Equal(t, "gz", value(t, rec, model.FieldExtension))
	assert.Equal(t, model.Sentinel, value(t, rec, "Owner"))
}

func TestFormatDetectsContentType(t *testing.T) {
	dir := t.TempDir()
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img.bin"), png, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain"), []byte("just text"), 0644))

	f := New(dir)
	schema := []string{model.FieldName, model.FieldType, model.FieldHumanSize}

	rec, err := f.Format("img.bin", schema)
	require.NoError(t, err)
	assert.Equal(t, "image/png", value(t, rec, model.FieldType))
	assert.Equal(t, "12 B", value(t, rec, model.FieldHumanSize))

	rec, err = f.Format("plain", schema)
	require.NoError(t, err)
	assert.Equal(t, model.TypeFile, value(t, rec, model.FieldType))
}

func TestFormatVanishedEntry(t *testing.T) {
	rec, err := New(t.TempDir()).Format("gone.txt", nil)
	assert.Nil(t, rec)
	assert.True(t, errors.Is(err, model.DirReadError))
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"a.txt":    "txt",
		"archive":  "",
		".bashrc":  "",
		".env.dev": "dev",
		"a.tar.gz": "gz",
	}
	for name, want := range tests {
		assert.Equal(t, want, extension(name), name)
	}
}

func TestFields(t *testing.T) {
	for _, f := range model.DefaultSchema {
		assert.True(t, Known(f))
	}
	assert.False(t, Known("Owner"))
	assert.Contains(t, Fields(), model.FieldType)
}

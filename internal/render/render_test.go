package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pigeonhole/internal/model"
)

func record(name, modified, size string) model.EntryRecord {
	return model.EntryRecord{
		{Key: model.FieldName, Value: name},
		{Key: model.FieldLastModified, Value: modified},
		{Key: model.FieldSize, Value: size},
	}
}

var sample = model.Records{
	record("docs", "2024-01-01 10:00:00", model.Sentinel),
	record("a.txt", "2024-01-02 11:30:00", "1234"),
}

func TestTableLayout(t *testing.T) {
	out, err := Table(sample)
	require.NoError(t, err)

	want := strings.Join([]string{
		"Name   | Last Modified       | Size",
		"-----------------------------------",
		"docs/  | 2024-01-01 10:00:00 | --  ",
		"a.txt  | 2024-01-02 11:30:00 | 1234",
		"-----------------------------------",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestTableKeepsInputOrder(t *testing.T) {
	rs := model.Records{
		record("z", "t", "1"),
		record("a", "t", "2"),
	}
	out, err := Table(rs)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(lines[2], "z "))
	assert.True(t, strings.HasPrefix(lines[3], "a "))
}

func TestTableUsesFirstRecordColumns(t *testing.T) {
	rs := model.Records{
		{{Key: model.FieldSize, Value: "10"}, {Key: model.FieldName, Value: "longer-name.txt"}},
	}
	out, err := Table(rs)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "Size | Name            ", lines[0])
	assert.Equal(t, "10   | longer-name.txt ", lines[2])
	assert.Equal(t, len(lines[0]), len(lines[1]))
}

func TestTableTypeFieldMarksDirectory(t *testing.T) {
	rs := model.Records{
		{{Key: model.FieldName, Value: "src"}, {Key: model.FieldType, Value: model.TypeDir}},
	}
	out, err := Table(rs)
	require.NoError(t, err)
	assert.Contains(t, out, "src/")
}

func TestTableNoItems(t *testing.T) {
	out, err := Table(model.Records{})
	assert.Empty(t, out)
	assert.True(t, errors.Is(err, ErrNoItems))

	_, err = Render(nil, StyleBox)
	assert.True(t, errors.Is(err, ErrNoItems))
}

func TestRenderStyles(t *testing.T) {
	csv, err := Render(sample, StyleCSV)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(csv, "Name,Last Modified,Size\n"))
	assert.Contains(t, csv, "docs/,2024-01-01 10:00:00,--")

	md, err := Render(sample, StyleMarkdown)
	require.NoError(t, err)
	assert.Contains(t, md, "| Name | Last Modified | Size |")

	box, err := Render(sample, StyleBox)
	require.NoError(t, err)
	assert.Contains(t, box, "┌")
	assert.Contains(t, box, "a.txt")

	plain, err := Render(sample, StylePlain)
	require.NoError(t, err)
	table, _ := Table(sample)
	assert.Equal(t, table, plain)
}

func TestParseStyle(t *testing.T) {
	st, err := ParseStyle("CSV")
	require.NoError(t, err)
	assert.Equal(t, StyleCSV, st)

	_, err = ParseStyle("html")
	assert.Error(t, err)
}

func TestPrinterWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Println("done", Success)
	p.Printf(Failure, "failed with %q", "read error")
	p.Table("H\n-\nrow\n")

	assert.Equal(t, "done\nfailed with \"read error\"\nH\n-\nrow\n", buf.String())
}

// Package render turns stored records into text for the terminal.
package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"pigeonhole/internal/model"
)

// ErrNoItems is returned instead of a table when there is nothing to show.
var ErrNoItems = errors.New("no items")

const columnSep = " | "

// Table renders records as an aligned table: header, dashed rule, one row
// per record, closing rule. Columns are the keys of the first record and
// rows keep their input order.
func Table(records model.Records) (string, error) {
	if len(records) == 0 {
		return "", ErrNoItems
	}

	columns := records.Schema()
	widths := columnWidths(columns, records)

	var b strings.Builder
	header := formatRow(columns, widths)
	rule := strings.Repeat("-", runewidth.StringWidth(header))

	b.WriteString(header)
	b.WriteByte('\n')
	b.WriteString(rule)
	b.WriteByte('\n')
	for _, rec := range records {
		b.WriteString(formatRow(cells(columns, rec), widths))
		b.WriteByte('\n')
	}
	b.WriteString(rule)
	b.WriteByte('\n')
	return b.String(), nil
}

// columnWidths is the widest of header and contents per column. The name
// column gets one extra space for the directory marker.
func columnWidths(columns []string, records model.Records) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = runewidth.StringWidth(col)
		for _, rec := range records {
			v, _ := rec.Get(col)
			if w := runewidth.StringWidth(v); w > widths[i] {
				widths[i] = w
			}
		}
		if col == model.FieldName {
			widths[i]++
		}
	}
	return widths
}

// cells returns the row values in column order, marking directory names.
func cells(columns []string, rec model.EntryRecord) []string {
	out := make([]string, len(columns))
	dir := rec.IsDir()
	for i, col := range columns {
		v, _ := rec.Get(col)
		if col == model.FieldName && dir {
			v += model.DirMarker
		}
		out[i] = v
	}
	return out
}

func formatRow(values []string, widths []int) string {
	padded := make([]string, len(values))
	for i, v := range values {
		padded[i] = runewidth.FillRight(v, widths[i])
	}
	return strings.Join(padded, columnSep)
}

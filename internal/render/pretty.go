package render

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"pigeonhole/internal/model"
)

// Style selects how records are rendered.
type Style string

const (
	StylePlain    Style = "table"
	StyleBox      Style = "box"
	StyleCSV      Style = "csv"
	StyleMarkdown Style = "markdown"
)

// Styles lists the accepted Style values.
var Styles = []Style{StylePlain, StyleBox, StyleCSV, StyleMarkdown}

// ParseStyle validates a --style value.
func ParseStyle(s string) (Style, error) {
	for _, st := range Styles {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown style %q (want one of %v)", s, Styles)
}

// Render renders records in the given style. StylePlain is Table.
func Render(records model.Records, style Style) (string, error) {
	if style == StylePlain || style == "" {
		return Table(records)
	}
	if len(records) == 0 {
		return "", ErrNoItems
	}

	tw := TableWriter(records)
	switch style {
	case StyleCSV:
		return tw.RenderCSV() + "\n", nil
	case StyleMarkdown:
		return tw.RenderMarkdown() + "\n", nil
	default:
		return tw.Render() + "\n", nil
	}
}

// TableWriter returns a configured table.Writer for the records
func TableWriter(records model.Records) (tw table.Writer) {
	tw = table.NewWriter()

	columns := records.Schema()
	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col
		configs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignLeft}
		if col == model.FieldSize {
			configs[i].Align = text.AlignRight
		}
	}
	tw.AppendHeader(header)

	for _, rec := range records {
		values := cells(columns, rec)
		row := make(table.Row, len(values))
		for i, v := range values {
			row[i] = v
		}
		tw.AppendRow(row)
	}

	tw.SetColumnConfigs(configs)
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault

	return tw
}

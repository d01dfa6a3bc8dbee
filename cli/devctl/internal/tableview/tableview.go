// Package tableview renders the small tables devctl prints to terminals.
package tableview

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Boxed renders rows under a header with rounded borders.
func Boxed(headers []string, rows [][]string, aligns []Align) string {
	if len(headers) == 0 {
		return ""
	}
	tw := newWriter(len(headers), rows, aligns)
	tw.SetStyle(table.StyleRounded)
	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)
	return tw.Render()
}

// Plain renders rows as indented columns without borders or header.
func Plain(rows [][]string, aligns []Align) string {
	columns := 0
	for _, r := range rows {
		if len(r) > columns {
			columns = len(r)
		}
	}
	if columns == 0 {
		return ""
	}
	tw := newWriter(columns, rows, aligns)
	style := table.StyleDefault
	style.Options = table.OptionsNoBordersAndSeparators
	style.Box.PaddingLeft = "  "
	style.Box.PaddingRight = ""
	tw.SetStyle(style)
	return tw.Render()
}

func newWriter(columns int, rows [][]string, aligns []Align) table.Writer {
	tw := table.NewWriter()
	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}
	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	return tw
}

package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// ColorFunc maps a cell value to a colored string.
type ColorFunc func(value string) string

type Column struct {
	Header string
	Align  Alignment
	Color  ColorFunc
}

// Table renders aligned text tables.
type Table struct {
	columns []Column
	rows    [][]string
}

func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

// AddRow appends a row. Missing values render empty; extra values are dropped.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.columns))
	copy(row, values)
	t.rows = append(t.rows, row)
}

func (t *Table) Render(w io.Writer) error {
	if len(t.columns) == 0 {
		return nil
	}

	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = utf8.RuneCountInString(col.Header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = colorBold.Sprint(pad(col.Header, widths[i], col.Align))
	}
	if err := writeLine(w, headers); err != nil {
		return err
	}

	separators := make([]string, len(t.columns))
	for i, width := range widths {
		separators[i] = strings.Repeat("-", width)
	}
	if err := writeLine(w, separators); err != nil {
		return err
	}

	for _, row := range t.rows {
		cells := make([]string, len(t.columns))
		for i, col := range t.columns {
			// Padding is computed on the raw value, not the colored one.
			padded := pad(row[i], widths[i], col.Align)
			if col.Color != nil {
				padded = strings.Replace(padded, row[i], col.Color(row[i]), 1)
			}
			cells[i] = padded
		}
		if err := writeLine(w, cells); err != nil {
			return err
		}
	}

	return nil
}

func pad(value string, width int, align Alignment) string {
	n := width - utf8.RuneCountInString(value)
	if n <= 0 {
		return value
	}
	if align == AlignRight {
		return strings.Repeat(" ", n) + value
	}
	return value + strings.Repeat(" ", n)
}

func writeLine(w io.Writer, cells []string) error {
	if _, err := fmt.Fprintf(w, "  %s\n", strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

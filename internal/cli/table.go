package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	columnGap     = "  "
	maxCellWidth  = 60
	truncatedTail = "…"
)

// table renders left-aligned columns padded by display width, so Bengali
// and other wide or combining text stays aligned in a terminal.
type table struct {
	header []string
	rows   [][]string
}

func newTable(header ...string) *table {
	return &table{header: header}
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(w io.Writer) error {
	widths := make([]int, len(t.header))
	measure := func(row []string) {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(cell(row[i])))
		}
	}
	measure(t.header)
	for _, row := range t.rows {
		measure(row)
	}

	for _, row := range append([][]string{t.header}, t.rows...) {
		var sb strings.Builder
		for i := range widths {
			var c string
			if i < len(row) {
				c = cell(row[i])
			}
			if i == len(widths)-1 {
				sb.WriteString(c)
				break
			}
			sb.WriteString(runewidth.FillRight(c, widths[i]))
			sb.WriteString(columnGap)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(sb.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.Truncate(s, maxCellWidth, truncatedTail)
}

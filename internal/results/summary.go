// internal/results/summary.go
package results

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/k0kubun/pp"
	"github.com/mwiater/plannerviz/internal/util"
)

// maxNameRunes bounds the model column of the summary table.
const maxNameRunes = 40

var (
	summaryHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
	summaryCellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Padding(0, 1)
	summaryBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// SummaryTable renders the set as a table with one row per model and one
// column per metric.
func SummaryTable(set *ResultSet, metrics []string) string {
	headers := append([]string{"model"}, metrics...)
	rows := make([][]string, 0, set.Len())
	for _, rec := range set.Records() {
		row := []string{util.TruncateRunes(rec.Name(), maxNameRunes)}
		for _, m := range metrics {
			v, ok := rec.Value(m)
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, FormatValue(v))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(summaryBorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return summaryHeaderStyle
			}
			return summaryCellStyle
		})
	return t.String()
}

// Dump pretty-prints every record for debugging.
func Dump(out io.Writer, set *ResultSet) {
	type dumped struct {
		Name   string
		Values map[string]any
	}
	records := make([]dumped, 0, set.Len())
	for _, rec := range set.Records() {
		records = append(records, dumped{Name: rec.Name(), Values: rec.Values()})
	}
	if _, err := pp.Fprintln(out, records); err != nil {
		fmt.Fprintf(out, "%+v\n", records)
	}
}

package utils

import (
	"github.com/charmbracelet/lipgloss"
)

type tableColumn struct {
	Width       int
	Name        string
	Style       lipgloss.Style
	HeaderStyle lipgloss.Style
}

// TableRow is a row of a Table. Style applies to all cells
type TableRow struct {
	Cells []string
	Style lipgloss.Style
}

// Table renders fixed width columns for the terminal
type Table struct {
	columns []tableColumn
	rows    []*TableRow
}

// AddColumn adds a column with a fixed width
func (t *Table) AddColumn(name string, width int) *Table {
	t.columns = append(t.columns, tableColumn{
		Width:       width,
		Name:        name,
		Style:       lipgloss.NewStyle().Width(width).PaddingRight(1),
		HeaderStyle: lipgloss.NewStyle().Width(width).Bold(true).Underline(true).PaddingRight(1),
	})

	return t
}

// AddRow adds a row. Missing cells are rendered empty
func (t *Table) AddRow(data []string) *TableRow {
	newRow := &TableRow{
		Cells: data,
		Style: lipgloss.NewStyle(),
	}
	t.rows = append(t.rows, newRow)
	return newRow
}

// Render returns the table as string
func (t *Table) Render() string {
	var rendered string
	for _, column := range t.columns {
		rendered += column.HeaderStyle.Render(column.Name)
	}
	rendered += "\n"
	for _, row := range t.rows {
		renderedCells := make([]string, len(t.columns))
		for i, column := range t.columns {
			cell := ""
			if i < len(row.Cells) {
				cell = row.Cells[i]
			}
			renderedCells[i] = column.Style.Render(cell)
		}
		rendered += row.Style.Render(lipgloss.JoinHorizontal(
			lipgloss.Left,
			renderedCells...,
		)) + "\n"
	}
	return rendered
}

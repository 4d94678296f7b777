// Package coord provides column and row arithmetic over spreadsheet addresses.
//
// Columns use the full spreadsheet naming scheme (A..Z, AA..XFD). Rows are 1-based.
package coord

import (
	"strconv"

	"github.com/xuri/excelize/v2"
)

// NextColumn returns the column following col ("A" -> "B", "Z" -> "AA").
// It returns "" for a malformed column name or when col is the last column.
func NextColumn(col string) string {
	n, err := excelize.ColumnNameToNumber(col)
	if err != nil {
		return ""
	}
	name, err := excelize.ColumnNumberToName(n + 1)
	if err != nil {
		return ""
	}
	return name
}

// PrevColumn returns the column preceding col ("B" -> "A", "AA" -> "Z").
// It returns "" for "A" and for malformed input.
func PrevColumn(col string) string {
	n, err := excelize.ColumnNameToNumber(col)
	if err != nil || n <= 1 {
		return ""
	}
	name, err := excelize.ColumnNumberToName(n - 1)
	if err != nil {
		return ""
	}
	return name
}

// NextRow returns row + 1.
func NextRow(row int) int {
	return row + 1
}

// PrevRow returns row - 1.
func PrevRow(row int) int {
	return row - 1
}

// ColumnRange returns the inclusive, ordered sequence of columns from start to end.
// An empty slice is returned when either bound is malformed or start is after end.
func ColumnRange(start, end string) []string {
	from, err := excelize.ColumnNameToNumber(start)
	if err != nil {
		return nil
	}
	to, err := excelize.ColumnNameToNumber(end)
	if err != nil || to < from {
		return nil
	}

	columns := make([]string, 0, to-from+1)
	for n := from; n <= to; n++ {
		name, err := excelize.ColumnNumberToName(n)
		if err != nil {
			break
		}
		columns = append(columns, name)
	}
	return columns
}

// RowRange returns the inclusive, ordered sequence of rows from start to end.
func RowRange(start, end int) []int {
	if end < start {
		return nil
	}
	rows := make([]int, 0, end-start+1)
	for r := start; r <= end; r++ {
		rows = append(rows, r)
	}
	return rows
}

// Split breaks a cell address like "A1" into its column and row.
// Malformed input yields ("", 0) so scanning loops can skip it cheaply.
func Split(coordinate string) (string, int) {
	col, row, err := excelize.SplitCellName(coordinate)
	if err != nil {
		return "", 0
	}
	return col, row
}

// Join builds a cell address from a column and a row.
func Join(col string, row int) string {
	return col + strconv.Itoa(row)
}

// Index returns the 1-based number of a column name, or 0 when malformed.
func Index(col string) int {
	n, err := excelize.ColumnNameToNumber(col)
	if err != nil {
		return 0
	}
	return n
}

// Name returns the column name of a 1-based column number, or "" when out of range.
func Name(index int) string {
	name, err := excelize.ColumnNumberToName(index)
	if err != nil {
		return ""
	}
	return name
}

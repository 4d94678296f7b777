package parser

import (
	"strings"

	"github.com/ukaji3/timetable-go/pkg/timetable/coord"
	"github.com/ukaji3/timetable-go/pkg/timetable/workbook"
)

// Cell is a read-only view of one grid position.
type Cell struct {
	Coordinate string
	Column     string
	Row        int
	// Raw is the untrimmed cell text.
	Raw string
	// Text is Raw with surrounding whitespace removed.
	Text string
	// Empty is true when Text is "".
	Empty bool
	// Invisible is true for an empty cell continuing the vertical merge of the
	// cell above it.
	Invisible bool
}

// invisibilityCache memoizes invisibility per coordinate within one sheet.
type invisibilityCache map[string]bool

func newCell(ws workbook.Worksheet, cache invisibilityCache, col string, row int) Cell {
	coordinate := coord.Join(col, row)
	raw := ws.CellText(coordinate)
	text := strings.TrimSpace(raw)

	return Cell{
		Coordinate: coordinate,
		Column:     col,
		Row:        row,
		Raw:        raw,
		Text:       text,
		Empty:      text == "",
		Invisible:  cache.resolve(ws, coordinate, col, row, raw),
	}
}

func (c invisibilityCache) resolve(ws workbook.Worksheet, coordinate, col string, row int, raw string) bool {
	if raw != "" {
		return false
	}
	if v, ok := c[coordinate]; ok {
		return v
	}

	invisible := false
	if mergeRange := ws.MergeRangeOf(coordinate); mergeRange != "" && row > 1 {
		invisible = mergeRange == ws.MergeRangeOf(coord.Join(col, coord.PrevRow(row)))
	}
	c[coordinate] = invisible
	return invisible
}

package workbook

import (
	"strings"

	"github.com/ukaji3/timetable-go/pkg/timetable/coord"
	"github.com/xuri/excelize/v2"
)

// Grid is an in-memory Worksheet. Readers load documents into grids; tests build
// them directly.
type Grid struct {
	title  string
	cells  map[string]string
	merges map[string]string
	maxCol int
	maxRow int
}

// NewGrid returns an empty sheet with the given title.
func NewGrid(title string) *Grid {
	return &Grid{
		title:  title,
		cells:  make(map[string]string),
		merges: make(map[string]string),
	}
}

// Set stores raw text at coordinate and grows the used range. Malformed coordinates
// are ignored.
func (g *Grid) Set(coordinate, text string) *Grid {
	col, row := coord.Split(strings.ToUpper(coordinate))
	if col == "" {
		return g
	}
	g.cells[coord.Join(col, row)] = text
	g.extend(coord.Index(col), row)
	return g
}

// Merge records the rectangle start:end as one merge range. Every cell inside the
// rectangle reports the same range from MergeRangeOf.
func (g *Grid) Merge(start, end string) *Grid {
	c1, r1, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return g
	}
	c2, r2, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return g
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}

	ref := coord.Join(coord.Name(c1), r1) + ":" + coord.Join(coord.Name(c2), r2)
	for c := c1; c <= c2; c++ {
		col := coord.Name(c)
		for r := r1; r <= r2; r++ {
			g.merges[coord.Join(col, r)] = ref
		}
	}
	g.extend(c2, r2)
	return g
}

func (g *Grid) extend(col, row int) {
	if col > g.maxCol {
		g.maxCol = col
	}
	if row > g.maxRow {
		g.maxRow = row
	}
}

// Title returns the sheet title.
func (g *Grid) Title() string {
	return g.title
}

// UsedRange returns the highest used column and row; an empty grid reports A1.
func (g *Grid) UsedRange() (string, int) {
	if g.maxCol == 0 || g.maxRow == 0 {
		return "A", 1
	}
	return coord.Name(g.maxCol), g.maxRow
}

// CellText returns the raw text stored at coordinate.
func (g *Grid) CellText(coordinate string) string {
	return g.cells[strings.ToUpper(coordinate)]
}

// MergeRangeOf returns the merge range containing coordinate, or "".
func (g *Grid) MergeRangeOf(coordinate string) string {
	return g.merges[strings.ToUpper(coordinate)]
}

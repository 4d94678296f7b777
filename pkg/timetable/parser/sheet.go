package parser

import (
	"github.com/ukaji3/timetable-go/pkg/timetable/coord"
	"github.com/ukaji3/timetable-go/pkg/timetable/models"
	"github.com/ukaji3/timetable-go/pkg/timetable/textutil"
	"github.com/ukaji3/timetable-go/pkg/timetable/workbook"
)

// Sheet is one extraction session over a worksheet. It owns its invisibility
// cache and skip list; nothing is shared between sheets.
type Sheet struct {
	ws        workbook.Worksheet
	rules     *Rules
	scan      scanResult
	invisible invisibilityCache
	skip      map[string]map[int]bool

	result    *models.Sheet
	processed bool
}

// NewSheet detects the layout of ws and extracts its groups.
func NewSheet(ws workbook.Worksheet, rules *Rules) *Sheet {
	s := &Sheet{
		ws:        ws,
		rules:     rules,
		invisible: make(invisibilityCache),
		skip:      make(map[string]map[int]bool),
	}
	s.init()
	s.process()
	return s
}

func (s *Sheet) init() {
	s.scan = scanGrid(s.ws, s.rules)

	for _, coordinate := range s.scan.skip {
		col, row := coord.Split(coordinate)
		if col == "" {
			continue
		}
		if s.skip[col] == nil {
			s.skip[col] = make(map[int]bool)
		}
		s.skip[col][row] = true
	}

	s.result = &models.Sheet{
		Title:              textutil.Sanitize(s.ws.Title()),
		Layout:             s.scan.layout,
		Processable:        s.scan.layout.Processable(),
		HasAlternateCampus: s.scan.hasAlternateCampus,
		Groups:             []*models.Group{},
	}
}

func (s *Sheet) process() {
	if !s.scan.layout.Processable() {
		return
	}
	s.extractGroups()
	s.processed = true
}

// processableRows drops the skipped rows of col.
func (s *Sheet) processableRows(rows []int, col string) []int {
	skipped := s.skip[col]
	if len(skipped) == 0 {
		return rows
	}

	out := make([]int, 0, len(rows))
	for _, row := range rows {
		if !skipped[row] {
			out = append(out, row)
		}
	}
	return out
}

func (s *Sheet) skipped(col string, row int) bool {
	return s.skip[col][row]
}

func (s *Sheet) cell(col string, row int) Cell {
	return newCell(s.ws, s.invisible, col, row)
}

// Cell returns the view of the cell at coordinate.
func (s *Sheet) Cell(coordinate string) Cell {
	col, row := coord.Split(coordinate)
	return s.cell(col, row)
}

// Result returns the extracted schedule.
func (s *Sheet) Result() *models.Sheet {
	return s.result
}

// Processed reports whether group extraction ran.
func (s *Sheet) Processed() bool {
	return s.processed
}

// Layout returns the detected header geometry.
func (s *Sheet) Layout() models.Layout {
	return s.scan.layout
}

// SkippedCoordinates returns the coordinates excluded by skip prefixes, in scan
// order.
func (s *Sheet) SkippedCoordinates() []string {
	return s.scan.skip
}

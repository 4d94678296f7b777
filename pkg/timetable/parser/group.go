package parser

import (
	"strings"

	"github.com/ukaji3/timetable-go/pkg/timetable/coord"
	"github.com/ukaji3/timetable-go/pkg/timetable/models"
)

// extractGroups reads one group per column right of the time column. With a group
// filter only the first matching column is extracted.
func (s *Sheet) extractGroups() {
	layout := s.scan.layout
	rows := coord.RowRange(layout.FirstScheduleRow, layout.LastScheduleRow)

	for _, col := range coord.ColumnRange(layout.FirstGroupColumn, layout.LastGroupColumn) {
		if s.rules.hasGroupFilter() && s.result.HasGroups() {
			break
		}

		name := strings.TrimSpace(s.ws.CellText(coord.Join(col, layout.GroupNamesRow)))
		if s.rules.hasGroupFilter() && name != s.rules.groupFilter {
			continue
		}

		group := models.NewGroup(s.result, name, col)
		s.extractPairs(group, s.processableRows(rows, col))
		s.result.AddGroup(group)
	}
}

package parser

import (
	"strings"

	"github.com/ukaji3/timetable-go/pkg/timetable/coord"
	"github.com/ukaji3/timetable-go/pkg/timetable/models"
	"github.com/ukaji3/timetable-go/pkg/timetable/textutil"
	"github.com/ukaji3/timetable-go/pkg/timetable/workbook"
)

// scanResult is everything the single header pass learns about a sheet.
type scanResult struct {
	layout             models.Layout
	skip               []string
	hasAlternateCampus bool
}

// layoutBuilder accumulates anchors during the scan. build returns the final,
// immutable layout.
type layoutBuilder struct {
	layout models.Layout
}

func (b *layoutBuilder) processable() bool {
	return b.layout.Processable()
}

func (b *layoutBuilder) setDayAnchor(col string, row int) {
	if b.layout.DayColumn != "" {
		return
	}
	b.layout.DayColumn = col
	b.setGroupNamesRow(row)
}

func (b *layoutBuilder) setTimeAnchor(col string, row int) {
	if b.layout.TimeColumn != "" {
		return
	}
	b.layout.TimeColumn = col
	b.layout.FirstGroupColumn = coord.NextColumn(col)
	b.setGroupNamesRow(row)
}

func (b *layoutBuilder) setGroupNamesRow(row int) {
	b.layout.GroupNamesRow = row
	b.layout.FirstScheduleRow = coord.NextRow(row)
}

func (b *layoutBuilder) setClassHourColumn(col string) {
	if b.layout.ClassHourColumn == "" {
		b.layout.ClassHourColumn = col
	}
}

func (b *layoutBuilder) build(highestColumn string, highestRow int) models.Layout {
	layout := b.layout
	layout.LastGroupColumn = highestColumn
	layout.LastScheduleRow = highestRow
	return layout
}

// scanGrid visits every used cell once, column by column, and collects the layout
// anchors, the skip list and the alternate campus flag.
func scanGrid(ws workbook.Worksheet, rules *Rules) scanResult {
	highestColumn, highestRow := ws.UsedRange()

	var (
		b      layoutBuilder
		result scanResult
	)

	for _, col := range coord.ColumnRange("A", highestColumn) {
		for _, row := range coord.RowRange(1, highestRow) {
			coordinate := coord.Join(col, row)
			raw := ws.CellText(coordinate)
			text := strings.TrimSpace(raw)

			if rules.isSkipped(raw) {
				result.skip = append(result.skip, coordinate)
			}

			if text == "" {
				continue
			}

			if !b.processable() {
				label := textutil.NormalizeLabel(text)
				switch {
				case rules.dayWords[label]:
					b.setDayAnchor(col, row)
				case rules.timeWords[label]:
					b.setTimeAnchor(col, row)
				}
			}

			if b.layout.ClassHourColumn == "" && rules.IsClassHour(raw) {
				b.setClassHourColumn(col)
			}

			if !result.hasAlternateCampus && rules.mentionsCampus(text) {
				result.hasAlternateCampus = true
			}
		}
	}

	if rules.forceCampus {
		result.hasAlternateCampus = true
	}
	result.layout = b.build(highestColumn, highestRow)
	return result
}

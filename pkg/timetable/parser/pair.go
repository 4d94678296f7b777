package parser

import (
	"regexp"
	"strings"

	"github.com/ukaji3/timetable-go/pkg/timetable/coord"
	"github.com/ukaji3/timetable-go/pkg/timetable/models"
	"github.com/ukaji3/timetable-go/pkg/timetable/textutil"
)

var (
	timeReplacer = strings.NewReplacer(".", ":", "-", " - ", "–", " - ")
	clockRe      = regexp.MustCompile(`\d[.:]\d`)
)

// extractPairs walks rows of one group column top to bottom. Rows consumed as a
// second-week lesson are not revisited.
func (s *Sheet) extractPairs(group *models.Group, rows []int) {
	consumed := make(map[int]bool)

	for _, row := range rows {
		if consumed[row] {
			continue
		}

		pair, secondRow := s.buildPair(group.Column, row)
		if pair == nil {
			continue
		}
		if secondRow > 0 {
			consumed[secondRow] = true
		}
		group.AddPair(pair)
	}
}

// buildPair decodes the pair anchored at row. It returns nil when the row holds no
// pair, and the row number of the second-week lesson when one was attached.
func (s *Sheet) buildPair(col string, row int) (*models.Pair, int) {
	layout := s.scan.layout
	timeCell := s.cell(layout.TimeColumn, row)

	first := decodeLesson(s.rules, s.cell(col, row), s.scan.hasAlternateCampus)
	if !first.Valid || (timeCell.Empty && !first.IsClassHour) {
		return nil, 0
	}

	number, time := splitTimeLabel(timeCell.Text)
	pair := &models.Pair{
		Coordinate: timeCell.Coordinate,
		Number:     number,
		Time:       time,
		Day:        s.resolveDay(row),
		Valid:      true,
		Lessons:    []*models.Lesson{},
	}

	if second := s.secondWeek(col, row); second != nil {
		pair.AddLesson(first, models.FirstWeek)
		pair.AddLesson(second, models.SecondWeek)
		return pair, coord.NextRow(row)
	}

	pair.AddLesson(first, models.BothWeeks)
	return pair, 0
}

// secondWeek returns the lesson at row+1 when it is the second-week variant of the
// lesson at row.
func (s *Sheet) secondWeek(col string, row int) *models.Lesson {
	layout := s.scan.layout
	next := coord.NextRow(row)
	if next > layout.LastScheduleRow || s.skipped(col, next) {
		return nil
	}

	nextTime := s.cell(layout.TimeColumn, next)
	if !nextTime.Empty {
		return nil
	}

	cell := s.cell(col, next)
	if cell.Invisible {
		return nil
	}

	lesson := decodeLesson(s.rules, cell, s.scan.hasAlternateCampus)
	if !lesson.Valid {
		return nil
	}
	if !lesson.IsEmpty() {
		return lesson
	}

	// An empty slot only counts when the time cell spans both rows and the lesson
	// cell above is not merged.
	if s.ws.MergeRangeOf(coord.Join(col, row)) != "" {
		return nil
	}
	timeRange := s.ws.MergeRangeOf(coord.Join(layout.TimeColumn, row))
	if timeRange != "" && timeRange == s.ws.MergeRangeOf(nextTime.Coordinate) {
		return lesson
	}
	return nil
}

// resolveDay walks up the day column from row until a non-empty label is found.
// A label in the column left of the day column takes precedence.
func (s *Sheet) resolveDay(row int) string {
	dayCol := s.scan.layout.DayColumn
	prevCol := coord.PrevColumn(dayCol)

	for r := row; r >= 1; r-- {
		day := s.cell(dayCol, r).Text
		if prevCol != "" {
			if left := s.cell(prevCol, r).Text; left != "" {
				day = left
			}
		}
		if day != "" {
			return textutil.NormalizeLabel(day)
		}
	}
	return ""
}

// splitTimeLabel splits "1 9.00-10.30" into the pair number and a formatted time.
// Without a leading number the whole label is the time.
func splitTimeLabel(text string) (number, time string) {
	text = textutil.CollapseSpaces(text)
	if text == "" {
		return "", ""
	}

	parts := strings.SplitN(text, " ", 2)
	if len(parts) == 1 || clockRe.MatchString(parts[0]) {
		return "", formatTime(text)
	}
	return parts[0], formatTime(parts[1])
}

func formatTime(time string) string {
	return textutil.CollapseSpaces(timeReplacer.Replace(time))
}

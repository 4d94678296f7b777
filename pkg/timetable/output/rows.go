package output

import (
	"github.com/ukaji3/timetable-go/pkg/timetable/models"
)

// Row is one lesson flattened with its sheet, group and pair context.
type Row struct {
	Sheet           string `csv:"sheet"`
	Group           string `csv:"group"`
	Day             string `csv:"day"`
	Number          string `csv:"number"`
	Time            string `csv:"time"`
	Week            string `csv:"week"`
	Subject         string `csv:"subject"`
	Teachers        string `csv:"teachers"`
	Rooms           string `csv:"rooms"`
	ClassHour       bool   `csv:"class_hour"`
	AlternateCampus bool   `csv:"alternate_campus"`
	Cell            string `csv:"cell"`
}

// ListSeparator joins teachers and rooms inside one Row field.
const ListSeparator = ", "

// Rows flattens every lesson of doc in document order. An empty lesson yields a
// row with blank subject, teachers and rooms.
func Rows(doc *models.Document) []Row {
	var rows []Row
	for _, sheet := range doc.Sheets {
		for _, group := range sheet.Groups {
			rows = append(rows, groupRows(sheet.Title, group)...)
		}
	}
	return rows
}

// GroupRows flattens the lessons of one group.
func GroupRows(group *models.Group) []Row {
	title := ""
	if s := group.Sheet(); s != nil {
		title = s.Title
	}
	return groupRows(title, group)
}

func groupRows(sheetTitle string, group *models.Group) []Row {
	var rows []Row
	for _, pair := range group.Pairs {
		for _, lesson := range pair.Lessons {
			row := Row{
				Sheet:           sheetTitle,
				Group:           group.Name,
				Day:             pair.Day,
				Number:          pair.Number,
				Time:            pair.Time,
				Week:            string(lesson.WeekPosition),
				Subject:         lesson.Subject,
				Teachers:        lesson.TeachersString(ListSeparator),
				ClassHour:       lesson.IsClassHour,
				AlternateCampus: lesson.IsAlternateCampus,
				Cell:            lesson.Coordinate,
			}
			if lesson.HasRooms() {
				row.Rooms = lesson.RoomsString(ListSeparator)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

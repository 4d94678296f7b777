package output

import (
	"github.com/ukaji3/timetable-go/pkg/timetable/models"
)

// DaySchedule is the pairs of one group held on one weekday.
type DaySchedule struct {
	Day   string         `json:"day"`
	Pairs []*models.Pair `json:"pairs"`
}

// GroupWeek is a group schedule arranged by weekday.
type GroupWeek struct {
	Group string        `json:"group"`
	Days  []DaySchedule `json:"days"`
}

// ByDay arranges the pairs of group by weekday, days in first-seen order.
func ByDay(group *models.Group) GroupWeek {
	week := GroupWeek{Group: group.Name, Days: []DaySchedule{}}
	for _, day := range group.Days() {
		week.Days = append(week.Days, DaySchedule{Day: day, Pairs: group.PairsByDay(day)})
	}
	return week
}

// GroupWeekToJSON serializes the weekday view of one group.
func GroupWeekToJSON(group *models.Group, pretty bool) ([]byte, error) {
	return marshal(ByDay(group), pretty)
}

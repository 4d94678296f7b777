package models

import "strings"

// WeekPosition tells which calendar weeks a lesson applies to.
type WeekPosition string

const (
	// FirstWeek marks a lesson held on the first week only.
	FirstWeek WeekPosition = "first"
	// SecondWeek marks a lesson held on the second week only.
	SecondWeek WeekPosition = "second"
	// BothWeeks marks a lesson held every week.
	BothWeeks WeekPosition = "both"
)

// Lesson is one concrete lesson occurrence decoded from a single cell.
type Lesson struct {
	// Coordinate is the lesson cell address (e.g. "C7").
	Coordinate string `json:"coordinate"`
	// WeekPosition is assigned by the owning pair.
	WeekPosition WeekPosition `json:"week"`
	// Subject is empty for blank lessons.
	Subject string `json:"subject"`
	// Teachers in cell order.
	Teachers []string `json:"teachers,omitempty"`
	// Rooms in cell order.
	Rooms []string `json:"rooms,omitempty"`
	// IsClassHour marks an administrative class-hour slot.
	IsClassHour bool `json:"class_hour,omitempty"`
	// IsAlternateCampus marks a lesson held at the secondary campus.
	IsAlternateCampus bool `json:"alternate_campus,omitempty"`
	// Valid is false when the cell text could not be decoded into a lesson.
	Valid bool `json:"-"`
	// Invisible marks an empty continuation of a vertical merge. Renderers use it
	// to avoid emitting the cell twice; extraction ignores it.
	Invisible bool `json:"invisible,omitempty"`

	pair *Pair
}

// Pair returns the owning pair, nil until the lesson is attached.
func (l *Lesson) Pair() *Pair {
	return l.pair
}

// IsEmpty reports whether the lesson carries no subject.
func (l *Lesson) IsEmpty() bool {
	return l.Subject == ""
}

// HasRooms reports whether any room was decoded.
func (l *Lesson) HasRooms() bool {
	return len(l.Rooms) > 0
}

// TeachersString joins teachers with sep.
func (l *Lesson) TeachersString(sep string) string {
	return strings.Join(l.Teachers, sep)
}

// RoomsString joins rooms with sep.
func (l *Lesson) RoomsString(sep string) string {
	return strings.Join(l.Rooms, sep)
}

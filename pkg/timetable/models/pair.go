package models

// Pair is one time slot of one group, with one lesson per calendar-week variant.
type Pair struct {
	// Coordinate is the time cell address the pair is anchored at.
	Coordinate string `json:"coordinate"`
	// Number is the displayed pair number, possibly empty.
	Number string `json:"number,omitempty"`
	// Time is the formatted time range, e.g. "9:00 - 10:30".
	Time string `json:"time,omitempty"`
	// Day is the lowercased weekday label.
	Day string `json:"day"`
	// Valid is always true for pairs attached to a group.
	Valid bool `json:"-"`
	// Lessons holds one lesson for both weeks or two lessons, first then second week.
	Lessons []*Lesson `json:"lessons"`

	group *Group
}

// Group returns the owning group.
func (p *Pair) Group() *Group {
	return p.group
}

// AddLesson appends a lesson tagged with the given week position.
func (p *Pair) AddLesson(l *Lesson, week WeekPosition) {
	l.WeekPosition = week
	l.pair = p
	p.Lessons = append(p.Lessons, l)
}

// IsSplit reports whether the pair differs between the two weeks.
func (p *Pair) IsSplit() bool {
	return len(p.Lessons) > 1
}

package parser

import (
	"regexp"
	"strings"

	"github.com/ukaji3/timetable-go/pkg/timetable/models"
	"github.com/ukaji3/timetable-go/pkg/timetable/textutil"
)

// bareTimeRe matches a cell that only holds a time range such as "9.00-10.30".
var bareTimeRe = regexp.MustCompile(`^\d{1,2}[.:]\d{2}(?:\s*[-–]\s*\d{1,2}[.:]\d{2})?$`)

// roomPrefixRe matches a room prefix written apart from the number.
var roomPrefixRe = regexp.MustCompile(`(?i)^(?:ауд|каб)\.?$`)

// lessonRule decodes a cell when match returns true. Rules run in order and the
// first match wins.
type lessonRule struct {
	name   string
	match  func(r *Rules, c Cell) bool
	decode func(r *Rules, c Cell, l *models.Lesson)
}

var lessonRules = []lessonRule{
	{
		name:  "blank",
		match: func(_ *Rules, c Cell) bool { return c.Empty },
		decode: func(_ *Rules, _ Cell, l *models.Lesson) {
			l.Valid = true
		},
	},
	{
		name:  "class-hour",
		match: func(r *Rules, c Cell) bool { return r.IsClassHour(c.Raw) },
		decode: func(r *Rules, _ Cell, l *models.Lesson) {
			l.Subject = r.classHourPhrase
			l.IsClassHour = true
			l.Valid = true
		},
	},
	{
		name:  "header-label",
		match: func(r *Rules, c Cell) bool { return r.isLabel(textutil.NormalizeLabel(c.Text)) },
		decode: func(*Rules, Cell, *models.Lesson) {},
	},
	{
		name:  "bare-time",
		match: func(_ *Rules, c Cell) bool { return bareTimeRe.MatchString(textutil.CollapseSpaces(c.Text)) },
		decode: func(*Rules, Cell, *models.Lesson) {},
	},
	{
		name:   "composite",
		match:  func(*Rules, Cell) bool { return true },
		decode: decodeComposite,
	},
}

// decodeLesson turns one cell into a lesson. A lesson that no rule can make sense
// of is returned with Valid false.
func decodeLesson(r *Rules, c Cell, sheetCampus bool) *models.Lesson {
	l := &models.Lesson{
		Coordinate: c.Coordinate,
		Invisible:  c.Invisible,
	}

	for _, rule := range lessonRules {
		if rule.match(r, c) {
			rule.decode(r, c, l)
			break
		}
	}

	if r.forceCampus && sheetCampus && !l.IsEmpty() && !l.IsClassHour {
		l.IsAlternateCampus = true
	}
	return l
}

// decodeComposite splits free text line by line into subject parts, teachers and
// rooms.
func decodeComposite(r *Rules, c Cell, l *models.Lesson) {
	var (
		subjects []string
		seen     = make(map[string]bool)
	)

	for _, line := range strings.Split(c.Raw, "\n") {
		line = textutil.CollapseSpaces(line)
		if line == "" {
			continue
		}

		if tail, rest, ok := r.splitCampusTail(line); ok {
			l.Rooms = appendUnique(l.Rooms, tail)
			if r.mentionsCampus(tail) {
				l.IsAlternateCampus = true
			}
			line = rest
		}

		for _, loc := range r.teacherRe.FindAllStringIndex(line, -1) {
			l.Teachers = appendUnique(l.Teachers, textutil.CollapseSpaces(line[loc[0]:loc[1]]))
		}
		line = textutil.CollapseSpaces(r.teacherRe.ReplaceAllString(line, " "))

		var words []string
		fields := strings.Fields(line)
		for i := 0; i < len(fields); i++ {
			token := strings.Trim(fields[i], ",;")
			// "ауд. 305" is one room written as two words.
			if roomPrefixRe.MatchString(token) && i+1 < len(fields) {
				next := strings.Trim(fields[i+1], ",;")
				if r.roomRe.MatchString(token + next) {
					l.Rooms = appendUnique(l.Rooms, token+" "+next)
					i++
					continue
				}
			}
			if token != "" && r.roomRe.MatchString(token) {
				l.Rooms = appendUnique(l.Rooms, token)
				continue
			}
			words = append(words, fields[i])
		}

		part := strings.Trim(strings.Join(words, " "), " ,;")
		if part != "" && !seen[part] {
			seen[part] = true
			subjects = append(subjects, part)
		}
	}

	l.Subject = strings.Join(subjects, " / ")
	l.Valid = l.Subject != ""
}

// splitCampusTail cuts line at the campus address. The tail, from the street or
// keyword to the end of the line, is room text.
func (r *Rules) splitCampusTail(line string) (tail, rest string, ok bool) {
	if r.campusRe == nil {
		return "", line, false
	}
	loc := r.campusRe.FindStringIndex(line)
	if loc == nil {
		return "", line, false
	}
	return strings.TrimSpace(line[loc[0]:]), strings.TrimSpace(line[:loc[0]]), true
}

func appendUnique(values []string, v string) []string {
	if v == "" {
		return values
	}
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}

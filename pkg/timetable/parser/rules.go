// Package parser turns spreadsheet grids into schedule trees.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ukaji3/timetable-go/pkg/timetable/textutil"
)

// Default patterns used to split composite lesson text.
const (
	// DefaultTeacherPattern matches "Surname I.I." and "I.I. Surname".
	DefaultTeacherPattern = `[А-ЯЁ][а-яё]+(?:-[А-ЯЁ][а-яё]+)?[\s\x{00A0}]+[А-ЯЁ]\.[\s\x{00A0}]*(?:[А-ЯЁ]\.?)?|[А-ЯЁ]\.[\s\x{00A0}]*[А-ЯЁ]\.[\s\x{00A0}]*[А-ЯЁ][а-яё]+`
	// DefaultRoomPattern matches one whitespace-delimited room token.
	DefaultRoomPattern = `(?i)^(?:(?:ауд|каб)\.?)?(?:\d{2,4}[а-яa-z]?|\d{1,4}/\d{1,4}|с/з|спортзал|дист\.?)$`
)

// Vocabulary is the site-specific wording the extractor looks for.
type Vocabulary struct {
	// DayWords label the weekday column header, e.g. "день".
	DayWords []string
	// TimeWords label the time column header, e.g. "время".
	TimeWords []string
	// ClassHourPhrase identifies administrative class-hour cells.
	ClassHourPhrase string
	// CampusKeyword and CampusDigit together identify the alternate campus.
	CampusKeyword string
	CampusDigit   string
	// SkipPrefixes exclude cells whose raw text starts with any of them.
	SkipPrefixes []string
	// TeacherPattern and RoomPattern override the lesson splitting patterns.
	TeacherPattern string
	RoomPattern    string
}

// DefaultVocabulary returns the wording used by the reference schedules.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		DayWords:        []string{"день", "дни"},
		TimeWords:       []string{"время"},
		ClassHourPhrase: "Классный час",
		CampusKeyword:   "менделеева",
		CampusDigit:     "4",
		TeacherPattern:  DefaultTeacherPattern,
		RoomPattern:     DefaultRoomPattern,
	}
}

// Params configures one extraction run.
type Params struct {
	Vocabulary Vocabulary
	// GroupFilter restricts extraction to the group with exactly this name.
	GroupFilter string
	// ForceAlternateCampus marks every sheet, and its lessons, as alternate campus.
	ForceAlternateCampus bool
}

// Rules is a compiled Params, safe to reuse across sheets.
type Rules struct {
	dayWords        map[string]bool
	timeWords       map[string]bool
	classHourPhrase string
	classHourKey    string
	campusKeyword   string
	campusRe        *regexp.Regexp
	campusDigit     string
	skipPrefixes    []string
	teacherRe       *regexp.Regexp
	roomRe          *regexp.Regexp
	groupFilter     string
	forceCampus     bool
}

// Compile validates p and prepares it for extraction.
func Compile(p Params) (*Rules, error) {
	v := p.Vocabulary

	teacherPattern := v.TeacherPattern
	if teacherPattern == "" {
		teacherPattern = DefaultTeacherPattern
	}
	teacherRe, err := regexp.Compile(teacherPattern)
	if err != nil {
		return nil, fmt.Errorf("teacher pattern: %w", err)
	}

	roomPattern := v.RoomPattern
	if roomPattern == "" {
		roomPattern = DefaultRoomPattern
	}
	roomRe, err := regexp.Compile(roomPattern)
	if err != nil {
		return nil, fmt.Errorf("room pattern: %w", err)
	}

	r := &Rules{
		dayWords:        wordSet(v.DayWords),
		timeWords:       wordSet(v.TimeWords),
		classHourPhrase: strings.TrimSpace(v.ClassHourPhrase),
		classHourKey:    textutil.Capitalize(textutil.NormalizeLabel(v.ClassHourPhrase)),
		campusKeyword:   strings.ToLower(strings.TrimSpace(v.CampusKeyword)),
		campusDigit:     v.CampusDigit,
		skipPrefixes:    nonEmpty(v.SkipPrefixes),
		teacherRe:       teacherRe,
		roomRe:          roomRe,
		groupFilter:     strings.TrimSpace(p.GroupFilter),
		forceCampus:     p.ForceAlternateCampus,
	}
	if r.campusKeyword != "" {
		r.campusRe = regexp.MustCompile(`(?i)(?:ул\.?[\s\x{00A0}]*)?` + regexp.QuoteMeta(r.campusKeyword))
	}
	return r, nil
}

func wordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		if w = textutil.NormalizeLabel(w); w != "" {
			set[w] = true
		}
	}
	return set
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (r *Rules) hasGroupFilter() bool {
	return r.groupFilter != ""
}

// isLabel reports whether normalized text is one of the header words.
func (r *Rules) isLabel(label string) bool {
	return r.dayWords[label] || r.timeWords[label]
}

// isSkipped reports whether raw cell text starts with a configured skip prefix.
func (r *Rules) isSkipped(raw string) bool {
	for _, prefix := range r.skipPrefixes {
		if strings.HasPrefix(raw, prefix) {
			return true
		}
	}
	return false
}

// mentionsCampus reports whether text names the alternate campus.
func (r *Rules) mentionsCampus(text string) bool {
	if r.campusKeyword == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), r.campusKeyword) &&
		strings.Contains(text, r.campusDigit)
}

var (
	multiSpaceRe = regexp.MustCompile(`[\s\x{00A0}]{2,}`)
	anySpaceRe   = regexp.MustCompile(`[\s\x{00A0}]+`)
)

// IsClassHour reports whether raw cell text spells the class-hour phrase.
//
// Letter-spaced headings such as "К л а с с н ы й   ч а с" are folded first: runs of
// two or more spaces become the word break and single spaces are dropped.
func (r *Rules) IsClassHour(raw string) bool {
	if r.classHourKey == "" {
		return false
	}

	const marker = "\x00"
	folded := multiSpaceRe.ReplaceAllString(raw, marker)
	folded = anySpaceRe.ReplaceAllString(folded, "")
	folded = strings.Trim(strings.ReplaceAll(folded, marker, " "), " ")
	if textutil.Capitalize(strings.ToLower(folded)) == r.classHourKey {
		return true
	}
	return textutil.Capitalize(textutil.NormalizeLabel(raw)) == r.classHourKey
}

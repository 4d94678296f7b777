// Package timetable extracts weekly class schedules from spreadsheet files.
package timetable

import (
	"strings"

	"github.com/ukaji3/timetable-go/pkg/timetable/parser"
)

// Vocabulary is the wording the extractor looks for. See parser.Vocabulary.
type Vocabulary = parser.Vocabulary

// DefaultVocabulary returns the wording of the reference schedules.
func DefaultVocabulary() Vocabulary {
	return parser.DefaultVocabulary()
}

// Options configures extraction behavior.
type Options struct {
	// Vocabulary holds day and time header words, the class-hour phrase, the
	// campus keyword and skip prefixes.
	Vocabulary Vocabulary
	// GroupFilter restricts extraction to one group name. Empty means all groups.
	GroupFilter string
	// ForceAlternateCampus marks every lesson as held at the alternate campus.
	ForceAlternateCampus bool
	// CampusFileKeyword forces ForceAlternateCampus for sources whose name
	// contains it, case-insensitively. Empty disables the check.
	CampusFileKeyword string
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Vocabulary: DefaultVocabulary(),
	}
}

// ShouldForceCampus reports whether lessons read from source are forced to the
// alternate campus.
func (o Options) ShouldForceCampus(source string) bool {
	if o.ForceAlternateCampus {
		return true
	}
	if o.CampusFileKeyword == "" {
		return false
	}
	return strings.Contains(strings.ToLower(source), strings.ToLower(o.CampusFileKeyword))
}

func (o Options) params(source string) parser.Params {
	return parser.Params{
		Vocabulary:           o.Vocabulary,
		GroupFilter:          o.GroupFilter,
		ForceAlternateCampus: o.ShouldForceCampus(source),
	}
}

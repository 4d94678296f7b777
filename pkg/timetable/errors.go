package timetable

import (
	"errors"
	"fmt"
)

// ErrNoSchedule indicates a document without any processable sheet.
var ErrNoSchedule = errors.New("no schedule found in document")

// ErrGroupNotFound indicates the requested group is absent from the document.
var ErrGroupNotFound = errors.New("group not found")

// SourceError records a source that failed during a batch run.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %q: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new SourceError.
func NewSourceError(source string, err error) *SourceError {
	return &SourceError{
		Source: source,
		Err:    err,
	}
}

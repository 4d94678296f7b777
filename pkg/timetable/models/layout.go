// Package models defines the schedule tree extracted from spreadsheet documents.
package models

// Layout is the header geometry detected on one sheet.
type Layout struct {
	// DayColumn holds the weekday labels.
	DayColumn string `json:"day_column,omitempty"`
	// TimeColumn holds pair numbers and time ranges.
	TimeColumn string `json:"time_column,omitempty"`
	// GroupNamesRow is the row carrying group names (1-based, 0 if unknown).
	GroupNamesRow int `json:"group_names_row,omitempty"`
	// FirstGroupColumn is the column right after TimeColumn.
	FirstGroupColumn string `json:"first_group_column,omitempty"`
	// LastGroupColumn is the highest used column.
	LastGroupColumn string `json:"last_group_column,omitempty"`
	// FirstScheduleRow is the row right after GroupNamesRow.
	FirstScheduleRow int `json:"first_schedule_row,omitempty"`
	// LastScheduleRow is the highest used row.
	LastScheduleRow int `json:"last_schedule_row,omitempty"`
	// ClassHourColumn is the first column containing a class-hour cell, "" if none.
	ClassHourColumn string `json:"class_hour_column,omitempty"`
}

// Processable reports whether the day and time anchors and the group names row
// were all found.
func (l Layout) Processable() bool {
	return l.DayColumn != "" && l.TimeColumn != "" && l.GroupNamesRow > 0
}

// HasClassHourColumn reports whether a class-hour column was detected.
func (l Layout) HasClassHourColumn() bool {
	return l.ClassHourColumn != ""
}

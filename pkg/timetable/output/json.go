// Package output serializes extracted schedules.
package output

import (
	"encoding/json"

	"github.com/ukaji3/timetable-go/pkg/timetable/models"
)

// ToJSON serializes a document.
func ToJSON(doc *models.Document, pretty bool) ([]byte, error) {
	return marshal(doc, pretty)
}

// SheetToJSON serializes one sheet.
func SheetToJSON(sheet *models.Sheet, pretty bool) ([]byte, error) {
	return marshal(sheet, pretty)
}

// GroupToJSON serializes one group.
func GroupToJSON(group *models.Group, pretty bool) ([]byte, error) {
	return marshal(group, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

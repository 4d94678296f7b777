package output

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/ukaji3/timetable-go/pkg/timetable/models"
)

// ToCSV renders the flattened lessons of doc as CSV with a header line.
func ToCSV(doc *models.Document) ([]byte, error) {
	rows := Rows(doc)
	s, err := gocsv.MarshalString(&rows)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// WriteCSV writes the flattened lessons of doc to w.
func WriteCSV(w io.Writer, doc *models.Document) error {
	rows := Rows(doc)
	return gocsv.Marshal(&rows, w)
}

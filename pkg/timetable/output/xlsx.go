package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/timetable-go/pkg/timetable/models"
)

// XLSXSheetName is the worksheet ToXLSX writes rows to.
const XLSXSheetName = "Schedule"

var xlsxHeader = []interface{}{
	"Sheet", "Group", "Day", "Number", "Time", "Week",
	"Subject", "Teachers", "Rooms", "Class hour", "Alternate campus", "Cell",
}

var xlsxWidths = []float64{14, 12, 14, 8, 16, 8, 40, 30, 20, 10, 10, 8}

// ToXLSX builds a workbook with one row per non-empty lesson. The caller closes
// the returned file.
func ToXLSX(doc *models.Document) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", XLSXSheetName); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeXLSXRows(f, Rows(doc)); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// WriteXLSX writes the ToXLSX workbook to w.
func WriteXLSX(w io.Writer, doc *models.Document) error {
	f, err := ToXLSX(doc)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Write(w)
}

func writeXLSXRows(f *excelize.File, rows []Row) error {
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(XLSXSheetName, "A1", &xlsxHeader); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(xlsxHeader))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(XLSXSheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for i, width := range xlsxWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(XLSXSheetName, col, col, width); err != nil {
			return err
		}
	}

	for i, r := range rows {
		values := []interface{}{
			r.Sheet, r.Group, r.Day, r.Number, r.Time, r.Week,
			r.Subject, r.Teachers, r.Rooms, r.ClassHour, r.AlternateCampus, r.Cell,
		}
		if err := f.SetSheetRow(XLSXSheetName, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return err
		}
	}
	return nil
}

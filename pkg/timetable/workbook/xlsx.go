package workbook

import (
	"io"

	"github.com/ukaji3/timetable-go/pkg/timetable/coord"
	"github.com/xuri/excelize/v2"
)

// readXLSX loads every sheet of an OOXML workbook into grids.
func readXLSX(r io.Reader) (*Book, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	book := &Book{}
	for _, sheetName := range f.GetSheetList() {
		grid, err := loadSheet(f, sheetName)
		if err != nil {
			return nil, err
		}
		book.sheets = append(book.sheets, grid)
	}
	return book, nil
}

func loadSheet(f *excelize.File, sheetName string) (*Grid, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	grid := NewGrid(sheetName)
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			if value == "" {
				continue
			}
			grid.Set(coord.Join(coord.Name(colIdx+1), rowIdx+1), value)
		}
	}

	merges, err := f.GetMergeCells(sheetName)
	if err != nil {
		return nil, err
	}
	for _, m := range merges {
		grid.Merge(m.GetStartAxis(), m.GetEndAxis())
	}

	return grid, nil
}

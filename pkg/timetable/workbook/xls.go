package workbook

import (
	"fmt"
	"io"

	"github.com/extrame/xls"
	"github.com/ukaji3/timetable-go/pkg/timetable/coord"
)

// DefaultXLSCharset decodes 8-bit strings in legacy BIFF workbooks.
const DefaultXLSCharset = "windows-1251"

// readXLS loads a legacy .xls workbook. The BIFF reader exposes no merge geometry,
// so every cell of the resulting grids reports no merge range.
func readXLS(r io.ReadSeeker, charset string) (book *Book, err error) {
	// extrame/xls panics on some malformed records.
	defer func() {
		if p := recover(); p != nil {
			book, err = nil, fmt.Errorf("xls decode: %v", p)
		}
	}()

	wb, err := xls.OpenReader(r, charset)
	if err != nil {
		return nil, fmt.Errorf("xls open: %w", err)
	}

	book = &Book{}
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}

		grid := NewGrid(sheet.Name)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				continue
			}
			for c := 0; c < row.LastCol(); c++ {
				value := row.Col(c)
				if value == "" {
					continue
				}
				grid.Set(coord.Join(coord.Name(c+1), r+1), value)
			}
		}
		book.sheets = append(book.sheets, grid)
	}
	return book, nil
}

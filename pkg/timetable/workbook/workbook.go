// Package workbook reads spreadsheet documents into plain text grids with merge geometry.
//
// Only cell text and merge ranges are exposed; formulas, styles and number formats are
// resolved by the underlying readers and otherwise ignored.
package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat indicates the file extension is not a known spreadsheet format.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// DocumentReadError reports a spreadsheet that could not be opened or decoded.
type DocumentReadError struct {
	Path string
	Err  error
}

func (e *DocumentReadError) Error() string {
	return fmt.Sprintf("read document %q: %v", e.Path, e.Err)
}

func (e *DocumentReadError) Unwrap() error {
	return e.Err
}

// Worksheet is a read-only view of one sheet.
type Worksheet interface {
	// Title is the sheet name as stored in the document.
	Title() string
	// UsedRange returns the highest used column name and row number.
	UsedRange() (string, int)
	// CellText returns the raw, untrimmed text of a cell ("" when absent).
	CellText(coordinate string) string
	// MergeRangeOf returns the merge range containing the cell, e.g. "B3:B4",
	// or "" when the cell is not merged.
	MergeRangeOf(coordinate string) string
}

// Document is an opened spreadsheet file.
type Document interface {
	Sheets() []Worksheet
	Close() error
}

// Book is a Document whose sheets are fully loaded in memory.
type Book struct {
	sheets []Worksheet
}

// NewBook wraps already loaded sheets.
func NewBook(sheets ...Worksheet) *Book {
	return &Book{sheets: sheets}
}

// Sheets returns the sheets in document order.
func (b *Book) Sheets() []Worksheet {
	return b.sheets
}

// Close is a no-op; readers release their files once the grids are loaded.
func (b *Book) Close() error {
	return nil
}

// Open reads the spreadsheet at path, choosing the reader by file extension.
func Open(path string) (Document, error) {
	kind, err := formatOf(path)
	if err != nil {
		return nil, &DocumentReadError{Path: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &DocumentReadError{Path: path, Err: err}
	}
	defer f.Close()

	book, err := read(kind, f)
	if err != nil {
		return nil, &DocumentReadError{Path: path, Err: err}
	}
	return book, nil
}

// OpenReader reads a spreadsheet from r. The name is only used to choose the reader
// by extension and to label errors.
func OpenReader(r io.Reader, name string) (Document, error) {
	kind, err := formatOf(name)
	if err != nil {
		return nil, &DocumentReadError{Path: name, Err: err}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DocumentReadError{Path: name, Err: err}
	}

	book, err := read(kind, bytes.NewReader(data))
	if err != nil {
		return nil, &DocumentReadError{Path: name, Err: err}
	}
	return book, nil
}

type format int

const (
	formatXLSX format = iota
	formatXLS
)

// Extensions lists the file extensions Open and OpenReader accept.
var Extensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm", ".xls"}

// IsSupported reports whether name carries a readable spreadsheet extension.
func IsSupported(name string) bool {
	_, err := formatOf(name)
	return err == nil
}

func formatOf(name string) (format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if i := strings.IndexAny(ext, "?#"); i >= 0 {
		ext = ext[:i]
	}

	switch ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return formatXLSX, nil
	case ".xls":
		return formatXLS, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func read(kind format, r io.ReadSeeker) (*Book, error) {
	if kind == formatXLS {
		return readXLS(r, DefaultXLSCharset)
	}
	return readXLSX(r)
}

package workbook

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeFixture(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "День")
	f.SetCellValue(sheetName, "B1", "Время")
	f.SetCellValue(sheetName, "C1", "ИС-21")
	f.SetCellValue(sheetName, "C2", "  Математика  ")
	if err := f.MergeCell(sheetName, "C2", "C3"); err != nil {
		t.Fatalf("MergeCell failed: %v", err)
	}
	if _, err := f.NewSheet("Notes"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	f.SetCellValue("Notes", "A1", "legend")

	tmpFile := filepath.Join(t.TempDir(), "schedule.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return tmpFile
}

func TestOpenXLSX(t *testing.T) {
	path := writeFixture(t)

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()

	sheets := doc.Sheets()
	if len(sheets) != 2 {
		t.Fatalf("Expected 2 sheets, got %d", len(sheets))
	}

	ws := sheets[0]
	if ws.Title() != "Sheet1" {
		t.Errorf("Expected title Sheet1, got %q", ws.Title())
	}
	if got := ws.CellText("C2"); got != "  Математика  " {
		t.Errorf("Expected raw text to be kept, got %q", got)
	}
	if got := ws.CellText("C3"); got != "" {
		t.Errorf("Expected empty continuation cell, got %q", got)
	}
	if ws.MergeRangeOf("C2") != "C2:C3" || ws.MergeRangeOf("C3") != "C2:C3" {
		t.Errorf("Unexpected merge ranges: %q, %q", ws.MergeRangeOf("C2"), ws.MergeRangeOf("C3"))
	}
	if ws.MergeRangeOf("A1") != "" {
		t.Errorf("Expected no merge for A1, got %q", ws.MergeRangeOf("A1"))
	}

	col, row := ws.UsedRange()
	if col != "C" || row != 3 {
		t.Errorf("UsedRange() = (%q, %d), expected (C, 3)", col, row)
	}
}

func TestOpenReader(t *testing.T) {
	path := writeFixture(t)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	doc, err := OpenReader(bytes.NewReader(data), "https://example.org/files/schedule.xlsx?v=2")
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	if len(doc.Sheets()) != 2 {
		t.Errorf("Expected 2 sheets, got %d", len(doc.Sheets()))
	}
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.xlsx"))
	var readErr *DocumentReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("Expected DocumentReadError, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected wrapped fs.ErrNotExist, got %v", err)
	}

	_, err = Open(filepath.Join(dir, "notes.txt"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}

	broken := filepath.Join(dir, "broken.xlsx")
	if err := os.WriteFile(broken, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = Open(broken)
	if !errors.As(err, &readErr) || readErr.Path != broken {
		t.Errorf("Expected DocumentReadError for %s, got %v", broken, err)
	}

	_, err = OpenReader(strings.NewReader("garbage"), "broken.xls")
	if !errors.As(err, &readErr) {
		t.Errorf("Expected DocumentReadError for broken xls, got %v", err)
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"a.xlsx", true},
		{"A.XLS", true},
		{"a.xlsm", true},
		{"a.csv", false},
		{"noext", false},
	}

	for _, tt := range tests {
		if got := IsSupported(tt.name); got != tt.expected {
			t.Errorf("IsSupported(%q) = %v, expected %v", tt.name, got, tt.expected)
		}
	}
}

func TestGrid(t *testing.T) {
	g := NewGrid("Test").
		Set("b2", "x").
		Set("bad", "ignored").
		Merge("D5", "C4")

	if g.CellText("B2") != "x" {
		t.Errorf("Expected case-insensitive coordinates, got %q", g.CellText("B2"))
	}
	for _, c := range []string{"C4", "C5", "D4", "D5"} {
		if g.MergeRangeOf(c) != "C4:D5" {
			t.Errorf("MergeRangeOf(%s) = %q, expected C4:D5", c, g.MergeRangeOf(c))
		}
	}
	col, row := g.UsedRange()
	if col != "D" || row != 5 {
		t.Errorf("UsedRange() = (%q, %d), expected (D, 5)", col, row)
	}

	col, row = NewGrid("Empty").UsedRange()
	if col != "A" || row != 1 {
		t.Errorf("Empty UsedRange() = (%q, %d), expected (A, 1)", col, row)
	}
}

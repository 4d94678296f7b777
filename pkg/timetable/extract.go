package timetable

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ukaji3/timetable-go/pkg/timetable/fetch"
	"github.com/ukaji3/timetable-go/pkg/timetable/models"
	"github.com/ukaji3/timetable-go/pkg/timetable/parser"
	"github.com/ukaji3/timetable-go/pkg/timetable/workbook"
)

// Extractor turns spreadsheet documents into schedule trees. It holds no per-run
// state and may be shared between goroutines.
type Extractor struct {
	opts   Options
	fetch  *fetch.Client
	logger *zap.Logger
}

// NewExtractor creates an extractor. A nil client gets a default fetch.Client and
// a nil logger discards output.
func NewExtractor(opts Options, client *fetch.Client, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		client = fetch.NewClient(fetch.DefaultTimeout, logger)
	}
	return &Extractor{
		opts:   opts,
		fetch:  client,
		logger: logger,
	}
}

// Extract extracts the schedule from a local spreadsheet file.
func Extract(path string, opts Options) (*models.Document, error) {
	return NewExtractor(opts, nil, nil).ExtractFile(path)
}

// ForGroup returns a copy of e restricted to the group called name.
func (e *Extractor) ForGroup(name string) *Extractor {
	clone := *e
	clone.opts.GroupFilter = name
	return &clone
}

// Options returns the extraction options.
func (e *Extractor) Options() Options {
	return e.opts
}

// ExtractFile reads and extracts a local spreadsheet file.
func (e *Extractor) ExtractFile(path string) (*models.Document, error) {
	doc, err := workbook.Open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	return e.ExtractDocument(doc, filepath.Base(path))
}

// ExtractReader reads and extracts a spreadsheet from r. The name selects the
// reader by extension and becomes the document source.
func (e *Extractor) ExtractReader(r io.Reader, name string) (*models.Document, error) {
	doc, err := workbook.OpenReader(r, name)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	return e.ExtractDocument(doc, name)
}

// ExtractURL downloads and extracts a remote spreadsheet.
func (e *Extractor) ExtractURL(ctx context.Context, url string) (*models.Document, error) {
	body, err := e.fetch.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return e.ExtractReader(bytes.NewReader(body), url)
}

// ExtractSource extracts a URL when source starts with http:// or https://, and a
// local file otherwise.
func (e *Extractor) ExtractSource(ctx context.Context, source string) (*models.Document, error) {
	if IsURL(source) {
		return e.ExtractURL(ctx, source)
	}
	return e.ExtractFile(source)
}

// ExtractDocument runs extraction over every sheet of an opened document.
func (e *Extractor) ExtractDocument(doc workbook.Document, source string) (*models.Document, error) {
	rules, err := parser.Compile(e.opts.params(source))
	if err != nil {
		return nil, fmt.Errorf("compile rules: %w", err)
	}

	result := &models.Document{
		Source: source,
		Sheets: []*models.Sheet{},
	}

	for _, ws := range doc.Sheets() {
		sheet := parser.NewSheet(ws, rules).Result()
		result.Sheets = append(result.Sheets, sheet)

		e.logger.Debug("sheet extracted",
			zap.String("source", source),
			zap.String("sheet", sheet.Title),
			zap.Bool("processable", sheet.Processable),
			zap.Int("groups", len(sheet.Groups)),
			zap.Bool("class_hour_column", sheet.Layout.HasClassHourColumn()),
		)
	}

	return result, nil
}

// FindGroup returns the first group called name, searching sheets in order.
func FindGroup(doc *models.Document, name string) (*models.Group, error) {
	name = strings.TrimSpace(name)

	processable := false
	for _, sheet := range doc.Sheets {
		if !sheet.Processable {
			continue
		}
		processable = true

		if g, ok := sheet.GroupByName(name); ok {
			return g, nil
		}
	}

	if !processable {
		return nil, ErrNoSchedule
	}
	return nil, fmt.Errorf("%w: %q", ErrGroupNotFound, name)
}

// IsURL reports whether source is an http or https URL.
func IsURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

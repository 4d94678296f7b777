package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ukaji3/timetable-go/pkg/timetable"
	"github.com/ukaji3/timetable-go/pkg/timetable/models"
	"github.com/ukaji3/timetable-go/pkg/timetable/output"
)

type extractFlags struct {
	outputPath  string
	format      string
	pretty      bool
	group       string
	forceCampus bool
	sheetsDir   string
	byDay       bool
}

func newExtractCmd(a *app) *cobra.Command {
	var f extractFlags

	cmd := &cobra.Command{
		Use:   "extract [file.xlsx | url]",
		Short: "Extract the schedule of one document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd.Context(), a, &f, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&f.outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&f.format, "format", "json", "Output format: json, csv, xlsx")
	cmd.Flags().BoolVar(&f.pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&f.group, "group", "", "Extract only this group")
	cmd.Flags().BoolVar(&f.forceCampus, "force-campus", false, "Mark every lesson as held at the alternate campus")
	cmd.Flags().StringVar(&f.sheetsDir, "sheets-dir", "", "Directory for per-sheet JSON files")
	cmd.Flags().BoolVar(&f.byDay, "by-day", false, "Print the --group schedule as JSON arranged by weekday")

	return cmd
}

func runExtract(ctx context.Context, a *app, f *extractFlags, source string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if f.byDay && f.group == "" {
		return fmt.Errorf("--by-day requires --group")
	}

	if !timetable.IsURL(source) {
		if _, err := os.Stat(source); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", source)
		}
	}

	opts := a.cfg.ExtractOptions()
	opts.GroupFilter = f.group
	opts.ForceAlternateCampus = f.forceCampus

	doc, err := a.extractor(opts).ExtractSource(ctx, source)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	var group *models.Group
	if f.group != "" {
		if group, err = timetable.FindGroup(doc, f.group); err != nil {
			return err
		}
	}

	var data []byte
	if f.byDay {
		data, err = output.GroupWeekToJSON(group, f.pretty)
		data = append(data, '\n')
	} else {
		data, err = render(doc, f.format, f.pretty)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if f.outputPath != "" || f.sheetsDir == "" {
		if err := writeOutput(cmd.OutOrStdout(), f.outputPath, data); err != nil {
			return err
		}
	}

	if f.sheetsDir != "" {
		if err := writeSheetFiles(doc, f.sheetsDir, f.pretty); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}

	return nil
}

func render(doc *models.Document, format string, pretty bool) ([]byte, error) {
	switch format {
	case "json":
		data, err := output.ToJSON(doc, pretty)
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "csv":
		return output.ToCSV(doc)
	case "xlsx":
		var buf bytes.Buffer
		if err := output.WriteXLSX(&buf, doc); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("invalid format: %s (must be json, csv, or xlsx)", format)
	}
}

func writeSheetFiles(doc *models.Document, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i, sheet := range doc.Sheets {
		if !sheet.Processable {
			continue
		}

		jsonData, err := output.SheetToJSON(sheet, pretty)
		if err != nil {
			return err
		}

		name := sheet.Title
		if name == "" {
			name = fmt.Sprintf("sheet%d", i+1)
		}
		filename := filepath.Join(dir, filepath.Base(name)+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

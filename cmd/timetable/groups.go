package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/timetable-go/pkg/timetable"
)

func newGroupsCmd(a *app) *cobra.Command {
	var (
		outputPath string
		fromPage   bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "groups [file.xlsx | url]...",
		Short: "List every group name found in the given documents",
		Long: `groups builds a sorted index of group names across many documents.
With --from-page the schedule links of the configured listing page are added.
A document that cannot be read is reported and skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			sources := append([]string{}, args...)
			if fromPage {
				if a.cfg.Fetch.PageURL == "" {
					return fmt.Errorf("fetch.page_url is not configured")
				}
				links, err := a.fetch.Links(ctx, a.cfg.Fetch.PageURL)
				if err != nil {
					return fmt.Errorf("failed to load listing page: %w", err)
				}
				for _, l := range links {
					sources = append(sources, l.URL)
				}
			}
			if len(sources) == 0 {
				return fmt.Errorf("no documents given")
			}

			names, err := a.extractor(a.cfg.ExtractOptions()).CollectGroupNames(ctx, sources)
			if err != nil {
				if failure := collectFailure(ctx, err); failure != nil {
					return failure
				}
				a.logger.Warn("some documents were skipped", zap.Error(err))
			}

			var data []byte
			if asJSON {
				if names == nil {
					names = []string{}
				}
				if data, err = json.MarshalIndent(names, "", "  "); err != nil {
					return err
				}
				data = append(data, '\n')
			} else if len(names) > 0 {
				data = []byte(strings.Join(names, "\n") + "\n")
			}

			return writeOutput(cmd.OutOrStdout(), outputPath, data)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&fromPage, "from-page", false, "Add schedule links found on fetch.page_url")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print a JSON array")

	return cmd
}

// collectFailure returns the error that should fail the command, or nil when
// err only reports documents that were skipped.
func collectFailure(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var srcErr *timetable.SourceError
	if errors.As(err, &srcErr) {
		return nil
	}
	return err
}

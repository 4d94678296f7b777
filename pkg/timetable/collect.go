package timetable

import (
	"context"
	"errors"
	"slices"

	"go.uber.org/zap"
)

// CollectGroupNames extracts every source and returns the sorted, distinct group
// names found. A failing source is logged and skipped; the returned error joins
// one *SourceError per failure and the names are valid even when it is non-nil.
func (e *Extractor) CollectGroupNames(ctx context.Context, sources []string) ([]string, error) {
	var (
		names    []string
		seen     = make(map[string]bool)
		failures []error
	)

	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}

		doc, err := e.ExtractSource(ctx, source)
		if err != nil {
			e.logger.Warn("skipping source", zap.String("source", source), zap.Error(err))
			failures = append(failures, NewSourceError(source, err))
			continue
		}

		for _, name := range doc.GroupNames() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	slices.Sort(names)
	return names, errors.Join(failures...)
}

// Package handler implements the HTTP API endpoints.
package handler

import (
	"go.uber.org/zap"

	"github.com/ukaji3/timetable-go/config"
	"github.com/ukaji3/timetable-go/pkg/timetable"
	"github.com/ukaji3/timetable-go/pkg/timetable/fetch"
)

// Handler groups every endpoint handler.
type Handler struct {
	Schedule *ScheduleHandler
}

// NewHandler creates the handler set.
func NewHandler(cfg *config.Config, extractor *timetable.Extractor, client *fetch.Client, logger *zap.Logger) *Handler {
	return &Handler{
		Schedule: NewScheduleHandler(extractor, client, ScheduleSettings{
			Groups:     cfg.Groups,
			PageURL:    cfg.Fetch.PageURL,
			Extensions: cfg.Upload.Extensions,
			MinBytes:   cfg.Upload.MinSizeKB * 1024,
			MaxBytes:   cfg.Upload.MaxSizeKB * 1024,
		}, logger),
	}
}

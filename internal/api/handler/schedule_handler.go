package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ukaji3/timetable-go/internal/api/middleware"
	"github.com/ukaji3/timetable-go/pkg/response"
	"github.com/ukaji3/timetable-go/pkg/timetable"
	"github.com/ukaji3/timetable-go/pkg/timetable/fetch"
	"github.com/ukaji3/timetable-go/pkg/timetable/models"
	"github.com/ukaji3/timetable-go/pkg/timetable/output"
	"github.com/ukaji3/timetable-go/pkg/timetable/textutil"
	"github.com/ukaji3/timetable-go/pkg/timetable/workbook"
)

const multipartMemory = 8 << 20

// ScheduleSettings bounds what the schedule endpoints accept.
type ScheduleSettings struct {
	// Groups, when non-empty, is the only accepted group names.
	Groups []string
	// PageURL is the listing page; links must share its host. Empty disables links.
	PageURL    string
	Extensions []string
	MinBytes   int64
	MaxBytes   int64
}

// ScheduleHandler serves schedule extraction.
type ScheduleHandler struct {
	extractor *timetable.Extractor
	fetch     *fetch.Client
	settings  ScheduleSettings
	logger    *zap.Logger
}

// NewScheduleHandler creates a ScheduleHandler.
func NewScheduleHandler(extractor *timetable.Extractor, client *fetch.Client, settings ScheduleSettings, logger *zap.Logger) *ScheduleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleHandler{
		extractor: extractor,
		fetch:     client,
		settings:  settings,
		logger:    logger,
	}
}

// GroupResponse is the JSON payload of a schedule request.
type GroupResponse struct {
	Source string        `json:"source"`
	Sheet  string        `json:"sheet"`
	Group  *models.Group `json:"group"`
}

// Extract returns one group's schedule from an uploaded file or a schedule link.
// POST /api/v1/schedule (multipart: group, file | link, format=json|csv|xlsx)
func (h *ScheduleHandler) Extract(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "request body too large")
			return
		}
		response.BadRequest(c, "invalid form")
		return
	}

	group := textutil.Sanitize(c.PostForm("group"))
	link := fetch.SanitizeLink(textutil.Sanitize(c.PostForm("link")))
	format := strings.ToLower(c.DefaultPostForm("format", "json"))

	if group == "" {
		response.BadRequest(c, "group is required")
		return
	}
	if len(h.settings.Groups) > 0 && !slices.Contains(h.settings.Groups, group) {
		response.BadRequest(c, "unknown group")
		return
	}
	if format != "json" && format != "csv" && format != "xlsx" {
		response.BadRequest(c, "format must be json, csv or xlsx")
		return
	}

	file, fileErr := c.FormFile("file")
	if fileErr != nil && !errors.Is(fileErr, http.ErrMissingFile) && !errors.Is(fileErr, http.ErrNotMultipart) {
		response.BadRequest(c, "could not read upload")
		return
	}
	hasFile := fileErr == nil

	switch {
	case hasFile && link != "":
		response.BadRequest(c, "send either a file or a link, not both")
		return
	case !hasFile && link == "":
		response.BadRequest(c, "a file or a link is required")
		return
	}

	extractor := h.extractor.ForGroup(group)

	var (
		doc *models.Document
		err error
	)
	if hasFile {
		if msg := h.checkUpload(file.Filename, file.Size); msg != "" {
			response.BadRequest(c, msg)
			return
		}

		f, openErr := file.Open()
		if openErr != nil {
			response.BadRequest(c, "could not read upload")
			return
		}
		defer f.Close()

		name := filepath.Base(file.Filename)
		middleware.SetSchedule(c, group, name)
		doc, err = extractor.ExtractReader(f, name)
	} else {
		if !h.linkAllowed(link) {
			response.BadRequest(c, "schedule link is not allowed")
			return
		}
		middleware.SetSchedule(c, group, link)
		doc, err = extractor.ExtractURL(c.Request.Context(), link)
	}
	if err != nil {
		h.handleExtractError(c, err)
		return
	}

	g, err := timetable.FindGroup(doc, group)
	if err != nil {
		h.handleExtractError(c, err)
		return
	}

	middleware.RequestLogger(c, h.logger).Info("schedule extracted",
		zap.String("source", doc.Source),
		zap.String("group", g.Name),
		zap.Int("pairs", len(g.Pairs)),
	)
	h.render(c, format, doc.Source, g)
}

func (h *ScheduleHandler) render(c *gin.Context, format, source string, g *models.Group) {
	sheetTitle := ""
	if s := g.Sheet(); s != nil {
		sheetTitle = s.Title
	}

	switch format {
	case "csv":
		doc := &models.Document{Source: source, Sheets: []*models.Sheet{groupSheet(sheetTitle, g)}}
		data, err := output.ToCSV(doc)
		if err != nil {
			_ = c.Error(err)
			response.InternalError(c)
			return
		}
		attachment(c, g.Name+".csv")
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	case "xlsx":
		doc := &models.Document{Source: source, Sheets: []*models.Sheet{groupSheet(sheetTitle, g)}}
		var buf bytes.Buffer
		if err := output.WriteXLSX(&buf, doc); err != nil {
			_ = c.Error(err)
			response.InternalError(c)
			return
		}
		const xlsxType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		attachment(c, g.Name+".xlsx")
		c.Data(http.StatusOK, xlsxType, buf.Bytes())
	default:
		response.OK(c, GroupResponse{Source: source, Sheet: sheetTitle, Group: g})
	}
}

// groupSheet wraps g in a sheet of its own for the flat exporters.
func groupSheet(title string, g *models.Group) *models.Sheet {
	return &models.Sheet{Title: title, Processable: true, Groups: []*models.Group{g}}
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
}

// checkUpload returns a user-facing message when the upload is rejected.
func (h *ScheduleHandler) checkUpload(name string, size int64) string {
	ext := strings.ToLower(path.Ext(name))
	if !workbook.IsSupported(name) || (len(h.settings.Extensions) > 0 && !slices.Contains(h.settings.Extensions, ext)) {
		return "file type is not allowed"
	}
	if size <= 0 || size < h.settings.MinBytes || (h.settings.MaxBytes > 0 && size > h.settings.MaxBytes) {
		return fmt.Sprintf("file size must be between %d and %d KB", h.settings.MinBytes/1024, h.settings.MaxBytes/1024)
	}
	return ""
}

func (h *ScheduleHandler) linkAllowed(link string) bool {
	if h.settings.PageURL == "" {
		return false
	}
	exts := h.settings.Extensions
	if len(exts) == 0 {
		exts = fetch.DefaultExtensions
	}
	return fetch.IsScheduleLink(link, h.settings.PageURL, exts)
}

func (h *ScheduleHandler) handleExtractError(c *gin.Context, err error) {
	_ = c.Error(err)

	var (
		readErr   *workbook.DocumentReadError
		statusErr *fetch.StatusError
	)
	switch {
	case errors.Is(err, timetable.ErrNoSchedule):
		response.NotFound(c, "no schedule found in file")
	case errors.Is(err, timetable.ErrGroupNotFound):
		response.NotFound(c, "group not found in file")
	case errors.As(err, &readErr):
		response.Unprocessable(c, "could not read schedule file", readErr.Err.Error())
	case errors.As(err, &statusErr):
		response.BadGateway(c, "could not download schedule file", fmt.Sprintf("status %d", statusErr.StatusCode))
	default:
		middleware.RequestLogger(c, h.logger).Error("extraction failed", zap.Error(err))
		response.InternalError(c)
	}
}

// Groups lists the configured group names.
// GET /api/v1/groups
func (h *ScheduleHandler) Groups(c *gin.Context) {
	groups := h.settings.Groups
	if groups == nil {
		groups = []string{}
	}
	response.OK(c, groups)
}

// Links lists schedule files found on the configured listing page.
// GET /api/v1/links
func (h *ScheduleHandler) Links(c *gin.Context) {
	if h.settings.PageURL == "" {
		response.NotFound(c, "no listing page configured")
		return
	}

	links, err := h.fetch.Links(c.Request.Context(), h.settings.PageURL)
	if err != nil {
		_ = c.Error(err)
		response.BadGateway(c, "could not load listing page", err.Error())
		return
	}
	if links == nil {
		links = []fetch.Link{}
	}
	response.OK(c, links)
}

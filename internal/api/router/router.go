// Package router wires middleware and handlers into a gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ukaji3/timetable-go/config"
	"github.com/ukaji3/timetable-go/internal/api/handler"
	"github.com/ukaji3/timetable-go/internal/api/middleware"
)

// bodySlack leaves room for multipart framing and form fields around the file.
const bodySlack = 1 << 20

// Setup builds the gin engine.
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/groups", h.Schedule.Groups)
		v1.GET("/links", h.Schedule.Links)
		v1.POST("/schedule", middleware.BodyLimit(cfg.Upload.MaxSizeKB*1024+bodySlack), h.Schedule.Extract)
	}

	return r
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Context keys a handler sets so the access log names the schedule it served.
const (
	ScheduleGroupKey  = "schedule_group"
	ScheduleSourceKey = "schedule_source"
)

// quietPaths are logged at debug level.
var quietPaths = map[string]bool{"/health": true}

// SetSchedule records the group and source document of the current request.
func SetSchedule(c *gin.Context, group, source string) {
	c.Set(ScheduleGroupKey, group)
	c.Set(ScheduleSourceKey, source)
}

// Logger writes one access log entry per request. Schedule requests also carry
// the group and source recorded with SetSchedule.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		level, msg := accessLevel(path, status)
		ce := logger.Check(level, msg)
		if ce == nil {
			return
		}

		fields := []zap.Field{
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Int("bytes", c.Writer.Size()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if group := c.GetString(ScheduleGroupKey); group != "" {
			fields = append(fields, zap.String("group", group))
		}
		if source := c.GetString(ScheduleSourceKey); source != "" {
			fields = append(fields, zap.String("source", source))
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			fields = append(fields, zap.String("errors", errs.String()))
		}

		ce.Write(fields...)
	}
}

func accessLevel(path string, status int) (zapcore.Level, string) {
	switch {
	case status >= 500:
		return zapcore.ErrorLevel, "request failed"
	case status >= 400:
		return zapcore.WarnLevel, "request rejected"
	case quietPaths[path]:
		return zapcore.DebugLevel, "request served"
	default:
		return zapcore.InfoLevel, "request served"
	}
}

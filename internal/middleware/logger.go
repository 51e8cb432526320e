package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/lostfound/internal/pkg/logger"
)

// LoggerConfig controls the request logger.
type LoggerConfig struct {
	SkipPaths []string
}

// DefaultLoggerConfig skips probe and scrape endpoints.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		SkipPaths: []string{"/health", "/metrics"},
	}
}

func Logger(log *logger.Logger) gin.HandlerFunc {
	return LoggerWithConfig(log, DefaultLoggerConfig())
}

// LoggerWithConfig emits one record per request once the handler chain returns.
func LoggerWithConfig(log *logger.Logger, config LoggerConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"ip", c.ClientIP(),
			"size", c.Writer.Size(),
		}
		if id := c.GetString(RequestIDKey); id != "" {
			args = append(args, "request_id", id)
		}
		if email := c.GetString("email"); email != "" {
			args = append(args, "user", email)
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("request", args...)
		case status >= 400:
			log.Warn("request", args...)
		default:
			log.Info("request", args...)
		}
	}
}

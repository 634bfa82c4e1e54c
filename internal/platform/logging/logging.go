package logging

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	log "github.com/sirupsen/logrus"
)

const (
	HeaderRequestID = "X-Request-ID"
	CtxRequestIDKey = "request_id"
)

// Setup configures the package-level logrus logger. Release mode logs JSON.
func Setup(mode, level string) {
	log.SetOutput(os.Stdout)
	if mode == "release" {
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

// RequestLogger replaces gin.Logger(). It tags every request with an id,
// bounds the request context with timeout and logs one line per request.
func RequestLogger(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = ulid.Make().String()
		}
		c.Header(HeaderRequestID, id)
		c.Set(CtxRequestIDKey, id)

		if timeout > 0 {
			ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
			defer cancel()
			c.Request = c.Request.WithContext(ctx)
		}

		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

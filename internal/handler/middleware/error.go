package middleware

import (
	"log/slog"
	"net/http"

	"bookit/internal/handler/httperr"
	"bookit/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		logServerErrors(c)

		if c.Writer.Written() {
			return
		}
		// Search backward through the error stack
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]

			if err.IsType(gin.ErrorTypePublic) {
				// Public: Meta ⇒ Return as is
				if resp, ok := err.Meta.(httperr.Response); ok {
					c.JSON(resp.Status, resp)
					return
				}
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// Server-side failures carry their capture stacks into the log; client errors
// stay at the access-log level.
func logServerErrors(c *gin.Context) {
	if c.Writer.Status() < http.StatusInternalServerError || len(c.Errors) == 0 {
		return
	}
	last := c.Errors.Last()
	slog.Error("request failed",
		"request_id", GetRequestID(c),
		"path", c.Request.URL.Path,
		"error", last.Err.Error(),
		"stack", errs.ExtractStackLines(last.Err, 10))
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic", "error", err, "path", c.Request.URL.Path)

				resp := httperr.Response{Status: http.StatusInternalServerError, Error: "Internal server error"}

				c.JSON(http.StatusInternalServerError, resp)
				c.Abort()
			}
		}()
		c.Next()
	}
}

package middleware

import (
	"log/slog"
	"net/http"

	"accept-broker/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes the last public httperr.Response recorded on the
// context when the handler chain finished without writing a body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			if !c.Errors[i].IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp, ok := c.Errors[i].Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		resp := httperr.Internal()
		c.JSON(resp.Status, resp)
	}
}

// CustomRecovery turns a panic into the internal error body. Routes listed in
// redirects are browser-facing, so a panic there sends a 302 to the mapped URL.
func CustomRecovery(redirects map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			ctx := c.Request.Context()
			slog.ErrorContext(ctx, "recovered from panic", "error", rec, "route", c.FullPath())

			if target, ok := redirects[c.FullPath()]; ok && !c.Writer.Written() {
				c.Redirect(http.StatusFound, target)
				c.Abort()
				return
			}
			resp := httperr.Internal()
			c.AbortWithStatusJSON(resp.Status, resp)
		}()
		c.Next()
	}
}

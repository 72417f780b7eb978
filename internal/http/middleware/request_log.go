package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/mentora-backend/internal/platform/ctxutil"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
)

// Successful requests to these routes are not logged.
var quietRoutes = map[string]bool{
	"/healthcheck":     true,
	"/api/healthcheck": true,
	"/metrics":         true,
}

// RequestLogger writes one line per request, at a level chosen by status.
// Lines carry the caller and, for course routes, the course resource the
// request addressed.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		route := c.FullPath()
		if status < 400 && quietRoutes[route] {
			return
		}
		if route == "" {
			route = "unmatched"
		}

		ctx := c.Request.Context()
		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"route", route,
			"path", c.Request.URL.Path,
			"status", status,
			"bytes", c.Writer.Size(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		fields = append(fields, ctxutil.LogFields(ctx)...)
		fields = append(fields, resourceFields(c, route)...)
		if rd := ctxutil.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
			fields = append(fields, "role", rd.Role)
		} else {
			fields = append(fields, "actor", "anonymous")
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			fields = append(fields, "error", errs.String())
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}

// resourceFields names the path parameter of course, section and mentor
// review routes after the entity it identifies.
func resourceFields(c *gin.Context, route string) []interface{} {
	var out []interface{}
	if slug := c.Param("slug"); slug != "" {
		out = append(out, "course_slug", slug)
	}
	id := c.Param("id")
	if id == "" {
		return out
	}
	switch {
	case strings.Contains(route, "/courses/:id"):
		out = append(out, "course_id", id)
	case strings.Contains(route, "/sections/:id"):
		out = append(out, "section_id", id)
	case strings.Contains(route, "/mentors/:id"):
		out = append(out, "mentor_id", id)
	}
	return out
}

package app

import (
	httpserver "github.com/yungbote/mentora-backend/internal/http"
	"github.com/yungbote/mentora-backend/internal/observability"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics) *httpserver.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return httpserver.NewServer(httpserver.RouterConfig{
		Log:            log,
		ServiceName:    serviceName,
		AllowedOrigins: cfg.CORSOrigins,
		Metrics:        metrics,

		AuthMiddleware: middleware.Auth,

		CourseHandler:     handlers.Course,
		CurriculumHandler: handlers.Curriculum,
		MentorHandler:     handlers.Mentor,
		CategoryHandler:   handlers.Category,
		HealthHandler:     handlers.Health,
	})
}

package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/mentora-backend/internal/http/handlers"
	httpMW "github.com/yungbote/mentora-backend/internal/http/middleware"
	"github.com/yungbote/mentora-backend/internal/observability"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string
	Metrics        *observability.Metrics

	AuthMiddleware *httpMW.AuthMiddleware

	CourseHandler     *httpH.CourseHandler
	CurriculumHandler *httpH.CurriculumHandler
	MentorHandler     *httpH.MentorHandler
	CategoryHandler   *httpH.CategoryHandler
	HealthHandler     *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	if cfg.HealthHandler != nil {
		api.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	public := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			public.Use(cfg.AuthMiddleware.OptionalAuth())
		}

		// Course catalogue
		if cfg.CourseHandler != nil {
			public.GET("/courses", cfg.CourseHandler.ListCourses)
			public.GET("/courses/search", cfg.CourseHandler.SearchCourses)
			public.GET("/courses/featured", cfg.CourseHandler.FeaturedCourses)
			public.GET("/courses/slug/:slug", cfg.CourseHandler.GetCourseBySlug)
			public.GET("/courses/:id", cfg.CourseHandler.GetCourse)
		}

		// Category
		if cfg.CategoryHandler != nil {
			public.GET("/categories", cfg.CategoryHandler.List)
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Course lifecycle
		if cfg.CourseHandler != nil {
			protected.POST("/courses", cfg.CourseHandler.CreateCourse)
			protected.PUT("/courses/:id", cfg.CourseHandler.UpdateCourse)
			protected.DELETE("/courses/:id", cfg.CourseHandler.DeleteCourse)
			protected.POST("/courses/:id/publish", cfg.CourseHandler.PublishCourse)
			protected.POST("/courses/:id/archive", cfg.CourseHandler.ArchiveCourse)
			protected.GET("/courses/:id/statistics", cfg.CourseHandler.CourseStatistics)
			protected.GET("/mentor/courses", cfg.CourseHandler.MentorCourses)
		}

		// Curriculum
		if cfg.CurriculumHandler != nil {
			protected.POST("/courses/:id/sections", cfg.CurriculumHandler.CreateSection)
			protected.POST("/sections/:id/materials", cfg.CurriculumHandler.CreateMaterial)
		}

		// Mentor
		if cfg.MentorHandler != nil {
			protected.POST("/mentor/profile", cfg.MentorHandler.Apply)
			protected.GET("/mentor/profile", cfg.MentorHandler.GetProfile)
			protected.POST("/admin/mentors/:id/review", cfg.MentorHandler.Review)
		}

		// Category
		if cfg.CategoryHandler != nil {
			protected.POST("/categories", cfg.CategoryHandler.Create)
		}
	}

	return r
}

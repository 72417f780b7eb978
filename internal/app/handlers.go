package app

import (
	"gorm.io/gorm"

	httpH "github.com/yungbote/mentora-backend/internal/http/handlers"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
)

type Handlers struct {
	Course     *httpH.CourseHandler
	Curriculum *httpH.CurriculumHandler
	Mentor     *httpH.MentorHandler
	Category   *httpH.CategoryHandler
	Health     *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, theDB *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Course:     httpH.NewCourseHandler(log, services.Course),
		Curriculum: httpH.NewCurriculumHandler(log, services.Curriculum),
		Mentor:     httpH.NewMentorHandler(log, services.Mentor),
		Category:   httpH.NewCategoryHandler(log, services.Category),
		Health:     httpH.NewHealthHandler(theDB),
	}
}

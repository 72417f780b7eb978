package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/mentora-backend/internal/data/db"
	"github.com/yungbote/mentora-backend/internal/observability"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
	"github.com/yungbote/mentora-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	Course     services.CourseService
	Curriculum services.CurriculumService
	Mentor     services.MentorService
	Category   services.CategoryService

	Events services.CourseEventBus
}

func wireServices(theDB *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	var events services.CourseEventBus
	if clients.Redis != nil {
		bus, err := services.NewRedisCourseEventBus(log, clients.Redis, cfg.RedisChannel)
		if err != nil {
			return Services{}, fmt.Errorf("init course event bus: %w", err)
		}
		events = bus
	} else {
		events = services.NewNoopCourseEventBus()
	}
	events = services.WithEventMetrics(events, metrics)

	tx := db.NewGormTxRunner(theDB)
	course := services.NewCourseService(
		theDB,
		log,
		tx,
		repos.Course,
		repos.Section,
		repos.Category,
		repos.Mentor,
		repos.Enrollment,
		repos.Transaction,
		events,
	)

	return Services{
		Auth:       services.NewAuthService(log, cfg.JWTSecretKey),
		Course:     course,
		Curriculum: services.NewCurriculumService(theDB, log, tx, course, repos.Section, repos.Material),
		Mentor:     services.NewMentorService(theDB, log, tx, repos.User, repos.Mentor),
		Category:   services.NewCategoryService(theDB, log, repos.Category),
		Events:     events,
	}, nil
}

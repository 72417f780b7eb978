package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/mentora-backend/internal/data/repos"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
)

type Repos struct {
	User        repos.UserRepo
	Mentor      repos.MentorProfileRepo
	Course      repos.CourseRepo
	Section     repos.SectionRepo
	Material    repos.MaterialRepo
	Category    repos.CategoryRepo
	Enrollment  repos.EnrollmentRepo
	Transaction repos.TransactionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        repos.NewUserRepo(db, log),
		Mentor:      repos.NewMentorProfileRepo(db, log),
		Course:      repos.NewCourseRepo(db, log),
		Section:     repos.NewSectionRepo(db, log),
		Material:    repos.NewMaterialRepo(db, log),
		Category:    repos.NewCategoryRepo(db, log),
		Enrollment:  repos.NewEnrollmentRepo(db, log),
		Transaction: repos.NewTransactionRepo(db, log),
	}
}

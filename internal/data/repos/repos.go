package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/mentora-backend/internal/data/repos/courses"
	"github.com/yungbote/mentora-backend/internal/data/repos/user"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type MentorProfileRepo = user.MentorProfileRepo

type CourseRepo = courses.CourseRepo
type CourseQuery = courses.CourseQuery
type SectionRepo = courses.SectionRepo
type SectionTotals = courses.SectionTotals
type MaterialRepo = courses.MaterialRepo
type CategoryRepo = courses.CategoryRepo
type EnrollmentRepo = courses.EnrollmentRepo
type TransactionRepo = courses.TransactionRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewMentorProfileRepo(db *gorm.DB, baseLog *logger.Logger) MentorProfileRepo {
	return user.NewMentorProfileRepo(db, baseLog)
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return courses.NewCourseRepo(db, baseLog)
}
func NewSectionRepo(db *gorm.DB, baseLog *logger.Logger) SectionRepo {
	return courses.NewSectionRepo(db, baseLog)
}
func NewMaterialRepo(db *gorm.DB, baseLog *logger.Logger) MaterialRepo {
	return courses.NewMaterialRepo(db, baseLog)
}
func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return courses.NewCategoryRepo(db, baseLog)
}
func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return courses.NewEnrollmentRepo(db, baseLog)
}
func NewTransactionRepo(db *gorm.DB, baseLog *logger.Logger) TransactionRepo {
	return courses.NewTransactionRepo(db, baseLog)
}

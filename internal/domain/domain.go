package domain

import (
	"github.com/yungbote/mentora-backend/internal/domain/courses"
	"github.com/yungbote/mentora-backend/internal/domain/user"
)

type User = user.User
type MentorProfile = user.MentorProfile

type Category = courses.Category
type Course = courses.Course
type CourseTag = courses.CourseTag
type Section = courses.Section
type Material = courses.Material
type Enrollment = courses.Enrollment
type Transaction = courses.Transaction

const (
	RoleAdmin   = user.RoleAdmin
	RoleMentor  = user.RoleMentor
	RoleStudent = user.RoleStudent

	MentorStatusPending   = user.MentorStatusPending
	MentorStatusApproved  = user.MentorStatusApproved
	MentorStatusRejected  = user.MentorStatusRejected
	MentorStatusSuspended = user.MentorStatusSuspended

	CourseStatusDraft         = courses.StatusDraft
	CourseStatusPendingReview = courses.StatusPendingReview
	CourseStatusPublished     = courses.StatusPublished
	CourseStatusArchived      = courses.StatusArchived

	EnrollmentActive    = courses.EnrollmentActive
	EnrollmentCompleted = courses.EnrollmentCompleted
	EnrollmentCancelled = courses.EnrollmentCancelled

	TransactionPaid = courses.TransactionPaid
)

// Models lists every persisted type in migration order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&MentorProfile{},
		&Category{},
		&Course{},
		&CourseTag{},
		&Section{},
		&Material{},
		&Enrollment{},
		&Transaction{},
	}
}

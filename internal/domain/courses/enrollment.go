package courses

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentCompleted = "COMPLETED"
	EnrollmentCancelled = "CANCELLED"
)

const (
	TransactionPending  = "PENDING"
	TransactionPaid     = "PAID"
	TransactionFailed   = "FAILED"
	TransactionRefunded = "REFUNDED"
)

// Enrollment registers a student against a course. Any enrollment row blocks
// deleting the course.
type Enrollment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_course_user;index" json:"course_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_course_user" json:"user_id"`
	Status     string    `gorm:"column:status;not null;default:'ACTIVE';index" json:"status"`
	Progress   float64   `gorm:"column:progress;not null;default:0" json:"progress"`
	EnrolledAt time.Time `gorm:"column:enrolled_at;not null" json:"enrolled_at"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Enrollment) TableName() string { return "enrollment" }

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.EnrolledAt.IsZero() {
		e.EnrolledAt = time.Now().UTC()
	}
	return nil
}

type Transaction struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID uuid.UUID  `gorm:"type:uuid;not null;index" json:"course_id"`
	UserID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount   float64    `gorm:"column:amount;not null" json:"amount"`
	Status   string     `gorm:"column:status;not null;default:'PENDING';index" json:"status"`
	PaidAt   *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Transaction) TableName() string { return "course_transaction" }

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

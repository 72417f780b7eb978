package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MentorStatusPending   = "PENDING"
	MentorStatusApproved  = "APPROVED"
	MentorStatusRejected  = "REJECTED"
	MentorStatusSuspended = "SUSPENDED"
)

// MentorProfile is the authoring identity of a user. Its approval status is
// independent from the user account.
type MentorProfile struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User       *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Headline   string     `gorm:"column:headline" json:"headline"`
	Bio        string     `gorm:"column:bio;type:text" json:"bio"`
	Expertise  string     `gorm:"column:expertise" json:"expertise"`
	Status     string     `gorm:"column:status;not null;default:'PENDING';index" json:"status"`
	ApprovedAt *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (MentorProfile) TableName() string { return "mentor_profile" }

func (m *MentorProfile) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *MentorProfile) IsApproved() bool {
	return m != nil && m.Status == MentorStatusApproved
}

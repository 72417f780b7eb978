package courses

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MaterialVideo      = "VIDEO"
	MaterialDocument   = "DOCUMENT"
	MaterialQuiz       = "QUIZ"
	MaterialAssignment = "ASSIGNMENT"
)

func ValidMaterialType(t string) bool {
	switch t {
	case MaterialVideo, MaterialDocument, MaterialQuiz, MaterialAssignment:
		return true
	}
	return false
}

// Section groups materials. Duration is the sum of its materials' durations
// and is what publish aggregates into Course.TotalDuration.
type Section struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"course_id"`
	Title       string      `gorm:"column:title;not null" json:"title"`
	Description string      `gorm:"column:description;type:text" json:"description,omitempty"`
	Order       int         `gorm:"column:position;not null;default:0" json:"order"`
	Duration    int         `gorm:"column:duration;not null;default:0" json:"duration"`
	Materials   []*Material `gorm:"constraint:OnDelete:CASCADE;foreignKey:SectionID;references:ID" json:"materials,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Section) TableName() string { return "section" }

func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type Material struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SectionID     uuid.UUID `gorm:"type:uuid;not null;index" json:"section_id"`
	Title         string    `gorm:"column:title;not null" json:"title"`
	Type          string    `gorm:"column:type;not null;default:'VIDEO'" json:"type"`
	ContentURL    string    `gorm:"column:content_url" json:"content_url,omitempty"`
	Content       string    `gorm:"column:content;type:text" json:"content,omitempty"`
	Duration      int       `gorm:"column:duration;not null;default:0" json:"duration"`
	Order         int       `gorm:"column:position;not null;default:0" json:"order"`
	IsFreePreview bool      `gorm:"column:is_free_preview;not null;default:false" json:"is_free_preview"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Material) TableName() string { return "material" }

func (m *Material) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

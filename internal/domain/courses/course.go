package courses

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/mentora-backend/internal/domain/user"
)

const (
	StatusDraft         = "DRAFT"
	StatusPendingReview = "PENDING_REVIEW"
	StatusPublished     = "PUBLISHED"
	StatusArchived      = "ARCHIVED"
)

const (
	LevelBeginner     = "BEGINNER"
	LevelIntermediate = "INTERMEDIATE"
	LevelAdvanced     = "ADVANCED"
	LevelAllLevels    = "ALL_LEVELS"
)

// DefaultLanguage is applied when a course is created without one.
const DefaultLanguage = "id"

func ValidLevel(level string) bool {
	switch level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelAllLevels:
		return true
	}
	return false
}

func ValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusPendingReview, StatusPublished, StatusArchived:
		return true
	}
	return false
}

type Course struct {
	ID       uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	Slug     string              `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	MentorID uuid.UUID           `gorm:"type:uuid;not null;index" json:"mentor_id"`
	Mentor   *user.MentorProfile `gorm:"constraint:OnDelete:CASCADE;foreignKey:MentorID;references:ID" json:"mentor,omitempty"`

	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Category   *Category `gorm:"constraint:OnDelete:RESTRICT;foreignKey:CategoryID;references:ID" json:"category,omitempty"`

	Title            string                      `gorm:"column:title;not null" json:"title"`
	Description      string                      `gorm:"column:description;type:text;not null" json:"description"`
	ShortDescription string                      `gorm:"column:short_description" json:"short_description"`
	Thumbnail        string                      `gorm:"column:thumbnail" json:"thumbnail,omitempty"`
	PreviewVideo     string                      `gorm:"column:preview_video" json:"preview_video,omitempty"`
	Level            string                      `gorm:"column:level;not null;default:'ALL_LEVELS';index" json:"level"`
	Language         string                      `gorm:"column:language;not null;default:'id'" json:"language"`
	Requirements     datatypes.JSONSlice[string] `gorm:"column:requirements" json:"requirements"`
	WhatYouWillLearn datatypes.JSONSlice[string] `gorm:"column:what_you_will_learn" json:"what_you_will_learn"`
	TargetAudience   datatypes.JSONSlice[string] `gorm:"column:target_audience" json:"target_audience"`
	Tags             []*CourseTag                `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"-"`

	Price         float64  `gorm:"column:price;not null;default:0" json:"price"`
	DiscountPrice *float64 `gorm:"column:discount_price" json:"discount_price,omitempty"`
	IsFree        bool     `gorm:"column:is_free;not null;default:false;index" json:"is_free"`
	IsPremium     bool     `gorm:"column:is_premium;not null;default:false;index" json:"is_premium"`

	Status      string     `gorm:"column:status;not null;default:'DRAFT';index" json:"status"`
	PublishedAt *time.Time `gorm:"column:published_at;index" json:"published_at,omitempty"`

	// Denormalized counters. TotalDuration and TotalLectures are only
	// recomputed on publish.
	TotalDuration int     `gorm:"column:total_duration;not null;default:0" json:"total_duration"`
	TotalLectures int     `gorm:"column:total_lectures;not null;default:0" json:"total_lectures"`
	TotalStudents int     `gorm:"column:total_students;not null;default:0;index" json:"total_students"`
	AverageRating float64 `gorm:"column:average_rating;not null;default:0" json:"average_rating"`
	TotalReviews  int     `gorm:"column:total_reviews;not null;default:0" json:"total_reviews"`
	TotalViews    int     `gorm:"column:total_views;not null;default:0" json:"total_views"`

	Sections []*Section `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"sections,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Course) TableName() string { return "course" }

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Course) IsPublished() bool { return c != nil && c.Status == StatusPublished }

// TagNames flattens the tag rows in insertion order.
func (c *Course) TagNames() []string {
	out := make([]string, 0, len(c.Tags))
	for _, t := range c.Tags {
		if t != nil {
			out = append(out, t.Tag)
		}
	}
	return out
}

// CourseTag stores one tag per row so exact-tag search stays portable SQL.
type CourseTag struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_course_tag" json:"course_id"`
	Tag      string    `gorm:"column:tag;not null;uniqueIndex:idx_course_tag;index" json:"tag"`
	Position int       `gorm:"column:position;not null;default:0" json:"position"`
}

func (CourseTag) TableName() string { return "course_tag" }

func (t *CourseTag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

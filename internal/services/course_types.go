package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/mentora-backend/internal/domain"
)

type CreateCourseInput struct {
	Title            string    `json:"title" validate:"required,max=200"`
	Description      string    `json:"description" validate:"required"`
	ShortDescription string    `json:"shortDescription" validate:"max=500"`
	Thumbnail        string    `json:"thumbnail"`
	PreviewVideo     string    `json:"previewVideo"`
	CategoryID       uuid.UUID `json:"categoryId" validate:"required"`
	Level            string    `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED ALL_LEVELS"`
	Language         string    `json:"language"`
	Requirements     []string  `json:"requirements"`
	WhatYouWillLearn []string  `json:"whatYouWillLearn" validate:"required,min=1"`
	TargetAudience   []string  `json:"targetAudience"`
	Tags             []string  `json:"tags"`
	Price            float64   `json:"price"`
	DiscountPrice    *float64  `json:"discountPrice"`
	IsFree           bool      `json:"isFree"`
	IsPremium        bool      `json:"isPremium"`
}

// normalized trims free text and drops blank list entries so that
// whitespace-only values fail the required checks.
func (in CreateCourseInput) normalized() CreateCourseInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.ShortDescription = strings.TrimSpace(in.ShortDescription)
	in.Language = strings.TrimSpace(in.Language)
	in.Level = strings.ToUpper(strings.TrimSpace(in.Level))
	in.Requirements = trimList(in.Requirements)
	in.WhatYouWillLearn = trimList(in.WhatYouWillLearn)
	in.TargetAudience = trimList(in.TargetAudience)
	return in
}

// UpdateCourseInput is a partial update; nil fields are left untouched.
// Every field must have an entry in course_fields.yaml.
type UpdateCourseInput struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	ShortDescription *string    `json:"shortDescription"`
	Thumbnail        *string    `json:"thumbnail"`
	PreviewVideo     *string    `json:"previewVideo"`
	CategoryID       *uuid.UUID `json:"categoryId"`
	Level            *string    `json:"level"`
	Language         *string    `json:"language"`
	Requirements     *[]string  `json:"requirements"`
	WhatYouWillLearn *[]string  `json:"whatYouWillLearn"`
	TargetAudience   *[]string  `json:"targetAudience"`
	Tags             *[]string  `json:"tags"`
	Price            *float64   `json:"price"`
	DiscountPrice    *float64   `json:"discountPrice"`
	IsFree           *bool      `json:"isFree"`
	IsPremium        *bool      `json:"isPremium"`
}

type CourseFilters struct {
	Page       int
	Limit      int
	Search     string
	CategoryID *uuid.UUID
	Level      string
	MinPrice   *float64
	MaxPrice   *float64
	IsFree     *bool
	IsPremium  *bool
	Status     string
	MentorID   *uuid.UUID
	SortBy     string
	SortOrder  string
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type CourseList struct {
	Data       []*CourseView `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

type CourseCounts struct {
	Enrollments int64 `json:"enrollments"`
	Sections    int64 `json:"sections"`
}

type CourseStatistics struct {
	CourseID      uuid.UUID        `json:"courseId"`
	Title         string           `json:"title"`
	Status        string           `json:"status"`
	TotalStudents int              `json:"totalStudents"`
	TotalViews    int              `json:"totalViews"`
	TotalReviews  int              `json:"totalReviews"`
	AverageRating float64          `json:"averageRating"`
	TotalDuration int              `json:"totalDuration"`
	TotalLectures int              `json:"totalLectures"`
	Enrollments   EnrollmentCounts `json:"enrollments"`
	Revenue       RevenueSummary   `json:"revenue"`
}

type EnrollmentCounts struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}

type RevenueSummary struct {
	Total        float64 `json:"total"`
	Transactions int64   `json:"transactions"`
}

// CourseView is the public JSON contract for a course.
type CourseView struct {
	ID               uuid.UUID     `json:"id"`
	Slug             string        `json:"slug"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	ShortDescription string        `json:"shortDescription"`
	Thumbnail        string        `json:"thumbnail"`
	PreviewVideo     string        `json:"previewVideo"`
	Level            string        `json:"level"`
	Language         string        `json:"language"`
	Requirements     []string      `json:"requirements"`
	WhatYouWillLearn []string      `json:"whatYouWillLearn"`
	TargetAudience   []string      `json:"targetAudience"`
	Tags             []string      `json:"tags"`
	Price            float64       `json:"price"`
	DiscountPrice    *float64      `json:"discountPrice"`
	IsFree           bool          `json:"isFree"`
	IsPremium        bool          `json:"isPremium"`
	Status           string        `json:"status"`
	PublishedAt      *time.Time    `json:"publishedAt"`
	TotalDuration    int           `json:"totalDuration"`
	TotalLectures    int           `json:"totalLectures"`
	TotalStudents    int           `json:"totalStudents"`
	AverageRating    float64       `json:"averageRating"`
	TotalReviews     int           `json:"totalReviews"`
	TotalViews       int           `json:"totalViews"`
	CategoryID       uuid.UUID     `json:"categoryId"`
	Category         *CategoryView `json:"category,omitempty"`
	MentorID         uuid.UUID     `json:"mentorId"`
	Mentor           *MentorView   `json:"mentor,omitempty"`
	Sections         []SectionView `json:"sections,omitempty"`
	Counts           *CourseCounts `json:"_count,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

type CategoryView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
}

type MentorView struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"userId"`
	Headline   string     `json:"headline"`
	Bio        string     `json:"bio,omitempty"`
	Expertise  string     `json:"expertise,omitempty"`
	Status     string     `json:"status"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
	User       *UserView  `json:"user,omitempty"`
}

type UserView struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"fullName"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
}

type SectionView struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Order       int            `json:"order"`
	Duration    int            `json:"duration"`
	Materials   []MaterialView `json:"materials"`
}

type MaterialView struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Type          string    `json:"type"`
	ContentURL    string    `json:"contentUrl,omitempty"`
	Duration      int       `json:"duration"`
	Order         int       `json:"order"`
	IsFreePreview bool      `json:"isFreePreview"`
}

func formatCourse(c *types.Course) *CourseView {
	if c == nil {
		return nil
	}
	out := &CourseView{
		ID:               c.ID,
		Slug:             c.Slug,
		Title:            c.Title,
		Description:      c.Description,
		ShortDescription: c.ShortDescription,
		Thumbnail:        c.Thumbnail,
		PreviewVideo:     c.PreviewVideo,
		Level:            c.Level,
		Language:         c.Language,
		Requirements:     nonNil(c.Requirements),
		WhatYouWillLearn: nonNil(c.WhatYouWillLearn),
		TargetAudience:   nonNil(c.TargetAudience),
		Tags:             c.TagNames(),
		Price:            c.Price,
		DiscountPrice:    c.DiscountPrice,
		IsFree:           c.IsFree,
		IsPremium:        c.IsPremium,
		Status:           c.Status,
		PublishedAt:      c.PublishedAt,
		TotalDuration:    c.TotalDuration,
		TotalLectures:    c.TotalLectures,
		TotalStudents:    c.TotalStudents,
		AverageRating:    c.AverageRating,
		TotalReviews:     c.TotalReviews,
		TotalViews:       c.TotalViews,
		CategoryID:       c.CategoryID,
		Category:         formatCategory(c.Category),
		MentorID:         c.MentorID,
		Mentor:           formatMentor(c.Mentor),
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	if len(c.Sections) > 0 {
		out.Sections = make([]SectionView, 0, len(c.Sections))
		for _, s := range c.Sections {
			if s == nil {
				continue
			}
			sv := SectionView{
				ID:          s.ID,
				Title:       s.Title,
				Description: s.Description,
				Order:       s.Order,
				Duration:    s.Duration,
				Materials:   make([]MaterialView, 0, len(s.Materials)),
			}
			for _, m := range s.Materials {
				if m == nil {
					continue
				}
				sv.Materials = append(sv.Materials, formatMaterial(m))
			}
			out.Sections = append(out.Sections, sv)
		}
	}
	return out
}

func formatCourses(rows []*types.Course) []*CourseView {
	out := make([]*CourseView, 0, len(rows))
	for _, c := range rows {
		if c != nil {
			out = append(out, formatCourse(c))
		}
	}
	return out
}

func formatCategory(c *types.Category) *CategoryView {
	if c == nil {
		return nil
	}
	return &CategoryView{ID: c.ID, Name: c.Name, Slug: c.Slug, Description: c.Description}
}

func formatMentor(m *types.MentorProfile) *MentorView {
	if m == nil {
		return nil
	}
	out := &MentorView{
		ID:         m.ID,
		UserID:     m.UserID,
		Headline:   m.Headline,
		Bio:        m.Bio,
		Expertise:  m.Expertise,
		Status:     m.Status,
		ApprovedAt: m.ApprovedAt,
	}
	if u := m.User; u != nil {
		out.User = &UserView{
			ID:        u.ID,
			FullName:  u.FullName(),
			FirstName: u.FirstName,
			LastName:  u.LastName,
			AvatarURL: u.AvatarURL,
		}
	}
	return out
}

func formatMaterial(m *types.Material) MaterialView {
	return MaterialView{
		ID:            m.ID,
		Title:         m.Title,
		Type:          m.Type,
		ContentURL:    m.ContentURL,
		Duration:      m.Duration,
		Order:         m.Order,
		IsFreePreview: m.IsFreePreview,
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/mentora-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email, role string) *types.User {
	tb.Helper()
	if role == "" {
		role = types.RoleStudent
	}
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      role,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedMentor(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, status string) *types.MentorProfile {
	tb.Helper()
	if status == "" {
		status = types.MentorStatusApproved
	}
	m := &types.MentorProfile{
		ID:       uuid.New(),
		UserID:   userID,
		Headline: "Engineer",
		Status:   status,
	}
	if status == types.MentorStatusApproved {
		now := time.Now().UTC()
		m.ApprovedAt = &now
	}
	if err := tx.WithContext(ctx).Omit("User").Create(m).Error; err != nil {
		tb.Fatalf("seed mentor profile: %v", err)
	}
	return m
}

func SeedCategory(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string) *types.Category {
	tb.Helper()
	c := &types.Category{
		ID:   uuid.New(),
		Name: slug,
		Slug: slug,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

// CourseSeed carries the fields tests usually vary; zero values get defaults.
type CourseSeed struct {
	MentorID      uuid.UUID
	CategoryID    uuid.UUID
	Title         string
	Slug          string
	Description   string
	Status        string
	Level         string
	Price         float64
	IsFree        bool
	IsPremium     bool
	Tags          []string
	TotalStudents int
	AverageRating float64
	CreatedAt     time.Time
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, in CourseSeed) *types.Course {
	tb.Helper()
	if in.Title == "" {
		in.Title = "Course"
	}
	if in.Slug == "" {
		in.Slug = "course-" + uuid.NewString()[:8]
	}
	if in.Description == "" {
		in.Description = "A course."
	}
	if in.Status == "" {
		in.Status = types.CourseStatusDraft
	}
	if in.Level == "" {
		in.Level = "ALL_LEVELS"
	}
	c := &types.Course{
		ID:            uuid.New(),
		Slug:          in.Slug,
		MentorID:      in.MentorID,
		CategoryID:    in.CategoryID,
		Title:         in.Title,
		Description:   in.Description,
		Level:         in.Level,
		Language:      "id",
		Price:         in.Price,
		IsFree:        in.IsFree,
		IsPremium:     in.IsPremium,
		Status:        in.Status,
		TotalStudents: in.TotalStudents,
		AverageRating: in.AverageRating,
		CreatedAt:     in.CreatedAt,
	}
	if in.Status == types.CourseStatusPublished {
		now := time.Now().UTC()
		c.PublishedAt = &now
	}
	if err := tx.WithContext(ctx).Omit("Tags", "Sections", "Category", "Mentor").Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	for i, tag := range in.Tags {
		row := &types.CourseTag{ID: uuid.New(), CourseID: c.ID, Tag: tag, Position: i}
		if err := tx.WithContext(ctx).Create(row).Error; err != nil {
			tb.Fatalf("seed course tag: %v", err)
		}
	}
	return c
}

func SeedSection(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uuid.UUID, order, duration int) *types.Section {
	tb.Helper()
	s := &types.Section{
		ID:       uuid.New(),
		CourseID: courseID,
		Title:    "Section",
		Order:    order,
		Duration: duration,
	}
	if err := tx.WithContext(ctx).Omit("Materials").Create(s).Error; err != nil {
		tb.Fatalf("seed section: %v", err)
	}
	return s
}

func SeedMaterial(tb testing.TB, ctx context.Context, tx *gorm.DB, sectionID uuid.UUID, order, duration int) *types.Material {
	tb.Helper()
	m := &types.Material{
		ID:        uuid.New(),
		SectionID: sectionID,
		Title:     "Material",
		Type:      "VIDEO",
		Duration:  duration,
		Order:     order,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed material: %v", err)
	}
	return m
}

func SeedEnrollment(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID, userID uuid.UUID, status string) *types.Enrollment {
	tb.Helper()
	if status == "" {
		status = types.EnrollmentActive
	}
	e := &types.Enrollment{
		ID:       uuid.New(),
		CourseID: courseID,
		UserID:   userID,
		Status:   status,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}

func SeedTransaction(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID, userID uuid.UUID, amount float64, status string) *types.Transaction {
	tb.Helper()
	t := &types.Transaction{
		ID:       uuid.New(),
		CourseID: courseID,
		UserID:   userID,
		Amount:   amount,
		Status:   status,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed transaction: %v", err)
	}
	return t
}

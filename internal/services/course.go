package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/mentora-backend/internal/data/db"
	"github.com/yungbote/mentora-backend/internal/data/repos"
	types "github.com/yungbote/mentora-backend/internal/domain"
	"github.com/yungbote/mentora-backend/internal/domain/courses"
	"github.com/yungbote/mentora-backend/internal/platform/apierr"
	"github.com/yungbote/mentora-backend/internal/platform/dbctx"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
	"github.com/yungbote/mentora-backend/internal/platform/slug"
)

const (
	defaultPageLimit     = 10
	maxPageLimit         = 100
	maxPage              = 1_000_000
	defaultFeaturedLimit = 6
	maxFeaturedLimit     = 50
)

type CourseService interface {
	CreateCourse(dbc dbctx.Context, mentorUserID uuid.UUID, in CreateCourseInput) (*CourseView, error)

	GetAllCourses(dbc dbctx.Context, filters CourseFilters) (*CourseList, error)
	SearchCourses(dbc dbctx.Context, query string, filters CourseFilters) (*CourseList, error)
	GetFeaturedCourses(dbc dbctx.Context, limit int) ([]*CourseView, error)
	GetMentorCourses(dbc dbctx.Context, mentorUserID uuid.UUID, includePrivate bool) ([]*CourseView, error)

	GetCourseByID(dbc dbctx.Context, courseID uuid.UUID, includePrivate bool) (*CourseView, error)
	GetCourseBySlug(dbc dbctx.Context, slug string, includePrivate bool) (*CourseView, error)
	// The ForViewer variants grant private access to admins and the owning
	// mentor's user.
	GetCourseByIDForViewer(dbc dbctx.Context, courseID, viewerID uuid.UUID, viewerRole string) (*CourseView, error)
	GetCourseBySlugForViewer(dbc dbctx.Context, slug string, viewerID uuid.UUID, viewerRole string) (*CourseView, error)

	UpdateCourse(dbc dbctx.Context, courseID, userID uuid.UUID, userRole string, in UpdateCourseInput) (*CourseView, error)
	DeleteCourse(dbc dbctx.Context, courseID, userID uuid.UUID, userRole string) error
	PublishCourse(dbc dbctx.Context, courseID, userID uuid.UUID, userRole string) (*CourseView, error)
	ArchiveCourse(dbc dbctx.Context, courseID, userID uuid.UUID, userRole string) (*CourseView, error)

	GetCourseStatistics(dbc dbctx.Context, courseID uuid.UUID) (*CourseStatistics, error)

	// AuthorizeCourseOwner locks the course row and checks the caller is an
	// admin or the owning mentor's user.
	AuthorizeCourseOwner(dbc dbctx.Context, courseID, userID uuid.UUID, userRole string) (*types.Course, error)
	// CheckCourseOwner is the non-locking form for read-only endpoints.
	CheckCourseOwner(dbc dbctx.Context, courseID, userID uuid.UUID, userRole string) (*types.Course, error)
}

type courseService struct {
	db  *gorm.DB
	log *logger.Logger
	tx  db.TxRunner

	courses      repos.CourseRepo
	sections     repos.SectionRepo
	categories   repos.CategoryRepo
	mentors      repos.MentorProfileRepo
	enrollments  repos.EnrollmentRepo
	transactions repos.TransactionRepo

	events CourseEventBus
	now    func() time.Time
}

func NewCourseService(
	database *gorm.DB,
	baseLog *logger.Logger,
	tx db.TxRunner,
	courseRepo repos.CourseRepo,
	sectionRepo repos.SectionRepo,
	categoryRepo repos.CategoryRepo,
	mentorRepo repos.MentorProfileRepo,
	enrollmentRepo repos.EnrollmentRepo,
	transactionRepo repos.TransactionRepo,
	events CourseEventBus,
) CourseService {
	if events == nil {
		events = NewNoopCourseEventBus()
	}
	return &courseService{
		db:           database,
		log:          baseLog.With("service", "CourseService"),
		tx:           tx,
		courses:      courseRepo,
		sections:     sectionRepo,
		categories:   categoryRepo,
		mentors:      mentorRepo,
		enrollments:  enrollmentRepo,
		transactions: transactionRepo,
		events:       events,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func isAdminRole(role string) bool {
	return strings.EqualFold(strings.TrimSpace(role), types.RoleAdmin)
}

func errCourseNotFound() error {
	return apierr.NotFound("course_not_found", "Course not found")
}

func (s *courseService) CreateCourse(dbc dbctx.Context, mentorUserID uuid.UUID, in CreateCourseInput) (*CourseView, error) {
	var created *types.Course
	err := s.tx.InTx(dbc, func(txc dbctx.Context) error {
		mentor, err := s.mentors.GetByUserID(txc, mentorUserID)
		if err != nil {
			return fmt.Errorf("load mentor profile: %w", err)
		}
		if mentor == nil {
			return apierr.Forbidden("mentor_required", "Only approved mentors can create courses")
		}
		if !mentor.IsApproved() {
			return apierr.Forbidden("mentor_not_approved", "mentor profile must be approved first")
		}

		in = in.normalized()
		if err := validateInput("invalid_course_input", in); err != nil {
			return err
		}
		if in.Price < 0 {
			return apierr.BadRequest("invalid_price", "price must be >= 0")
		}
		if in.DiscountPrice != nil && *in.DiscountPrice < 0 {
			return apierr.BadRequest("invalid_price", "discountPrice must be >= 0")
		}
		if err := s.checkCategory(txc, in.CategoryID); err != nil {
			return err
		}

		courseSlug, err := s.uniqueSlug(txc, in.Title, uuid.Nil)
		if err != nil {
			return err
		}

		language := in.Language
		if language == "" {
			language = courses.DefaultLanguage
		}
		level := in.Level
		if level == "" {
			level = courses.LevelAllLevels
		}

		row := &types.Course{
			ID:               uuid.New(),
			Slug:             courseSlug,
			MentorID:         mentor.ID,
			CategoryID:       in.CategoryID,
			Title:            in.Title,
			Description:      in.Description,
			ShortDescription: in.ShortDescription,
			Thumbnail:        in.Thumbnail,
			PreviewVideo:     in.PreviewVideo,
			Level:            level,
			Language:         language,
			Requirements:     datatypes.JSONSlice[string](in.Requirements),
			WhatYouWillLearn: datatypes.JSONSlice[string](in.WhatYouWillLearn),
			TargetAudience:   datatypes.JSONSlice[string](in.TargetAudience),
			Price:            in.Price,
			DiscountPrice:    in.DiscountPrice,
			IsFree:           in.IsFree,
			IsPremium:        in.IsPremium,
			Status:           types.CourseStatusDraft,
		}
		if _, err := s.courses.Create(txc, []*types.Course{row}); err != nil {
			return db.MapError("create_course", err)
		}
		if err := s.courses.ReplaceTags(txc, row.ID, in.Tags); err != nil {
			return db.MapError("create_course_tags", err)
		}
		created = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("course created", "course_id", created.ID, "mentor_id", created.MentorID, "slug", created.Slug)
	s.emit(dbc, CourseEventCreated, created, mentorUserID)
	return s.loadView(dbc, created.ID)
}

func (s *courseService) GetAllCourses(dbc dbctx.Context, filters CourseFilters) (*CourseList, error) {
	statuses := []string{types.CourseStatusPublished}
	if st := strings.ToUpper(strings.TrimSpace(filters.Status)); st != "" {
		if !courses.ValidStatus(st) {
			return nil, apierr.BadRequest("invalid_status", fmt.Sprintf("unknown status %q", filters.Status))
		}
		statuses = []string{st}
	}
	return s.list(dbc, filters, statuses)
}

// SearchCourses only ever returns published courses.
func (s *courseService) SearchCourses(dbc dbctx.Context, query string, filters CourseFilters) (*CourseList, error) {
	if q := strings.TrimSpace(query); q != "" {
		filters.Search = q
	}
	return s.list(dbc, filters, []string{types.CourseStatusPublished})
}

func (s *courseService) list(dbc dbctx.Context, f CourseFilters, statuses []string) (*CourseList, error) {
	page := clamp(f.Page, 1, maxPage)
	limit := f.Limit
	if limit == 0 {
		limit = defaultPageLimit
	}
	limit = clamp(limit, 1, maxPageLimit)

	level := strings.ToUpper(strings.TrimSpace(f.Level))
	if level != "" && !courses.ValidLevel(level) {
		return nil, apierr.BadRequest("invalid_level", fmt.Sprintf("unknown level %q", f.Level))
	}

	rows, total, err := s.courses.List(dbc, repos.CourseQuery{
		Search:     f.Search,
		CategoryID: f.CategoryID,
		Level:      level,
		MinPrice:   f.MinPrice,
		MaxPrice:   f.MaxPrice,
		IsFree:     f.IsFree,
		IsPremium:  f.IsPremium,
		Statuses:   statuses,
		MentorID:   f.MentorID,
		SortBy:     f.SortBy,
		SortOrder:  f.SortOrder,
		Offset:     (page - 1) * limit,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	return &CourseList{
		Data: formatCourses(rows),
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		},
	}, nil
}

func (s *courseService) GetFeaturedCourses(dbc dbctx.Context, limit int) ([]*CourseView, error) {
	if limit == 0 {
		limit = defaultFeaturedLimit
	}
	rows, err := s.courses.ListFeatured(dbc, clamp(limit, 1, maxFeaturedLimit))
	if err != nil {
		return nil, fmt.Errorf("list featured courses: %w", err)
	}
	return formatCourses(rows), nil
}

func (s *courseService) GetMentorCourses(dbc dbctx.Context, mentorUserID uuid.UUID, includePrivate bool) ([]*CourseView, error) {
	mentor, err := s.mentors.GetByUserID(dbc, mentorUserID)
	if err != nil {
		return nil, fmt.Errorf("load mentor profile: %w", err)
	}
	if mentor == nil {
		return nil, apierr.NotFound("mentor_not_found", "Mentor profile not found")
	}
	var statuses []string
	if !includePrivate {
		statuses = []string{types.CourseStatusPublished}
	}
	rows, err := s.courses.ListByMentorID(dbc, mentor.ID, statuses)
	if err != nil {
		return nil, fmt.Errorf("list mentor courses: %w", err)
	}
	return formatCourses(rows), nil
}

func (s *courseService) GetCourseByID(dbc dbctx.Context, courseID uuid.UUID, includePrivate bool) (*CourseView, error) {
	c, err := s.courses.GetDetailByID(dbc, courseID)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	return s.present(dbc, c, includePrivate, false)
}

// GetCourseBySlug counts a view on every successful fetch, owner previews
// included.
func (s *courseService) GetCourseBySlug(dbc dbctx.Context, courseSlug string, includePrivate bool) (*CourseView, error) {
	c, err := s.courses.GetDetailBySlug(dbc, courseSlug)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	return s.present(dbc, c, includePrivate, true)
}

func (s *courseService) GetCourseByIDForViewer(dbc dbctx.Context, courseID, viewerID uuid.UUID, viewerRole string) (*CourseView, error) {
	c, err := s.courses.GetDetailByID(dbc, courseID)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	return s.present(dbc, c, canViewPrivate(c, viewerID, viewerRole), false)
}

func (s *courseService) GetCourseBySlugForViewer(dbc dbctx.Context, courseSlug string, viewerID uuid.UUID, viewerRole string) (*CourseView, error) {
	c, err := s.courses.GetDetailBySlug(dbc, courseSlug)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	return s.present(dbc, c, canViewPrivate(c, viewerID, viewerRole), true)
}

func canViewPrivate(c *types.Course, viewerID uuid.UUID, viewerRole string) bool {
	if c == nil {
		return false
	}
	if isAdminRole(viewerRole) {
		return true
	}
	return viewerID != uuid.Nil && c.Mentor != nil && c.Mentor.UserID == viewerID
}

func (s *courseService) present(dbc dbctx.Context, c *types.Course, includePrivate, countView bool) (*CourseView, error) {
	if c == nil {
		return nil, errCourseNotFound()
	}
	if !c.IsPublished() && !includePrivate {
		return nil, apierr.Forbidden("course_not_available", "Course is not available")
	}

	enrollments, err := s.enrollments.CountByCourseID(dbc, c.ID)
	if err != nil {
		return nil, fmt.Errorf("count enrollments: %w", err)
	}

	if countView {
		if err := s.courses.IncrementViews(dbc, c.ID); err != nil {
			return nil, db.MapError("increment_views", err)
		}
		c.TotalViews++
	}

	out := formatCourse(c)
	out.Counts = &CourseCounts{
		Enrollments: enrollments,
		Sections:    int64(len(c.Sections)),
	}
	return out, nil
}

func (s *courseService) UpdateCourse(dbc dbctx.Context, courseID, userID uuid.UUID, userRole string, in UpdateCourseInput) (*CourseView, error) {
	var (
		updated *types.Course
		changed bool
	)
	err := s.tx.InTx(dbc, func(txc dbctx.Context) error {
		c, err := s.AuthorizeCourseOwner(txc, courseID, userID, userRole)
		if err != nil {
			return err
		}
		if err := validateUpdate(in); err != nil {
			return err
		}

		plan, err := planCourseUpdate(in)
		if err != nil {
			return err
		}
		updated = c
		if plan.empty() {
			return nil
		}
		changed = true
		for _, ref := range plan.References {
			if err := s.checkReference(txc, ref); err != nil {
				return err
			}
		}
		if plan.SlugSource != nil {
			title := strings.TrimSpace(*plan.SlugSource)
			plan.Columns["title"] = title
			if title != c.Title {
				courseSlug, err := s.uniqueSlug(txc, title, c.ID)
				if err != nil {
					return err
				}
				plan.Columns["slug"] = courseSlug
			}
		}

		if len(plan.Columns) > 0 {
			if err := s.courses.UpdateFields(txc, c.ID, plan.Columns); err != nil {
				return db.MapError("update_course", err)
			}
		}
		if plan.Tags != nil {
			if err := s.courses.ReplaceTags(txc, c.ID, *plan.Tags); err != nil {
				return db.MapError("update_course_tags", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := s.loadView(dbc, updated.ID)
	if err != nil {
		return nil, err
	}
	if !changed {
		return view, nil
	}
	s.log.Info("course updated", "course_id", view.ID, "actor_id", userID)
	s.emitView(dbc, CourseEventUpdated, view, userID)
	return view, nil
}

func validateUpdate(in UpdateCourseInput) error {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return apierr.BadRequest("invalid_course_input", "title is required")
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) == "" {
		return apierr.BadRequest("invalid_course_input", "description is required")
	}
	if in.WhatYouWillLearn != nil && len(trimList(*in.WhatYouWillLearn)) == 0 {
		return apierr.BadRequest("invalid_course_input", "whatYouWillLearn must have at least 1 item(s)")
	}
	if in.CategoryID != nil && *in.CategoryID == uuid.Nil {
		return apierr.BadRequest("invalid_course_input", "categoryId is required")
	}
	if in.Level != nil && !courses.ValidLevel(*in.Level) {
		return apierr.BadRequest("invalid_course_input", fmt.Sprintf("unknown level %q", *in.Level))
	}
	if in.Price != nil && *in.Price < 0 {
		return apierr.BadRequest("invalid_price", "price must be >= 0")
	}
	if in.DiscountPrice != nil && *in.DiscountPrice < 0 {
		return apierr.BadRequest("invalid_price", "discountPrice must be >= 0")
	}
	return nil
}

func (s *courseService) DeleteCourse(dbc dbctx.Context, courseID, userID uuid.UUID, userRole string) error {
	var deleted *types.Course
	err := s.tx.InTx(dbc, func(txc dbctx.Context) error {
		c, err := s.AuthorizeCourseOwner(txc, courseID, userID, userRole)
		if err != nil {
			return err
		}
		n, err := s.enrollments.CountByCourseID(txc, c.ID)
		if err != nil {
			return fmt.Errorf("count enrollments: %w", err)
		}
		if n > 0 {
			return apierr.BadRequest("course_has_enrollments", "Cannot delete course with active enrollments. Archive it instead.")
		}
		if err := s.courses.FullDeleteByIDs(txc, []uuid.UUID{c.ID}); err != nil {
			return db.MapError("delete_course", err)
		}
		deleted = c
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("course deleted", "course_id", deleted.ID, "actor_id", userID)
	s.emit(dbc, CourseEventDeleted, deleted, userID)
	return nil
}

// PublishCourse recomputes the duration and lecture totals from the
// curriculum. total_duration is the sum of section durations, not of the
// materials.
func (s *courseService) PublishCourse(dbc dbctx.Context, courseID, userID uuid.UUID, userRole string) (*CourseView, error) {
	err := s.tx.InTx(dbc, func(txc dbctx.Context) error {
		c, err := s.AuthorizeCourseOwner(txc, courseID, userID, userRole)
		if err != nil {
			return err
		}
		n, err := s.sections.CountByCourseID(txc, c.ID)
		if err != nil {
			return fmt.Errorf("count sections: %w", err)
		}
		if n == 0 {
			return apierr.BadRequest("course_has_no_sections", "Course must have at least one section")
		}
		totals, err := s.sections.TotalsByCourseID(txc, c.ID)
		if err != nil {
			return fmt.Errorf("sum sections: %w", err)
		}
		if totals.Lectures == 0 {
			return apierr.BadRequest("course_has_no_materials", "Course must have at least one material")
		}

		now := s.now()
		err = s.courses.UpdateFields(txc, c.ID, map[string]interface{}{
			"status":         types.CourseStatusPublished,
			"published_at":   now,
			"total_duration": totals.Duration,
			"total_lectures": totals.Lectures,
		})
		if err != nil {
			return db.MapError("publish_course", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := s.loadView(dbc, courseID)
	if err != nil {
		return nil, err
	}
	s.log.Info("course published", "course_id", view.ID, "actor_id", userID, "total_lectures", view.TotalLectures)
	s.emitView(dbc, CourseEventPublished, view, userID)
	return view, nil
}

// ArchiveCourse archives from any status.
func (s *courseService) ArchiveCourse(dbc dbctx.Context, courseID, userID uuid.UUID, userRole string) (*CourseView, error) {
	err := s.tx.InTx(dbc, func(txc dbctx.Context) error {
		c, err := s.AuthorizeCourseOwner(txc, courseID, userID, userRole)
		if err != nil {
			return err
		}
		if err := s.courses.UpdateFields(txc, c.ID, map[string]interface{}{"status": types.CourseStatusArchived}); err != nil {
			return db.MapError("archive_course", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := s.loadView(dbc, courseID)
	if err != nil {
		return nil, err
	}
	s.log.Info("course archived", "course_id", view.ID, "actor_id", userID)
	s.emitView(dbc, CourseEventArchived, view, userID)
	return view, nil
}

func (s *courseService) GetCourseStatistics(dbc dbctx.Context, courseID uuid.UUID) (*CourseStatistics, error) {
	c, err := s.courses.GetByID(dbc, courseID)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if c == nil {
		return nil, errCourseNotFound()
	}

	var (
		byStatus map[string]int64
		revenue  float64
		paid     int64
	)
	steps := []func() error{
		func() (err error) {
			byStatus, err = s.enrollments.CountByStatus(dbc, c.ID)
			return err
		},
		func() (err error) {
			revenue, err = s.transactions.SumAmountByCourseIDAndStatus(dbc, c.ID, types.TransactionPaid)
			return err
		},
		func() (err error) {
			paid, err = s.transactions.CountByCourseIDAndStatus(dbc, c.ID, types.TransactionPaid)
			return err
		},
	}
	if err := runSteps(dbc, steps); err != nil {
		return nil, fmt.Errorf("course statistics: %w", err)
	}

	counts := EnrollmentCounts{ByStatus: map[string]int64{
		types.EnrollmentActive:    0,
		types.EnrollmentCompleted: 0,
		types.EnrollmentCancelled: 0,
	}}
	for status, n := range byStatus {
		counts.ByStatus[status] = n
		counts.Total += n
	}

	return &CourseStatistics{
		CourseID:      c.ID,
		Title:         c.Title,
		Status:        c.Status,
		TotalStudents: c.TotalStudents,
		TotalViews:    c.TotalViews,
		TotalReviews:  c.TotalReviews,
		AverageRating: c.AverageRating,
		TotalDuration: c.TotalDuration,
		TotalLectures: c.TotalLectures,
		Enrollments:   counts,
		Revenue:       RevenueSummary{Total: revenue, Transactions: paid},
	}, nil
}

// runSteps runs independent reads concurrently, or in order when they share
// a transaction.
func runSteps(dbc dbctx.Context, steps []func() error) error {
	if dbc.Tx != nil {
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
		return nil
	}
	var g errgroup.Group
	for _, step := range steps {
		g.Go(step)
	}
	return g.Wait()
}

func (s *courseService) AuthorizeCourseOwner(dbc dbctx.Context, courseID, userID uuid.UUID, userRole string) (*types.Course, error) {
	c, err := s.courses.GetByIDForUpdate(dbc, courseID)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	return s.requireOwner(dbc, c, userID, userRole)
}

func (s *courseService) CheckCourseOwner(dbc dbctx.Context, courseID, userID uuid.UUID, userRole string) (*types.Course, error) {
	c, err := s.courses.GetByID(dbc, courseID)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	return s.requireOwner(dbc, c, userID, userRole)
}

func (s *courseService) requireOwner(dbc dbctx.Context, c *types.Course, userID uuid.UUID, userRole string) (*types.Course, error) {
	if c == nil {
		return nil, errCourseNotFound()
	}
	if isAdminRole(userRole) {
		return c, nil
	}
	mentor, err := s.mentors.GetByUserID(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("load mentor profile: %w", err)
	}
	if mentor == nil || mentor.ID != c.MentorID {
		return nil, apierr.Forbidden("course_forbidden", "You don't have permission to modify this course")
	}
	return c, nil
}

func (s *courseService) checkCategory(dbc dbctx.Context, categoryID uuid.UUID) error {
	cat, err := s.categories.GetByID(dbc, categoryID)
	if err != nil {
		return fmt.Errorf("load category: %w", err)
	}
	if cat == nil {
		return apierr.BadRequest("invalid_category", "category does not exist")
	}
	return nil
}

func (s *courseService) checkReference(dbc dbctx.Context, ref fieldReference) error {
	switch ref.Table {
	case "category":
		return s.checkCategory(dbc, ref.ID)
	}
	return fmt.Errorf("no reference check for table %q", ref.Table)
}

// uniqueSlug derives a slug from title and, when it is taken by another
// course, appends the current unix-millisecond timestamp once. A second
// collision is left to the unique index.
func (s *courseService) uniqueSlug(dbc dbctx.Context, title string, excludeID uuid.UUID) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "course"
	}
	taken, err := s.courses.SlugExists(dbc, base, excludeID)
	if err != nil {
		return "", fmt.Errorf("check slug: %w", err)
	}
	if !taken {
		return base, nil
	}
	return slug.WithTimestamp(base, s.now()), nil
}

func (s *courseService) loadView(dbc dbctx.Context, courseID uuid.UUID) (*CourseView, error) {
	c, err := s.courses.GetDetailByID(dbc, courseID)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if c == nil {
		return nil, errCourseNotFound()
	}
	return formatCourse(c), nil
}

func (s *courseService) emit(dbc dbctx.Context, typ string, c *types.Course, actorID uuid.UUID) {
	s.publish(dbc, CourseEvent{Type: typ, CourseID: c.ID, Slug: c.Slug, Status: c.Status, ActorID: actorID, At: s.now()})
}

func (s *courseService) emitView(dbc dbctx.Context, typ string, v *CourseView, actorID uuid.UUID) {
	s.publish(dbc, CourseEvent{Type: typ, CourseID: v.ID, Slug: v.Slug, Status: v.Status, ActorID: actorID, At: s.now()})
}

// publish never fails the caller; the change is already committed.
func (s *courseService) publish(dbc dbctx.Context, evt CourseEvent) {
	if dbc.Tx != nil {
		// The caller's transaction has not committed yet.
		s.log.Debug("course event published inside caller transaction", "type", evt.Type, "course_id", evt.CourseID)
	}
	if err := s.events.Publish(dbc.Ctx, evt); err != nil {
		s.log.Warn("publish course event failed", "type", evt.Type, "course_id", evt.CourseID, "error", err)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

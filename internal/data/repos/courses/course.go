package courses

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/mentora-backend/internal/data/db"
	types "github.com/yungbote/mentora-backend/internal/domain"
	"github.com/yungbote/mentora-backend/internal/platform/dbctx"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
)

// CourseQuery is the storage-level filter for course listings. Nil pointer
// fields are not applied; an empty Statuses applies no status filter.
type CourseQuery struct {
	Search     string
	CategoryID *uuid.UUID
	Level      string
	MinPrice   *float64
	MaxPrice   *float64
	IsFree     *bool
	IsPremium  *bool
	Statuses   []string
	MentorID   *uuid.UUID
	SortBy     string
	SortOrder  string
	Offset     int
	Limit      int
}

var sortableColumns = map[string]string{
	"createdAt":      "created_at",
	"created_at":     "created_at",
	"updatedAt":      "updated_at",
	"updated_at":     "updated_at",
	"publishedAt":    "published_at",
	"published_at":   "published_at",
	"title":          "title",
	"price":          "price",
	"totalStudents":  "total_students",
	"total_students": "total_students",
	"averageRating":  "average_rating",
	"average_rating": "average_rating",
	"totalViews":     "total_views",
	"total_views":    "total_views",
}

// SortClause resolves a caller-supplied sort into a whitelisted ORDER BY.
func SortClause(sortBy, sortOrder string) string {
	col, ok := sortableColumns[strings.TrimSpace(sortBy)]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(strings.TrimSpace(sortOrder), "asc") {
		dir = "ASC"
	}
	return fmt.Sprintf("%s %s, id ASC", col, dir)
}

type CourseRepo interface {
	Create(dbc dbctx.Context, rows []*types.Course) ([]*types.Course, error)

	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Course, error)
	GetByIDForUpdate(dbc dbctx.Context, id uuid.UUID) (*types.Course, error)
	GetDetailByID(dbc dbctx.Context, id uuid.UUID) (*types.Course, error)
	GetDetailBySlug(dbc dbctx.Context, slug string) (*types.Course, error)
	SlugExists(dbc dbctx.Context, slug string, excludeID uuid.UUID) (bool, error)

	List(dbc dbctx.Context, q CourseQuery) ([]*types.Course, int64, error)
	ListFeatured(dbc dbctx.Context, limit int) ([]*types.Course, error)
	ListByMentorID(dbc dbctx.Context, mentorID uuid.UUID, statuses []string) ([]*types.Course, error)

	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	IncrementViews(dbc dbctx.Context, id uuid.UUID) error
	ReplaceTags(dbc dbctx.Context, courseID uuid.UUID, tags []string) error

	FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{db: db, log: baseLog.With("repo", "CourseRepo")}
}

func (r *courseRepo) Create(dbc dbctx.Context, rows []*types.Course) ([]*types.Course, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Course{}, nil
	}
	// Tags go through ReplaceTags so positions are assigned consistently.
	if err := t.WithContext(dbc.Ctx).Omit("Tags", "Sections", "Category", "Mentor").Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *courseRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Course, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.Course
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *courseRepo) GetByIDForUpdate(dbc dbctx.Context, id uuid.UUID) (*types.Course, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.Course
	if err := db.ForUpdate(t.WithContext(dbc.Ctx)).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *courseRepo) GetDetailByID(dbc dbctx.Context, id uuid.UUID) (*types.Course, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.getDetail(dbc, "id = ?", id)
}

func (r *courseRepo) GetDetailBySlug(dbc dbctx.Context, slug string) (*types.Course, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, nil
	}
	return r.getDetail(dbc, "slug = ?", slug)
}

func (r *courseRepo) getDetail(dbc dbctx.Context, where string, arg interface{}) (*types.Course, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Course
	err := previews(t.WithContext(dbc.Ctx)).
		Preload("Sections", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC, created_at ASC") }).
		Preload("Sections.Materials", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC, created_at ASC") }).
		Where(where, arg).
		Limit(1).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

// previews preloads the relations every formatted course carries.
func previews(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Category").
		Preload("Mentor").
		Preload("Mentor.User").
		Preload("Tags", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") })
}

func (r *courseRepo) SlugExists(dbc dbctx.Context, slug string, excludeID uuid.UUID) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(dbc.Ctx).Model(&types.Course{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func applyCourseQuery(tx *gorm.DB, q CourseQuery) *gorm.DB {
	if s := strings.TrimSpace(q.Search); s != "" {
		pattern := "%" + escapeLike(strings.ToLower(s)) + "%"
		tx = tx.Where(
			`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(short_description) LIKE ? ESCAPE '\' OR id IN (SELECT course_id FROM course_tag WHERE tag = ?))`,
			pattern, pattern, pattern, s,
		)
	}
	if q.CategoryID != nil && *q.CategoryID != uuid.Nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}
	if q.Level != "" {
		tx = tx.Where("level = ?", q.Level)
	}
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}
	if q.IsFree != nil {
		tx = tx.Where("is_free = ?", *q.IsFree)
	}
	if q.IsPremium != nil {
		tx = tx.Where("is_premium = ?", *q.IsPremium)
	}
	if len(q.Statuses) > 0 {
		tx = tx.Where("status IN ?", q.Statuses)
	}
	if q.MentorID != nil && *q.MentorID != uuid.Nil {
		tx = tx.Where("mentor_id = ?", *q.MentorID)
	}
	return tx
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// List returns one page plus the total match count. Outside a transaction
// the page and the count are fetched concurrently.
func (r *courseRepo) List(dbc dbctx.Context, q CourseQuery) ([]*types.Course, int64, error) {
	var (
		rows  []*types.Course
		total int64
	)
	page := func(t *gorm.DB) error {
		tx := applyCourseQuery(previews(t.WithContext(dbc.Ctx)).Model(&types.Course{}), q).
			Order(SortClause(q.SortBy, q.SortOrder))
		if q.Offset > 0 {
			tx = tx.Offset(q.Offset)
		}
		if q.Limit > 0 {
			tx = tx.Limit(q.Limit)
		}
		return tx.Find(&rows).Error
	}
	count := func(t *gorm.DB) error {
		return applyCourseQuery(t.WithContext(dbc.Ctx).Model(&types.Course{}), q).Count(&total).Error
	}

	if dbc.Tx != nil {
		if err := count(dbc.Tx); err != nil {
			return nil, 0, err
		}
		if err := page(dbc.Tx); err != nil {
			return nil, 0, err
		}
		return rows, total, nil
	}

	var g errgroup.Group
	g.Go(func() error { return count(r.db) })
	g.Go(func() error { return page(r.db) })
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *courseRepo) ListFeatured(dbc dbctx.Context, limit int) ([]*types.Course, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Course
	err := previews(t.WithContext(dbc.Ctx)).
		Where("status = ?", types.CourseStatusPublished).
		Order("total_students DESC, average_rating DESC, published_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *courseRepo) ListByMentorID(dbc dbctx.Context, mentorID uuid.UUID, statuses []string) ([]*types.Course, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Course
	if mentorID == uuid.Nil {
		return out, nil
	}
	q := previews(t.WithContext(dbc.Ctx)).Where("mentor_id = ?", mentorID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *courseRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.Course{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *courseRepo) IncrementViews(dbc dbctx.Context, id uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.Course{}).
		Where("id = ?", id).
		UpdateColumn("total_views", gorm.Expr("total_views + ?", 1)).Error
}

func (r *courseRepo) ReplaceTags(dbc dbctx.Context, courseID uuid.UUID, tags []string) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	t = t.WithContext(dbc.Ctx)
	if err := t.Where("course_id = ?", courseID).Delete(&types.CourseTag{}).Error; err != nil {
		return err
	}
	rows := make([]*types.CourseTag, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		rows = append(rows, &types.CourseTag{CourseID: courseID, Tag: tag, Position: len(rows)})
	}
	if len(rows) == 0 {
		return nil
	}
	return t.Create(&rows).Error
}

// FullDeleteByIDs hard-deletes courses with their tags, sections and
// materials.
func (r *courseRepo) FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	t = t.WithContext(dbc.Ctx)

	var sectionIDs []uuid.UUID
	if err := t.Model(&types.Section{}).Where("course_id IN ?", ids).Pluck("id", &sectionIDs).Error; err != nil {
		return err
	}
	if len(sectionIDs) > 0 {
		if err := t.Where("section_id IN ?", sectionIDs).Delete(&types.Material{}).Error; err != nil {
			return err
		}
		if err := t.Where("id IN ?", sectionIDs).Delete(&types.Section{}).Error; err != nil {
			return err
		}
	}
	if err := t.Where("course_id IN ?", ids).Delete(&types.CourseTag{}).Error; err != nil {
		return err
	}
	return t.Where("id IN ?", ids).Delete(&types.Course{}).Error
}

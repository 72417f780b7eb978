package courses

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/mentora-backend/internal/domain"
	"github.com/yungbote/mentora-backend/internal/platform/dbctx"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
)

// SectionTotals is the publish-time aggregate over a course's sections.
type SectionTotals struct {
	Duration int
	Lectures int
}

type SectionRepo interface {
	Create(dbc dbctx.Context, rows []*types.Section) ([]*types.Section, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Section, error)
	CountByCourseID(dbc dbctx.Context, courseID uuid.UUID) (int64, error)
	NextPosition(dbc dbctx.Context, courseID uuid.UUID) (int, error)
	AddDuration(dbc dbctx.Context, id uuid.UUID, delta int) error
	TotalsByCourseID(dbc dbctx.Context, courseID uuid.UUID) (SectionTotals, error)
}

type sectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSectionRepo(db *gorm.DB, baseLog *logger.Logger) SectionRepo {
	return &sectionRepo{db: db, log: baseLog.With("repo", "SectionRepo")}
}

func (r *sectionRepo) Create(dbc dbctx.Context, rows []*types.Section) ([]*types.Section, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Section{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Omit("Materials").Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *sectionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Section, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.Section
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *sectionRepo) CountByCourseID(dbc dbctx.Context, courseID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var n int64
	err := t.WithContext(dbc.Ctx).Model(&types.Section{}).Where("course_id = ?", courseID).Count(&n).Error
	return n, err
}

func (r *sectionRepo) NextPosition(dbc dbctx.Context, courseID uuid.UUID) (int, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var last int
	err := t.WithContext(dbc.Ctx).
		Model(&types.Section{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&last).Error
	if err != nil {
		return 0, err
	}
	return last + 1, nil
}

func (r *sectionRepo) AddDuration(dbc dbctx.Context, id uuid.UUID, delta int) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if delta == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.Section{}).
		Where("id = ?", id).
		UpdateColumn("duration", gorm.Expr("duration + ?", delta)).Error
}

// TotalsByCourseID sums section durations and counts the materials beneath
// them.
func (r *sectionRepo) TotalsByCourseID(dbc dbctx.Context, courseID uuid.UUID) (SectionTotals, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	t = t.WithContext(dbc.Ctx)

	var out SectionTotals
	var duration int64
	if err := t.Model(&types.Section{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(SUM(duration), 0)").
		Scan(&duration).Error; err != nil {
		return out, err
	}
	out.Duration = int(duration)

	var lectures int64
	if err := t.Model(&types.Material{}).
		Joins("JOIN section ON section.id = material.section_id").
		Where("section.course_id = ?", courseID).
		Count(&lectures).Error; err != nil {
		return out, err
	}
	out.Lectures = int(lectures)
	return out, nil
}

package courses

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/mentora-backend/internal/domain"
	"github.com/yungbote/mentora-backend/internal/platform/dbctx"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
)

type EnrollmentRepo interface {
	Create(dbc dbctx.Context, rows []*types.Enrollment) ([]*types.Enrollment, error)
	CountByCourseID(dbc dbctx.Context, courseID uuid.UUID) (int64, error)
	CountByCourseIDAndStatus(dbc dbctx.Context, courseID uuid.UUID, status string) (int64, error)
	CountByStatus(dbc dbctx.Context, courseID uuid.UUID) (map[string]int64, error)
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return &enrollmentRepo{db: db, log: baseLog.With("repo", "EnrollmentRepo")}
}

func (r *enrollmentRepo) Create(dbc dbctx.Context, rows []*types.Enrollment) ([]*types.Enrollment, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Enrollment{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *enrollmentRepo) CountByCourseID(dbc dbctx.Context, courseID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var n int64
	err := t.WithContext(dbc.Ctx).Model(&types.Enrollment{}).Where("course_id = ?", courseID).Count(&n).Error
	return n, err
}

func (r *enrollmentRepo) CountByCourseIDAndStatus(dbc dbctx.Context, courseID uuid.UUID, status string) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var n int64
	err := t.WithContext(dbc.Ctx).
		Model(&types.Enrollment{}).
		Where("course_id = ? AND status = ?", courseID, status).
		Count(&n).Error
	return n, err
}

// CountByStatus groups a course's enrollments by status. Statuses with no
// rows are absent from the map.
func (r *enrollmentRepo) CountByStatus(dbc dbctx.Context, courseID uuid.UUID) (map[string]int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var rows []struct {
		Status string
		Count  int64
	}
	err := t.WithContext(dbc.Ctx).
		Model(&types.Enrollment{}).
		Select("status, COUNT(*) AS count").
		Where("course_id = ?", courseID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

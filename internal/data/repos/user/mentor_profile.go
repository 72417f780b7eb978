package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/mentora-backend/internal/domain"
	"github.com/yungbote/mentora-backend/internal/platform/dbctx"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
)

type MentorProfileRepo interface {
	Create(dbc dbctx.Context, rows []*types.MentorProfile) ([]*types.MentorProfile, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.MentorProfile, error)
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.MentorProfile, error)
	UpdateStatus(dbc dbctx.Context, id uuid.UUID, status string, approvedAt *time.Time) error
}

type mentorProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMentorProfileRepo(db *gorm.DB, baseLog *logger.Logger) MentorProfileRepo {
	return &mentorProfileRepo{db: db, log: baseLog.With("repo", "MentorProfileRepo")}
}

func (r *mentorProfileRepo) Create(dbc dbctx.Context, rows []*types.MentorProfile) ([]*types.MentorProfile, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.MentorProfile{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Omit("User").Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *mentorProfileRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.MentorProfile, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc, "id = ?", id)
}

func (r *mentorProfileRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.MentorProfile, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc, "user_id = ?", userID)
}

func (r *mentorProfileRepo) first(dbc dbctx.Context, where string, arg interface{}) (*types.MentorProfile, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.MentorProfile
	if err := t.WithContext(dbc.Ctx).Preload("User").Where(where, arg).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *mentorProfileRepo) UpdateStatus(dbc dbctx.Context, id uuid.UUID, status string, approvedAt *time.Time) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.MentorProfile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"approved_at": approvedAt,
			"updated_at":  time.Now().UTC(),
		}).Error
}

package courses

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/mentora-backend/internal/domain"
	"github.com/yungbote/mentora-backend/internal/platform/dbctx"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
)

type MaterialRepo interface {
	Create(dbc dbctx.Context, rows []*types.Material) ([]*types.Material, error)
	ListBySectionID(dbc dbctx.Context, sectionID uuid.UUID) ([]*types.Material, error)
	NextPosition(dbc dbctx.Context, sectionID uuid.UUID) (int, error)
}

type materialRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMaterialRepo(db *gorm.DB, baseLog *logger.Logger) MaterialRepo {
	return &materialRepo{db: db, log: baseLog.With("repo", "MaterialRepo")}
}

func (r *materialRepo) Create(dbc dbctx.Context, rows []*types.Material) ([]*types.Material, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Material{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *materialRepo) ListBySectionID(dbc dbctx.Context, sectionID uuid.UUID) ([]*types.Material, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Material
	if sectionID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("section_id = ?", sectionID).
		Order("position ASC, created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *materialRepo) NextPosition(dbc dbctx.Context, sectionID uuid.UUID) (int, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var last int
	err := t.WithContext(dbc.Ctx).
		Model(&types.Material{}).
		Where("section_id = ?", sectionID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&last).Error
	if err != nil {
		return 0, err
	}
	return last + 1, nil
}

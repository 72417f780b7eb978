package courses

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/mentora-backend/internal/domain"
	"github.com/yungbote/mentora-backend/internal/platform/dbctx"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
)

type TransactionRepo interface {
	Create(dbc dbctx.Context, rows []*types.Transaction) ([]*types.Transaction, error)
	SumAmountByCourseIDAndStatus(dbc dbctx.Context, courseID uuid.UUID, status string) (float64, error)
	CountByCourseIDAndStatus(dbc dbctx.Context, courseID uuid.UUID, status string) (int64, error)
}

type transactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTransactionRepo(db *gorm.DB, baseLog *logger.Logger) TransactionRepo {
	return &transactionRepo{db: db, log: baseLog.With("repo", "TransactionRepo")}
}

func (r *transactionRepo) Create(dbc dbctx.Context, rows []*types.Transaction) ([]*types.Transaction, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Transaction{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SumAmountByCourseIDAndStatus returns 0 when no rows match.
func (r *transactionRepo) SumAmountByCourseIDAndStatus(dbc dbctx.Context, courseID uuid.UUID, status string) (float64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var sum float64
	err := t.WithContext(dbc.Ctx).
		Model(&types.Transaction{}).
		Where("course_id = ? AND status = ?", courseID, status).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	return sum, nil
}

func (r *transactionRepo) CountByCourseIDAndStatus(dbc dbctx.Context, courseID uuid.UUID, status string) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var n int64
	err := t.WithContext(dbc.Ctx).
		Model(&types.Transaction{}).
		Where("course_id = ? AND status = ?", courseID, status).
		Count(&n).Error
	return n, err
}

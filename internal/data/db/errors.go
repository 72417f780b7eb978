package db

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/mentora-backend/internal/platform/apierr"
)

// MapError turns storage failures into API errors. Errors that already are
// *apierr.Error pass through unchanged.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apierr.New(http.StatusNotFound, op+"_not_found", err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apierr.New(http.StatusConflict, op+"_conflict", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apierr.New(http.StatusBadRequest, op+"_invalid_reference", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apierr.New(http.StatusServiceUnavailable, op+"_cancelled", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return apierr.New(http.StatusConflict, op+"_conflict", err) // unique_violation
		case "23503":
			return apierr.New(http.StatusBadRequest, op+"_invalid_reference", err) // foreign_key_violation
		case "40001", "40P01", "55P03":
			return apierr.New(http.StatusServiceUnavailable, op+"_retry", err) // serialization/deadlock/lock_not_available
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "unique constraint failed"):
		return apierr.New(http.StatusConflict, op+"_conflict", err)
	case strings.Contains(msg, "foreign key constraint failed"):
		return apierr.New(http.StatusBadRequest, op+"_invalid_reference", err)
	}
	return apierr.New(http.StatusInternalServerError, op+"_failed", err)
}

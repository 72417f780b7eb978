package db

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/mentora-backend/internal/platform/apierr"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", gorm.ErrRecordNotFound, http.StatusNotFound, "course_not_found"},
		{"pg unique", &pgconn.PgError{Code: "23505"}, http.StatusConflict, "course_conflict"},
		{"pg fk", fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23503"}), http.StatusBadRequest, "course_invalid_reference"},
		{"pg deadlock", &pgconn.PgError{Code: "40P01"}, http.StatusServiceUnavailable, "course_retry"},
		{"sqlite unique", errors.New("UNIQUE constraint failed: course.slug"), http.StatusConflict, "course_conflict"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "course_failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MapError("course", tc.err)
			var ae *apierr.Error
			if !errors.As(got, &ae) {
				t.Fatalf("MapError: expected *apierr.Error, got %T", got)
			}
			if ae.Status != tc.status || ae.Code != tc.code {
				t.Fatalf("MapError: want=%d/%s got=%d/%s", tc.status, tc.code, ae.Status, ae.Code)
			}
			if !errors.Is(got, tc.err) {
				t.Fatalf("MapError: cause must stay reachable through errors.Is")
			}
		})
	}
}

func TestMapErrorPassesAPIErrorsThrough(t *testing.T) {
	in := apierr.Forbidden("forbidden", "nope")
	if got := MapError("course", in); got != error(in) {
		t.Fatalf("MapError: expected passthrough, got %v", got)
	}
	if MapError("course", nil) != nil {
		t.Fatalf("MapError(nil): expected nil")
	}
}

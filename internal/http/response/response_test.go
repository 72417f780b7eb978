package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/mentora-backend/internal/platform/apierr"
)

func TestRespondAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"api error", apierr.Forbidden("course_forbidden", "nope"), http.StatusForbidden, "course_forbidden", "nope"},
		{"wrapped", errors.Join(errors.New("ctx"), apierr.NotFound("course_not_found", "Course not found")), http.StatusNotFound, "course_not_found", "Course not found"},
		{"plain", errors.New("db exploded"), http.StatusInternalServerError, "fallback", "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondAPIError(c, tc.err, "fallback")

			if rec.Code != tc.wantStatus {
				t.Fatalf("status: want=%d got=%d", tc.wantStatus, rec.Code)
			}
			var body ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error.Code != tc.wantCode || body.Error.Message != tc.wantMsg {
				t.Fatalf("body: want=%s/%s got=%s/%s", tc.wantCode, tc.wantMsg, body.Error.Code, body.Error.Message)
			}
		})
	}
}

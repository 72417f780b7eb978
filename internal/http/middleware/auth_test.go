package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/mentora-backend/internal/data/repos/testutil"
	"github.com/yungbote/mentora-backend/internal/platform/ctxutil"
)

type stubAuthService struct {
	userID uuid.UUID
	role   string
}

func (s stubAuthService) SetContextFromToken(ctx context.Context, token string) (context.Context, error) {
	switch token {
	case "good":
		return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{TokenString: token, UserID: s.userID, Role: s.role}), nil
	case "nil-user":
		return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{TokenString: token}), nil
	}
	return ctx, errors.New("invalid or expired token")
}

func authRouter(t *testing.T, optional bool) (*gin.Engine, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	uid := uuid.New()
	am := NewAuthMiddleware(testutil.Logger(t), stubAuthService{userID: uid, role: "MENTOR"})

	r := gin.New()
	if optional {
		r.Use(am.OptionalAuth())
	} else {
		r.Use(am.RequireAuth())
	}
	r.GET("/whoami", func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil {
			c.JSON(http.StatusOK, gin.H{"user": ""})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": rd.UserID.String(), "role": rd.Role})
	})
	return r, uid
}

func doGet(r http.Handler, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, rec.Body.String())
	}
	return body.Error.Code
}

func TestRequireAuth(t *testing.T) {
	r, uid := authRouter(t, false)

	rec := doGet(r, "/whoami", "")
	if rec.Code != http.StatusUnauthorized || errorCode(t, rec) != "unauthorized" {
		t.Fatalf("missing token: want=401/unauthorized got=%d %s", rec.Code, rec.Body.String())
	}

	rec = doGet(r, "/whoami", "bad")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: want=401 got=%d", rec.Code)
	}

	rec = doGet(r, "/whoami", "nil-user")
	if rec.Code != http.StatusForbidden || errorCode(t, rec) != "forbidden" {
		t.Fatalf("nil user: want=403 got=%d", rec.Code)
	}

	rec = doGet(r, "/whoami", "good")
	if rec.Code != http.StatusOK {
		t.Fatalf("good token: want=200 got=%d", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["user"] != uid.String() || body["role"] != "MENTOR" {
		t.Fatalf("good token: unexpected body %v", body)
	}

	rec = doGet(r, "/whoami?token=good", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("query token: want=200 got=%d", rec.Code)
	}
}

func TestOptionalAuth(t *testing.T) {
	r, uid := authRouter(t, true)

	rec := doGet(r, "/whoami", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous: want=200 got=%d", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["user"] != "" {
		t.Fatalf("anonymous: want no user got=%q", body["user"])
	}

	rec = doGet(r, "/whoami", "good")
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if rec.Code != http.StatusOK || body["user"] != uid.String() {
		t.Fatalf("good token: want=200/%s got=%d/%q", uid, rec.Code, body["user"])
	}

	rec = doGet(r, "/whoami", "bad")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: want=401 got=%d", rec.Code)
	}
}

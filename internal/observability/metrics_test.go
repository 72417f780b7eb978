package observability

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yungbote/mentora-backend/internal/data/repos/testutil"
	types "github.com/yungbote/mentora-backend/internal/domain"
)

func TestNewMetricsDisabledIsNilSafe(t *testing.T) {
	m := NewMetrics(MetricsConfig{})
	if m != nil {
		t.Fatalf("NewMetrics: want nil when disabled")
	}
	m.ObserveAPI("GET", "/x", "200", time.Millisecond)
	m.IncCourseEvent("course.created")
	if got := m.CourseEventCount("course.created"); got != 0 {
		t.Fatalf("CourseEventCount: want=0 got=%v", got)
	}
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 503 {
		t.Fatalf("Handler: want=503 got=%d", rec.Code)
	}
}

func TestObserveAPI(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.ObserveAPI("GET", "/api/courses", "200", 10*time.Millisecond)
	m.ObserveAPI("POST", "/api/courses", "500", 2*time.Second)
	m.ObserveAPI("", "", "", time.Millisecond)

	if got := promtest.ToFloat64(m.apiRequests.WithLabelValues("GET", "/api/courses", "200")); got != 1 {
		t.Fatalf("requests GET: want=1 got=%v", got)
	}
	if got := promtest.ToFloat64(m.apiRequests.WithLabelValues("UNKNOWN", "unknown", "0")); got != 1 {
		t.Fatalf("requests defaulted labels: want=1 got=%v", got)
	}
	if got := promtest.ToFloat64(m.apiReqGood); got != 2 {
		t.Fatalf("good latency: want=2 got=%v", got)
	}
	if got := promtest.CollectAndCount(m.apiLatency); got != 3 {
		t.Fatalf("latency series: want=3 got=%d", got)
	}

	m.ApiInflightInc()
	m.ApiInflightInc()
	m.ApiInflightDec()
	if got := promtest.ToFloat64(m.apiInflight); got != 1 {
		t.Fatalf("inflight: want=1 got=%v", got)
	}
}

func TestCourseEventCounters(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.IncCourseEvent("course.published")
	m.IncCourseEvent(" course.published ")
	m.IncCourseEventFailure("course.published")

	if got := m.CourseEventCount("course.published"); got != 2 {
		t.Fatalf("CourseEventCount: want=2 got=%v", got)
	}
	if got := promtest.ToFloat64(m.eventFailures.WithLabelValues("course.published")); got != 1 {
		t.Fatalf("failures: want=1 got=%v", got)
	}
}

func TestMetricsHandlerServesRegistry(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.ObserveAPI("GET", "/api/courses", "200", 10*time.Millisecond)
	m.IncCourseEvent("course.created")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 200 {
		t.Fatalf("Handler: want=200 got=%d", rec.Code)
	}
	out := rec.Body.String()
	for _, want := range []string{
		`mentora_api_requests_total{method="GET",route="/api/courses",status="200"} 1`,
		`mentora_course_events_total{type="course.created"} 1`,
		`mentora_api_request_duration_seconds_bucket{method="GET",route="/api/courses",status="200",le="+Inf"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("exposition missing %q\n%s", want, out)
		}
	}
}

func TestPostgresCollectorRegistersOnce(t *testing.T) {
	db := testutil.DB(t)
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.StartPostgresCollector(context.Background(), nil, db)
	m.StartPostgresCollector(context.Background(), nil, db)

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "go_sql_open_connections" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Gather: want go_sql_open_connections family")
	}
}

func TestCollectCourseStatuses(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	u := testutil.SeedUser(t, ctx, tx, "m@example.com", types.RoleMentor)
	mp := testutil.SeedMentor(t, ctx, tx, u.ID, "")
	cat := testutil.SeedCategory(t, ctx, tx, "go")
	testutil.SeedCourse(t, ctx, tx, testutil.CourseSeed{MentorID: mp.ID, CategoryID: cat.ID, Title: "A", Status: types.CourseStatusPublished})
	testutil.SeedCourse(t, ctx, tx, testutil.CourseSeed{MentorID: mp.ID, CategoryID: cat.ID, Title: "B", Status: types.CourseStatusPublished})
	testutil.SeedCourse(t, ctx, tx, testutil.CourseSeed{MentorID: mp.ID, CategoryID: cat.ID, Title: "C"})

	m := NewMetrics(MetricsConfig{Enabled: true})
	if err := m.CollectCourseStatuses(ctx, tx); err != nil {
		t.Fatalf("CollectCourseStatuses: %v", err)
	}
	if got := m.CourseStatusCount(types.CourseStatusPublished); got != 2 {
		t.Fatalf("published: want=2 got=%v", got)
	}
	if got := m.CourseStatusCount(types.CourseStatusDraft); got != 1 {
		t.Fatalf("draft: want=1 got=%v", got)
	}
	if got := m.CourseStatusCount(types.CourseStatusArchived); got != 0 {
		t.Fatalf("archived: want=0 got=%v", got)
	}
}

func TestParseHeaders(t *testing.T) {
	h := ParseHeaders(" a=1, b = 2 ,bad, =x")
	if len(h) != 2 || h["a"] != "1" || h["b"] != "2" {
		t.Fatalf("ParseHeaders: unexpected %v", h)
	}
	if ParseHeaders("") != nil {
		t.Fatalf("ParseHeaders: want nil for empty")
	}
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/mentora-backend/internal/observability"
)

func TestWithEventMetricsCountsEventsAndFailures(t *testing.T) {
	inner := &recordingBus{}
	if got := WithEventMetrics(inner, nil); got != CourseEventBus(inner) {
		t.Fatalf("WithEventMetrics(nil): want inner bus unchanged")
	}

	m := observability.NewMetrics(observability.MetricsConfig{Enabled: true})
	bus := WithEventMetrics(inner, m)
	ctx := context.Background()

	if err := bus.Publish(ctx, CourseEvent{Type: CourseEventCreated}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	inner.err = errors.New("down")
	if err := bus.Publish(ctx, CourseEvent{Type: CourseEventCreated}); err == nil {
		t.Fatalf("Publish: expected inner error to surface")
	}
	if got := m.CourseEventCount(CourseEventCreated); got != 2 {
		t.Fatalf("CourseEventCount: want=2 got=%v", got)
	}
	if got := len(inner.eventTypes()); got != 2 {
		t.Fatalf("inner events: want=2 got=%d", got)
	}
}

func TestNoopCourseEventBus(t *testing.T) {
	bus := NewNoopCourseEventBus()
	if err := bus.Publish(context.Background(), CourseEvent{Type: CourseEventDeleted}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

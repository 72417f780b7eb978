package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/yungbote/mentora-backend/internal/observability"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
)

const (
	CourseEventCreated   = "course.created"
	CourseEventUpdated   = "course.updated"
	CourseEventPublished = "course.published"
	CourseEventArchived  = "course.archived"
	CourseEventDeleted   = "course.deleted"
)

type CourseEvent struct {
	Type     string    `json:"type"`
	CourseID uuid.UUID `json:"courseId"`
	Slug     string    `json:"slug"`
	Status   string    `json:"status"`
	ActorID  uuid.UUID `json:"actorId"`
	At       time.Time `json:"at"`
}

// CourseEventBus announces committed course lifecycle changes.
type CourseEventBus interface {
	Publish(ctx context.Context, evt CourseEvent) error
	Close() error
}

type redisCourseEventBus struct {
	log     *logger.Logger
	rdb     *redis.Client
	channel string
}

// NewRedisCourseEventBus publishes on channel through an already connected
// client. The bus owns the client and closes it.
func NewRedisCourseEventBus(log *logger.Logger, rdb *redis.Client, channel string) (CourseEventBus, error) {
	if rdb == nil {
		return nil, fmt.Errorf("missing redis client")
	}
	channel = strings.TrimSpace(channel)
	if channel == "" {
		channel = "course-events"
	}
	return &redisCourseEventBus{
		log:     log.With("service", "RedisCourseEventBus"),
		rdb:     rdb,
		channel: channel,
	}, nil
}

func (b *redisCourseEventBus) Publish(ctx context.Context, evt CourseEvent) error {
	raw, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *redisCourseEventBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}

type noopCourseEventBus struct{}

func NewNoopCourseEventBus() CourseEventBus { return noopCourseEventBus{} }

func (noopCourseEventBus) Publish(context.Context, CourseEvent) error { return nil }
func (noopCourseEventBus) Close() error                               { return nil }

type meteredCourseEventBus struct {
	inner   CourseEventBus
	metrics *observability.Metrics
}

// WithEventMetrics counts every event handed to the bus, and every publish
// failure, on m. A nil m returns inner unchanged.
func WithEventMetrics(inner CourseEventBus, m *observability.Metrics) CourseEventBus {
	if m == nil {
		return inner
	}
	return &meteredCourseEventBus{inner: inner, metrics: m}
}

func (b *meteredCourseEventBus) Publish(ctx context.Context, evt CourseEvent) error {
	b.metrics.IncCourseEvent(evt.Type)
	if err := b.inner.Publish(ctx, evt); err != nil {
		b.metrics.IncCourseEventFailure(evt.Type)
		return err
	}
	return nil
}

func (b *meteredCourseEventBus) Close() error { return b.inner.Close() }

package observability

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	types "github.com/yungbote/mentora-backend/internal/domain"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
)

const namespace = "mentora"

type MetricsConfig struct {
	Enabled bool
	// ScrapeInterval drives the background collectors.
	ScrapeInterval time.Duration
	// LatencyThreshold marks a request as "good" for the latency SLI.
	LatencyThreshold time.Duration
}

// Metrics records into its own registry, never the global default one.
type Metrics struct {
	reg *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge
	apiReqGood  prometheus.Counter

	courseEvents   *prometheus.CounterVec
	eventFailures  *prometheus.CounterVec
	courseByStatus *prometheus.GaugeVec

	redisUp   prometheus.Gauge
	redisPing prometheus.Gauge

	interval         time.Duration
	latencyThreshold float64
}

// NewMetrics returns nil when metrics are disabled. Every method is safe on a
// nil receiver.
func NewMetrics(cfg MetricsConfig) *Metrics {
	if !cfg.Enabled {
		return nil
	}
	interval := cfg.ScrapeInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	threshold := cfg.LatencyThreshold
	if threshold <= 0 {
		threshold = 500 * time.Millisecond
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		reg: reg,
		apiRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total API requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		apiLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "API request latency in seconds by method, route and status.",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2, 5, 10},
		}, []string{"method", "route", "status"}),
		apiInflight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "inflight_requests",
			Help:      "API requests currently being served.",
		}),
		apiReqGood: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_good_latency_total",
			Help:      "API requests served under the latency threshold.",
		}),

		courseEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "course",
			Name:      "events_total",
			Help:      "Committed course lifecycle changes by event type.",
		}, []string{"type"}),
		eventFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "course",
			Name:      "event_publish_failures_total",
			Help:      "Course events that failed to publish.",
		}, []string{"type"}),
		courseByStatus: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "courses",
			Help:      "Courses by status.",
		}, []string{"status"}),

		redisUp: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "up",
			Help:      "Redis reachability (1 = up).",
		}),
		redisPing: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "ping_seconds",
			Help:      "Redis ping latency in seconds.",
		}),

		interval:         interval,
		latencyThreshold: threshold.Seconds(),
	}
}

// Registry exposes the private registry for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route, status).Observe(dur.Seconds())
	if dur.Seconds() <= m.latencyThreshold {
		m.apiReqGood.Inc()
	}
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) IncCourseEvent(eventType string) {
	if m == nil {
		return
	}
	m.courseEvents.WithLabelValues(strings.TrimSpace(eventType)).Inc()
}

func (m *Metrics) IncCourseEventFailure(eventType string) {
	if m == nil {
		return
	}
	m.eventFailures.WithLabelValues(strings.TrimSpace(eventType)).Inc()
}

func (m *Metrics) CourseEventCount(eventType string) float64 {
	if m == nil {
		return 0
	}
	return metricValue(m.courseEvents.WithLabelValues(eventType))
}

func (m *Metrics) CourseStatusCount(status string) float64 {
	if m == nil {
		return 0
	}
	return metricValue(m.courseByStatus.WithLabelValues(status))
}

// Handler serves the private registry. A disabled Metrics answers 503.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// StartPostgresCollector registers database/sql pool stats for db. The
// collector is read on scrape, so nothing runs in the background.
func (m *Metrics) StartPostgresCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		if log != nil {
			log.Warn("metrics: postgres stats unavailable", "error", err)
		}
		return
	}
	err = m.reg.Register(collectors.NewDBStatsCollector(sqlDB, namespace))
	var already prometheus.AlreadyRegisteredError
	if err != nil && !errors.As(err, &already) && log != nil {
		log.Warn("metrics: register postgres collector failed", "error", err)
	}
}

func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb *redis.Client) {
	if m == nil || rdb == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}

func (m *Metrics) StartCourseStatusCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := m.CollectCourseStatuses(ctx, db); err != nil && log != nil {
					log.Warn("metrics: course status query failed", "error", err)
				}
			}
		}
	}()
}

// CollectCourseStatuses refreshes the per-status course gauge once.
func (m *Metrics) CollectCourseStatuses(ctx context.Context, db *gorm.DB) error {
	if m == nil || db == nil {
		return nil
	}
	var rows []struct {
		Status string
		Count  int64
	}
	if err := db.WithContext(ctx).
		Model(&types.Course{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return err
	}
	for _, s := range []string{
		types.CourseStatusDraft,
		types.CourseStatusPendingReview,
		types.CourseStatusPublished,
		types.CourseStatusArchived,
	} {
		m.courseByStatus.WithLabelValues(s).Set(0)
	}
	for _, row := range rows {
		status := strings.TrimSpace(row.Status)
		if status == "" {
			status = "unknown"
		}
		m.courseByStatus.WithLabelValues(status).Set(float64(row.Count))
	}
	return nil
}

func metricValue(c prometheus.Metric) float64 {
	var pb dto.Metric
	if err := c.Write(&pb); err != nil {
		return 0
	}
	switch {
	case pb.Counter != nil:
		return pb.Counter.GetValue()
	case pb.Gauge != nil:
		return pb.Gauge.GetValue()
	}
	return 0
}

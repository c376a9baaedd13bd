package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

const namespace = "muzz_match"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	swipesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swipes_total",
			Help:      "Total number of recorded swipes.",
		},
		[]string{"decision"},
	)

	matchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_total",
			Help:      "Total number of matches created.",
		},
	)

	messagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Total number of persisted chat messages.",
		},
		[]string{"kind"},
	)

	realtimeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "realtime",
			Name:      "sessions",
			Help:      "Current number of joined websocket sessions.",
		},
	)

	realtimeEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "realtime",
			Name:      "events_total",
			Help:      "Realtime events by type and direction.",
		},
		[]string{"type", "direction"},
	)

	realtimeDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "realtime",
			Name:      "dropped_events_total",
			Help:      "Outbound events dropped because a session queue was full.",
		},
	)

	grpcRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "requests_total",
			Help:      "Total number of gRPC requests handled.",
		},
		[]string{"method", "code"},
	)

	grpcDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "request_duration_seconds",
			Help:      "Duration of gRPC requests.",
			Buckets:   prometheus.ExponentialBuckets(0.002, 2, 12), // 2ms to ~4s
		},
		[]string{"method"},
	)
)

func init() {
	Registry.MustRegister(
		swipesTotal,
		matchesTotal,
		messagesTotal,
		realtimeSessions,
		realtimeEvents,
		realtimeDropped,
		grpcRequests,
		grpcDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordSwipe(decision string) { swipesTotal.WithLabelValues(decision).Inc() }

func RecordMatch() { matchesTotal.Inc() }

func RecordMessage(kind string) { messagesTotal.WithLabelValues(kind).Inc() }

func SessionJoined() { realtimeSessions.Inc() }

func SessionLeft() { realtimeSessions.Dec() }

// RecordEvent counts a realtime event; direction is "in" or "out".
func RecordEvent(eventType, direction string) {
	realtimeEvents.WithLabelValues(eventType, direction).Inc()
}

func RecordDropped() { realtimeDropped.Inc() }

// UnaryServerInterceptor records count and latency of every unary call.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		grpcDuration.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())
		grpcRequests.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
		return resp, err
	}
}

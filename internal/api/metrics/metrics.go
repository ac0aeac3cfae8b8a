// Package metrics defines and registers all custom Prometheus metrics for the
// e-banking console. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed on /metrics by the console router.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/99minutos/ebanking-console/internal/core/domain"
)

const namespace = "ebanking_console"

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts round trips to the banking backend.
// Labels:
//   - code: HTTP status code returned by the backend
//   - method: HTTP method
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests sent to the banking backend.",
	},
	[]string{"code", "method"},
)

// BackendRequestDuration measures backend round-trip latency.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests sent to the banking backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"code", "method"},
)

// BackendFailuresTotal counts classified backend failures.
// Label:
//   - kind: "transport", "validation", "authorization", "not_found", "conflict", "server" or "decode"
var BackendFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_failures_total",
		Help:      "Total number of failed backend calls, by failure kind.",
	},
	[]string{"kind"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionTransitionsTotal counts session state changes.
// Label:
//   - transition: "restore", "login" or "logout"
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session transitions, by kind.",
	},
	[]string{"transition"},
)

// GuardDenialsTotal counts navigations refused by a role guard.
// Label:
//   - redirect: target the user was sent to
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of navigations denied by a route guard.",
	},
	[]string{"redirect"},
)

// ── Screen metrics ────────────────────────────────────────────────────────────

// NotificationPollsTotal counts notification polling ticks.
// Label:
//   - result: "ok" or "error"
var NotificationPollsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_polls_total",
		Help:      "Total number of notification refreshes triggered by the poller.",
	},
	[]string{"result"},
)

// ScreensActive tracks how many screens are currently mounted.
var ScreensActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "screens_active",
		Help:      "Number of view controllers currently mounted.",
	},
)

// InstrumentRoundTripper wraps next so every backend round trip is counted
// and timed. A nil next instruments http.DefaultTransport.
func InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(BackendRequestsTotal,
		promhttp.InstrumentRoundTripperDuration(BackendRequestDuration, next))
}

// ObserveFailure records a classified backend failure.
func ObserveFailure(f *domain.Failure) {
	if f == nil {
		return
	}
	BackendFailuresTotal.WithLabelValues(f.Kind.String()).Inc()
}

// ObservePoll records the outcome of one notification poll.
func ObservePoll(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	NotificationPollsTotal.WithLabelValues(result).Inc()
}

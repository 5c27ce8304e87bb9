// Package metrics defines the custom Prometheus metrics of the assessment API.
// HTTP request metrics come from echoprometheus; this package only holds
// domain-level counters and histograms.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "assessment"

// ── Account metrics ───────────────────────────────────────────────────────────

// SignupsTotal counts signup attempts.
// Label:
//   - outcome: "success", "conflict", "invalid" or "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by outcome.",
	},
	[]string{"outcome"},
)

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ── Profile metrics ───────────────────────────────────────────────────────────

// ProfileSubmissionsTotal counts questionnaire submissions.
// Label:
//   - outcome: "success", "invalid" or "error"
var ProfileSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_submissions_total",
		Help:      "Total number of questionnaire submissions, by outcome.",
	},
	[]string{"outcome"},
)

// ── Advice metrics ────────────────────────────────────────────────────────────

// AdviceRequestsTotal counts advice generations.
// Labels:
//   - kind: "investment" or "goal"
//   - outcome: "success", "quota_exceeded", "upstream_error", "schema_violation", ...
var AdviceRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "advice_requests_total",
		Help:      "Total number of advice requests, by kind and outcome.",
	},
	[]string{"kind", "outcome"},
)

// AdviceDuration measures advice generation latency, dominated by the model call.
// Label:
//   - kind: "investment" or "goal"
var AdviceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "advice_duration_seconds",
		Help:      "Duration of advice generation including the model round trip.",
		Buckets:   []float64{.25, .5, 1, 2, 4, 8, 16, 32},
	},
	[]string{"kind"},
)

// AdviceQuotaRejectionsTotal counts requests refused by the per-user quota.
var AdviceQuotaRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "advice_quota_rejections_total",
		Help:      "Total number of advice requests rejected by the per-user quota.",
	},
	[]string{"kind"},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreAvailable is 1 while the document store answers pings, 0 otherwise.
var StoreAvailable = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "store_available",
		Help:      "Whether the document store is reachable (1) or not (0).",
	},
)

// SetStoreAvailable is suitable as a supervisor change callback.
func SetStoreAvailable(available bool) {
	if available {
		StoreAvailable.Set(1)
		return
	}
	StoreAvailable.Set(0)
}

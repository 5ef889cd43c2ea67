// Package metrics defines and registers all custom Prometheus metrics for the
// Guda backend. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "guda"

// ── Authentication metrics ────────────────────────────────────────────────────

// AuthAttemptsTotal counts wallet authentication attempts.
// Labels:
//   - kind: "admin" or "user"
//   - outcome: "ok", "missing_credentials", "signature_mismatch", "not_found", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of wallet signature authentication attempts, by principal kind and outcome.",
	},
	[]string{"kind", "outcome"},
)

// AuthDuration measures signature recovery plus principal lookup.
// Label:
//   - kind: "admin" or "user"
var AuthDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "auth_duration_seconds",
		Help:      "Duration of wallet authentication from credential check to principal lookup.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts newly created principals.
// Label:
//   - kind: "admin" or "user"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of admins and users created.",
	},
	[]string{"kind"},
)

// UploadsTotal counts stored files.
// Label:
//   - category: "profile_pic" or "document"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of files written to upload storage.",
	},
	[]string{"category"},
)

// ── Transaction metrics ───────────────────────────────────────────────────────

// TransactionsRecordedTotal counts transaction log writes.
// Labels:
//   - operation: "save", "replay" (idempotent hit) or "status_update"
//   - status: the resulting transaction status
var TransactionsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_recorded_total",
		Help:      "Total number of transaction log writes, by operation and resulting status.",
	},
	[]string{"operation", "status"},
)

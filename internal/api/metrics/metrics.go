// Package metrics defines and registers all custom Prometheus metrics for the
// proposals API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "proposals"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
// Label:
//   - identifier: which identifiers were supplied ("email", "phone", "both")
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts registered, by identifier kind.",
	},
	[]string{"identifier"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensRevokedTotal counts refresh tokens added to the revocation set.
// Label:
//   - reason: "logout" or "refresh"
var TokensRevokedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of refresh tokens revoked, by reason.",
	},
	[]string{"reason"},
)

// ── Record metrics ────────────────────────────────────────────────────────────

// RecordsMutatedTotal counts successful writes to owned records.
// Labels:
//   - resource: "client" or "proposal"
//   - action: "create", "update" or "delete"
var RecordsMutatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_mutated_total",
		Help:      "Total number of client and proposal writes, by resource and action.",
	},
	[]string{"resource", "action"},
)

// IdentifierKind labels a registration by the identifiers it supplied.
func IdentifierKind(email, phone string) string {
	switch {
	case email != "" && phone != "":
		return "both"
	case phone != "":
		return "phone"
	default:
		return "email"
	}
}

// Package metrics defines and registers all custom Prometheus metrics for the
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fluxt"

// LoginsTotal counts authentication attempts that presented credentials.
// Labels:
//   - kind: "super_admin" or "user"
//   - outcome: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of credential logins, by principal kind and outcome.",
	},
	[]string{"kind", "outcome"},
)

// SessionResumesTotal counts requests authenticated by an existing session
// marker, with no credential check.
var SessionResumesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resumes_total",
		Help:      "Total number of requests authenticated from a session marker.",
	},
)

// UploadsTotal counts file uploads.
// Label:
//   - outcome: "stored" or "rejected"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of file uploads, by outcome.",
	},
	[]string{"outcome"},
)

// EmailsTotal counts transactional email deliveries.
// Labels:
//   - template: "user_created" or "password_reset"
//   - outcome: "sent" or "error"
var EmailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_total",
		Help:      "Total number of transactional emails, by template and outcome.",
	},
	[]string{"template", "outcome"},
)

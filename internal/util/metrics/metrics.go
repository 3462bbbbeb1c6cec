package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "taskboard",
		Subsystem: "auth",
		Name:      "tokens_issued_total",
		Help:      "Access/refresh token pairs issued on sign in.",
	})

	RefreshTokensRotated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "taskboard",
		Subsystem: "auth",
		Name:      "refresh_tokens_rotated_total",
		Help:      "Successful refresh token rotations.",
	})

	InvalidTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskboard",
		Subsystem: "auth",
		Name:      "invalid_tokens_total",
		Help:      "Rejected access or refresh tokens by reason.",
	}, []string{"reason"})

	ForbiddenOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskboard",
		Subsystem: "authz",
		Name:      "forbidden_operations_total",
		Help:      "Mutations denied by role rules, by resource.",
	}, []string{"resource"})

	ExpiredRefreshTokensRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "taskboard",
		Subsystem: "auth",
		Name:      "expired_refresh_tokens_removed_total",
		Help:      "Expired refresh tokens deleted by the cleanup worker.",
	})
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskboard",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Served API requests by route template, method and status.",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "taskboard",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "API request latency by route template.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
)

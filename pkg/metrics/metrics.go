package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ContentReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ketaqwaan", Name: "content_reads_total", Help: "Public content reads by type and outcome."},
		[]string{"type", "outcome"},
	)
	ContentWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ketaqwaan", Name: "content_writes_total", Help: "Content mutations by type and operation."},
		[]string{"type", "op"},
	)
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ketaqwaan", Name: "login_attempts_total", Help: "Login attempts by outcome."},
		[]string{"outcome"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ketaqwaan", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ketaqwaan", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(ContentReads)
	reg.MustRegister(ContentWrites)
	reg.MustRegister(LoginAttempts)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}

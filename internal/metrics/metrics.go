// Package metrics holds the Prometheus collectors the server exports.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pennyworth"

// Metrics groups the RPC and domain collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	rpcRequests      *prometheus.CounterVec
	rpcDuration      *prometheus.HistogramVec
	w2Extractions    *prometheus.CounterVec
	chatFragments    prometheus.Counter
	historyMutations *prometheus.CounterVec
	loginAttempts    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls handled, by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		w2Extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "w2_extractions_total",
			Help:      "W-2 extractions, by outcome.",
		}, []string{"status"}),
		chatFragments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_fragments_total",
			Help:      "Reply fragments streamed to chat clients.",
		}),
		historyMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_mutations_total",
			Help:      "Changes to the history table, by operation and result.",
		}, []string{"op", "result"}),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts, by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(
		m.rpcRequests,
		m.rpcDuration,
		m.w2Extractions,
		m.chatFragments,
		m.historyMutations,
		m.loginAttempts,
	)
	return m
}

// ObserveRPC records one finished call.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(seconds)
}

// W2Extraction counts an extraction outcome (success, partial, failure).
func (m *Metrics) W2Extraction(status string) {
	if m == nil {
		return
	}
	m.w2Extractions.WithLabelValues(status).Inc()
}

// ChatFragment counts one streamed reply fragment.
func (m *Metrics) ChatFragment() {
	if m == nil {
		return
	}
	m.chatFragments.Inc()
}

// HistoryMutation counts an add or remove on the history table.
func (m *Metrics) HistoryMutation(op string, err error) {
	if m == nil {
		return
	}
	m.historyMutations.WithLabelValues(op, result(err)).Inc()
}

// Login counts a login attempt.
func (m *Metrics) Login(err error) {
	if m == nil {
		return
	}
	m.loginAttempts.WithLabelValues(result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

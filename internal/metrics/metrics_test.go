package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRPC("/pennyworth.v1.TaxService/Estimate", "ok", 0.01)
	m.ObserveRPC("/pennyworth.v1.TaxService/Estimate", "ok", 0.02)
	m.ObserveRPC("/pennyworth.v1.TaxService/Estimate", "invalid_argument", 0.01)
	m.W2Extraction("partial")
	m.ChatFragment()
	m.ChatFragment()
	m.HistoryMutation("add", nil)
	m.HistoryMutation("remove", errors.New("conflict"))
	m.Login(nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rpcRequests.WithLabelValues("/pennyworth.v1.TaxService/Estimate", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rpcRequests.WithLabelValues("/pennyworth.v1.TaxService/Estimate", "invalid_argument")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.w2Extractions.WithLabelValues("partial")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.chatFragments))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.historyMutations.WithLabelValues("add", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.historyMutations.WithLabelValues("remove", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loginAttempts.WithLabelValues("ok")))

	count, err := testutil.GatherAndCount(reg, "pennyworth_rpc_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRPC("/x", "ok", 1)
		m.W2Extraction("success")
		m.ChatFragment()
		m.HistoryMutation("add", nil)
		m.Login(nil)
	})
}

package monitor

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDerivationMetrics(t *testing.T) {
	m := NewDerivationMetrics(prometheus.NewRegistry())

	m.KeyGenerated("btc", "bech32")
	m.KeyGenerated("btc", "bech32")
	m.Collision("subseed")
	m.Fallback("std", "libsecp256k1")
	m.Observe("split", time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.KeysGeneratedTotal.WithLabelValues("btc", "bech32")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SeedIDCollisions.WithLabelValues("subseed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.KeygenFallback.WithLabelValues("std", "libsecp256k1")))
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *DerivationMetrics
	assert.NotPanics(t, func() {
		m.KeyGenerated("btc", "legacy")
		m.Collision("share")
		m.Fallback("monero", "edwards25519")
		m.Observe("subseed", time.Now())
	})
}

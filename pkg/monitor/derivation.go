package monitor

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DerivationMetrics 定义派生过程的监控指标
type DerivationMetrics struct {
	KeysGeneratedTotal *prometheus.CounterVec
	SeedIDCollisions   *prometheus.CounterVec
	KeygenFallback     *prometheus.CounterVec
	DerivationDuration *prometheus.HistogramVec
}

// Global Metrics Instance，未初始化时所有记录操作为空操作
var Derivation *DerivationMetrics

var initOnce sync.Once

// InitDerivationMetrics 在默认 Registry 上注册派生指标，重复调用无副作用
func InitDerivationMetrics() {
	initOnce.Do(func() {
		Derivation = NewDerivationMetrics(prometheus.DefaultRegisterer)
	})
}

// NewDerivationMetrics 在指定 Registerer 上创建指标，测试中使用独立的 Registry
func NewDerivationMetrics(reg prometheus.Registerer) *DerivationMetrics {
	factory := promauto.With(reg)
	return &DerivationMetrics{
		KeysGeneratedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "seed_keys_generated_total",
			Help: "The total number of derived private keys",
		}, []string{"coin", "addr_type"}),
		SeedIDCollisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "seed_id_collisions_total",
			Help: "Seed ID collisions resolved by nonce search",
		}, []string{"kind"}),
		KeygenFallback: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "seed_keygen_fallback_total",
			Help: "Keygen backends skipped because they were unavailable",
		}, []string{"pubkey_kind", "backend"}),
		DerivationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "seed_derivation_duration_seconds",
			Help:    "Duration of derivation operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}
}

func (m *DerivationMetrics) KeyGenerated(coin, addrType string) {
	if m == nil {
		return
	}
	m.KeysGeneratedTotal.WithLabelValues(coin, addrType).Inc()
}

func (m *DerivationMetrics) Collision(kind string) {
	if m == nil {
		return
	}
	m.SeedIDCollisions.WithLabelValues(kind).Inc()
}

func (m *DerivationMetrics) Fallback(pubkeyKind, backend string) {
	if m == nil {
		return
	}
	m.KeygenFallback.WithLabelValues(pubkeyKind, backend).Inc()
}

// Observe 记录 op 自 start 以来的耗时，用法: defer monitor.Derivation.Observe("split", time.Now())
func (m *DerivationMetrics) Observe(op string, start time.Time) {
	if m == nil {
		return
	}
	m.DerivationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

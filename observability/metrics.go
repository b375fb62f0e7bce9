package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OtherKey is the key label for action keys not named to NewMetrics.
const OtherKey = "other"

// Metrics holds the throttle counters. A nil *Metrics records nothing.
type Metrics struct {
	AttemptsTotal *prometheus.CounterVec
	LockoutsTotal *prometheus.CounterVec
	ChecksTotal   *prometheus.CounterVec
	ClearsTotal   *prometheus.CounterVec

	keys map[string]struct{}
}

// NewMetrics creates and registers all metrics with the given registry.
// Only the listed action keys get their own key label; every other key is
// counted under OtherKey so callers cannot grow the series set.
func NewMetrics(reg prometheus.Registerer, keys ...string) *Metrics {
	known := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		known[k] = struct{}{}
	}
	return &Metrics{
		keys: known,
		AttemptsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "attemptguard",
				Name:      "attempts_total",
				Help:      "Attempts recorded per action key",
			},
			[]string{"key"},
		),
		LockoutsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "attemptguard",
				Name:      "lockouts_total",
				Help:      "Lockouts triggered per action key",
			},
			[]string{"key"},
		),
		ChecksTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "attemptguard",
				Name:      "checks_total",
				Help:      "Throttle checks by outcome",
			},
			[]string{"result"}, // allowed/limited
		),
		ClearsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "attemptguard",
				Name:      "clears_total",
				Help:      "Explicit clears per action key",
			},
			[]string{"key"},
		),
	}
}

func (m *Metrics) Attempt(key string) {
	if m == nil {
		return
	}
	m.AttemptsTotal.WithLabelValues(m.label(key)).Inc()
}

func (m *Metrics) Lockout(key string) {
	if m == nil {
		return
	}
	m.LockoutsTotal.WithLabelValues(m.label(key)).Inc()
}

func (m *Metrics) Check(limited bool) {
	if m == nil {
		return
	}
	result := "allowed"
	if limited {
		result = "limited"
	}
	m.ChecksTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) Clear(key string) {
	if m == nil {
		return
	}
	m.ClearsTotal.WithLabelValues(m.label(key)).Inc()
}

func (m *Metrics) label(key string) string {
	if _, ok := m.keys[key]; ok {
		return key
	}
	return OtherKey
}

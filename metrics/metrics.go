package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Candidate outcomes counted by Metrics.Candidates.
const (
	Generated = "generated"
	Boundary  = "boundary"
	Estimate  = "estimate"
	Counted   = "counted"
)

// Metrics instruments a mining run. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	Candidates *prometheus.CounterVec
	Frequent   prometheus.Counter
	Removed    prometheus.Counter
	Active     prometheus.Gauge
	Level      prometheus.Gauge
	Duration   prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		Candidates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sapriori",
			Name:      "candidates_total",
			Help:      "Candidate itemsets by outcome: generated by the join, pruned by the boundary, pruned by the estimator or counted exactly.",
		}, []string{"outcome"}),
		Frequent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sapriori",
			Name:      "frequent_total",
			Help:      "Frequent itemsets found.",
		}),
		Removed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sapriori",
			Name:      "removed_transactions_total",
			Help:      "Transactions dropped from the active set.",
		}),
		Active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sapriori",
			Name:      "active_transactions",
			Help:      "Transactions still in the active set.",
		}),
		Level: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sapriori",
			Name:      "level",
			Help:      "Size of the itemsets of the level being mined.",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sapriori",
			Name:      "level_duration_seconds",
			Help:      "Wall time spent per level.",
			Buckets:   prometheus.ExponentialBuckets(.001, 4, 10),
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Candidates, m.Frequent, m.Removed, m.Active, m.Level, m.Duration}
}

func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range m.collectors() {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) Candidate(outcome string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Candidates.WithLabelValues(outcome).Add(float64(n))
}

func (m *Metrics) Found(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Frequent.Add(float64(n))
}

// Shrunk records a removal batch and the active set size after it.
func (m *Metrics) Shrunk(removed, active int) {
	if m == nil {
		return
	}
	if removed > 0 {
		m.Removed.Add(float64(removed))
	}
	m.Active.Set(float64(active))
}

func (m *Metrics) StartLevel(k int) {
	if m == nil {
		return
	}
	m.Level.Set(float64(k))
}

func (m *Metrics) FinishLevel(seconds float64) {
	if m == nil {
		return
	}
	m.Duration.Observe(seconds)
}

// WriteFile writes everything g gathers to path in the text exposition
// format.
func WriteFile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

// Package metrics exposes prometheus collectors for sale parsing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/saleparser"
)

// Parse outcomes
const (
	OutcomeClean  = "clean"
	OutcomeReview = "review"
	OutcomeFailed = "failed"
)

type Collector struct {
	parses       *prometheus.CounterVec
	confidence   *prometheus.HistogramVec
	reviewFields *prometheus.CounterVec
	ticks        prometheus.Counter
	batchSize    prometheus.Histogram
	strains      prometheus.Gauge
}

// New registers the collectors on reg
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		parses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sales",
			Name:      "parses_total",
			Help:      "Parsed sale descriptions by outcome.",
		}, []string{"outcome"}),
		confidence: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sales",
			Name:      "field_confidence",
			Help:      "Confidence score per extracted field.",
			Buckets:   []float64{0, 0.3, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		}, []string{"field"}),
		reviewFields: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sales",
			Name:      "review_fields_total",
			Help:      "Fields flagged for human review.",
		}, []string{"field"}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sales",
			Name:      "tick_sales_total",
			Help:      "Parsed sales recognized as ticks.",
		}),
		batchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sales",
			Name:      "batch_lines",
			Help:      "Lines per batch parse request.",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}),
		strains: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sales",
			Name:      "known_strains",
			Help:      "Strains in the current catalog.",
		}),
	}
	reg.MustRegister(c.parses, c.confidence, c.reviewFields, c.ticks, c.batchSize, c.strains)
	return c
}

// ObserveSale records one parse result and the fields it flagged
func (c *Collector) ObserveSale(sale saleparser.ParsedSale, needsReview []string) {
	switch {
	case sale.Failed():
		c.parses.WithLabelValues(OutcomeFailed).Inc()
		return
	case len(needsReview) > 0:
		c.parses.WithLabelValues(OutcomeReview).Inc()
	default:
		c.parses.WithLabelValues(OutcomeClean).Inc()
	}

	for _, f := range sale.Confidence.Fields() {
		c.confidence.WithLabelValues(f.Field).Observe(f.Score)
	}
	for _, field := range needsReview {
		c.reviewFields.WithLabelValues(field).Inc()
	}
	if sale.IsTick {
		c.ticks.Inc()
	}
}

func (c *Collector) ObserveBatch(lines int) {
	c.batchSize.Observe(float64(lines))
}

func (c *Collector) SetKnownStrains(n int) {
	c.strains.Set(float64(n))
}

// Package metrics holds the prometheus indicators of remote chain calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "dorium"

const (
	StateSuccess = "success"
	StateError   = "error"
)

type Indicators interface {
	ObserveCallLatencyMs(kind string, latencyMs int64)
	ObserveConfirmationLatencyMs(latencyMs int64)
	ObserveGasUsed(kind string, gasUsed int64)
	IncrementProcessingCallCount()
	DecrementProcessingCallCount()
	IncrementProcessedCallsTotal(kind, state string)
}

type PromIndicators struct {
	callLatencyMs         *prometheus.SummaryVec
	confirmationLatencyMs prometheus.Summary
	gasUsed               *prometheus.SummaryVec
	processingCallCount   prometheus.Gauge
	processedCallsTotal   *prometheus.CounterVec
}

var _ Indicators = (*PromIndicators)(nil)

func NewPromIndicators(reg prometheus.Registerer, subsystem string) *PromIndicators {
	return &PromIndicators{
		callLatencyMs: promauto.With(reg).NewSummaryVec(
			prometheus.SummaryOpts{
				Namespace:  Namespace,
				Subsystem:  subsystem,
				Name:       "call_latency_ms",
				Help:       "remote call latency summary in milliseconds, by kind",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.95: 0.01, 0.99: 0.001},
			},
			[]string{"kind"},
		),
		confirmationLatencyMs: promauto.With(reg).NewSummary(
			prometheus.SummaryOpts{
				Namespace:  Namespace,
				Subsystem:  subsystem,
				Name:       "confirmation_latency_ms",
				Help:       "time between broadcast and inclusion of a transaction in milliseconds",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.95: 0.01, 0.99: 0.001},
			},
		),
		gasUsed: promauto.With(reg).NewSummaryVec(
			prometheus.SummaryOpts{
				Namespace:  Namespace,
				Subsystem:  subsystem,
				Name:       "gas_used",
				Help:       "gas used by each committed transaction, by kind",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			},
			[]string{"kind"},
		),
		processingCallCount: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Subsystem: subsystem,
				Name:      "processing_call_count",
				Help:      "number of remote calls currently in flight",
			},
		),
		processedCallsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: subsystem,
				Name:      "processed_calls_total",
				Help:      "number of remote calls processed by kind and state (success, error)",
			},
			[]string{"kind", "state"},
		),
	}
}

func (p *PromIndicators) ObserveCallLatencyMs(kind string, latencyMs int64) {
	p.callLatencyMs.WithLabelValues(kind).Observe(float64(latencyMs))
}

func (p *PromIndicators) ObserveConfirmationLatencyMs(latencyMs int64) {
	p.confirmationLatencyMs.Observe(float64(latencyMs))
}

func (p *PromIndicators) ObserveGasUsed(kind string, gasUsed int64) {
	p.gasUsed.WithLabelValues(kind).Observe(float64(gasUsed))
}

func (p *PromIndicators) IncrementProcessingCallCount() {
	p.processingCallCount.Inc()
}

func (p *PromIndicators) DecrementProcessingCallCount() {
	p.processingCallCount.Dec()
}

func (p *PromIndicators) IncrementProcessedCallsTotal(kind, state string) {
	p.processedCallsTotal.WithLabelValues(kind, state).Inc()
}

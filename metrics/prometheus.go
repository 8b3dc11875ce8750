package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	queryTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "docqa_query_total",
		Help: "Answered queries by result kind",
	}, []string{"kind"})

	queryLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "docqa_query_latency_ms",
		Help:    "End-to-end answer latency in milliseconds",
		Buckets: []float64{50, 100, 250, 500, 1000, 2000, 5000, 10000, 30000},
	})

	guardrailBlocked = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "docqa_guardrail_blocked_total",
		Help: "Queries rejected by the guard-rail filter, by rule",
	}, []string{"rule"})

	ingestChunks = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "docqa_ingest_chunks",
		Help:    "Chunks produced per ingested document",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200, 500},
	})

	ingestLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "docqa_ingest_latency_ms",
		Help:    "Document ingest latency in milliseconds",
		Buckets: []float64{100, 250, 500, 1000, 2500, 5000, 10000, 30000, 60000},
	})
)

func ensureRegistered() {
	once.Do(func() {
		prometheus.MustRegister(queryTotal, queryLatency, guardrailBlocked, ingestChunks, ingestLatency)
	})
}

// ObserveQuery records the outcome and latency of one answered query.
func ObserveQuery(kind string, latencyMs int64) {
	ensureRegistered()
	queryTotal.WithLabelValues(kind).Inc()
	queryLatency.Observe(float64(latencyMs))
}

// IncGuardrailBlocked counts a guard-rail rejection by matched rule.
func IncGuardrailBlocked(rule string) {
	ensureRegistered()
	guardrailBlocked.WithLabelValues(rule).Inc()
}

// ObserveIngest records the chunk count and latency of one ingested document.
func ObserveIngest(chunks int, start time.Time) {
	ensureRegistered()
	ingestChunks.Observe(float64(chunks))
	ingestLatency.Observe(float64(time.Since(start).Milliseconds()))
}

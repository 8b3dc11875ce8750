// Package metrics records per-query telemetry. Each answered query emits one
// structured JSON line and updates the process-wide prometheus collectors.
package metrics

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"docqa/common/logger"
)

// QueryMetrics is the record for a single answered query.
type QueryMetrics struct {
	QueryID   string    `json:"query_id"`
	Question  string    `json:"question"`
	Timestamp time.Time `json:"timestamp"`

	GuardrailPassed bool   `json:"guardrail_passed"`
	GuardrailRule   string `json:"guardrail_rule,omitempty"`

	EvidenceCount      int   `json:"evidence_count"`
	RetrievalLatencyMs int64 `json:"retrieval_latency_ms,omitempty"`
	GenerateLatencyMs  int64 `json:"generate_latency_ms,omitempty"`
	TotalLatencyMs     int64 `json:"total_latency_ms"`

	ResultKind string `json:"result_kind"`
	Success    bool   `json:"success"`
	ErrorMsg   string `json:"error_msg,omitempty"`
}

// NewQueryMetrics starts a record for one query.
func NewQueryMetrics(question string) *QueryMetrics {
	return &QueryMetrics{
		QueryID:   uuid.NewString(),
		Question:  question,
		Timestamp: time.Now(),
	}
}

// LogJSON emits the record as a single JSON log line and feeds the
// prometheus collectors.
func (m *QueryMetrics) LogJSON() {
	ObserveQuery(m.ResultKind, m.TotalLatencyMs)
	if data, err := json.Marshal(m); err == nil {
		logger.Infof("[QUERY_METRICS] %s", string(data))
	}
}

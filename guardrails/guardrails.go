// Package guardrails screens raw user queries before any retrieval or model
// call happens. Matching is case-insensitive substring, first match wins,
// injection patterns checked before off-topic patterns.
package guardrails

import "strings"

// Canned reasons returned to the caller. The empty and off-topic reasons are
// user-facing as-is; the injection reason deliberately does not echo the
// matched phrase back.
const (
	ReasonEmpty    = "Empty query received."
	ReasonBlocked  = "Your message was blocked for safety reasons. Detected potentially unsafe pattern."
	ReasonOffTopic = "I can only help with questions about your uploaded documents. This request appears to be outside my scope."
)

// Rule name reported for empty queries.
const RuleEmpty = "empty"

// defaultInjectionPatterns flag prompt injection and exfiltration attempts.
var defaultInjectionPatterns = []string{
	"ignore previous",
	"ignore all instructions",
	"system prompt",
	"override instructions",
	"hack",
	"injection",
	"forget your instructions",
	"disregard",
	"pretend you are",
	"act as if",
	"reveal your prompt",
	"show me your instructions",
	"bypass",
	"jailbreak",
}

// defaultOffTopicPatterns flag requests the assistant should not serve.
var defaultOffTopicPatterns = []string{
	"write me code",
	"generate code",
	"create a program",
	"help me hack",
	"illegal",
}

// SafetyCheck is the verdict for one query.
type SafetyCheck struct {
	IsSafe      bool
	Reason      string
	MatchedRule string
}

// Filter holds the two pattern sets. The sets are data; the evaluation order
// is fixed.
type Filter struct {
	injection []string
	offTopic  []string
}

// New builds a filter from the built-in pattern sets plus any extra patterns
// from configuration. Extra patterns are lower-cased on the way in.
func New(extraInjection, extraOffTopic []string) *Filter {
	f := &Filter{
		injection: append([]string(nil), defaultInjectionPatterns...),
		offTopic:  append([]string(nil), defaultOffTopicPatterns...),
	}
	for _, p := range extraInjection {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			f.injection = append(f.injection, p)
		}
	}
	for _, p := range extraOffTopic {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			f.offTopic = append(f.offTopic, p)
		}
	}
	return f
}

// Check classifies a raw query. Pure function of the input text and the
// pattern sets; no side effects.
func (f *Filter) Check(query string) SafetyCheck {
	normalized := strings.ToLower(strings.TrimSpace(query))

	if normalized == "" {
		return SafetyCheck{Reason: ReasonEmpty, MatchedRule: RuleEmpty}
	}

	for _, pattern := range f.injection {
		if strings.Contains(normalized, pattern) {
			return SafetyCheck{Reason: ReasonBlocked, MatchedRule: pattern}
		}
	}

	for _, pattern := range f.offTopic {
		if strings.Contains(normalized, pattern) {
			return SafetyCheck{Reason: ReasonOffTopic, MatchedRule: pattern}
		}
	}

	return SafetyCheck{IsSafe: true, Reason: "Query is safe to process."}
}

// Disclaimer returns the standard safety disclaimer shown by UI surfaces.
func Disclaimer() string {
	return "Disclaimer: This assistant provides information based on uploaded " +
		"documents only. It is not a substitute for professional legal, medical, or " +
		"financial advice. Always consult qualified professionals for important decisions."
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ParserFallbacks counts plan requests that degraded from the remote
// parser to the local heuristics. A rising rate means the upstream
// service is unhealthy even though callers see no errors.
var ParserFallbacks = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "plateful",
	Subsystem: "parser",
	Name:      "fallback_total",
	Help:      "Plan requests served by local heuristics after a remote parser failure.",
})

// PlanRequests counts meal-plan requests by result.
var PlanRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "plateful",
	Subsystem: "planner",
	Name:      "requests_total",
	Help:      "Meal-plan requests by outcome.",
}, []string{"outcome"})

// SearchRequests counts direct search requests by result.
var SearchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "plateful",
	Subsystem: "search",
	Name:      "requests_total",
	Help:      "Recipe search requests by outcome.",
}, []string{"outcome"})

// Outcome label values.
const (
	OutcomeOK        = "ok"
	OutcomeNoResults = "no_results"
	OutcomeError     = "error"
)

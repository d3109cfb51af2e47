package intent

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Contract is a negotiated service-level agreement derived from a priority
// Vector. MinSecurityLevel is on a 0-10 scale, not 0-1.
//
// Acceptance is final: once a Negotiator marks a contract accepted, nothing
// in this package resets the flag. Re-negotiation always produces a new
// Contract with a fresh ID.
type Contract struct {
	ID               string
	MaxLatencyMs     float64
	MaxCostPerHour   float64
	MinAvailability  float64 // uptime percentage, e.g. 99.9
	MinSecurityLevel float64
	MaxCarbonGrams   float64
	Accepted         bool
	CreatedAt        time.Time
}

// NewContract builds an unaccepted contract with a unique id.
func NewContract(maxLatencyMs, maxCostPerHour, minAvailability, minSecurityLevel, maxCarbonGrams float64) Contract {
	return Contract{
		ID:               "sla-" + uuid.NewString(),
		MaxLatencyMs:     maxLatencyMs,
		MaxCostPerHour:   maxCostPerHour,
		MinAvailability:  minAvailability,
		MinSecurityLevel: minSecurityLevel,
		MaxCarbonGrams:   maxCarbonGrams,
		CreatedAt:        time.Now(),
	}
}

// Satisfied reports whether observed performance meets the contract: latency
// and cost at or under their bounds, availability at or over its floor.
func (c Contract) Satisfied(observedLatency, observedCost, observedAvailability float64) bool {
	return observedLatency <= c.MaxLatencyMs &&
		observedCost <= c.MaxCostPerHour &&
		observedAvailability >= c.MinAvailability
}

// Penalty returns the violation penalty: for each exceeded bound, the
// proportional excess scaled by 10. Zero when the contract is met.
func (c Contract) Penalty(observedLatency, observedCost float64) float64 {
	penalty := 0.0
	if observedLatency > c.MaxLatencyMs {
		penalty += (observedLatency - c.MaxLatencyMs) / c.MaxLatencyMs * 10.0
	}
	if observedCost > c.MaxCostPerHour {
		penalty += (observedCost - c.MaxCostPerHour) / c.MaxCostPerHour * 10.0
	}
	return penalty
}

func (c Contract) String() string {
	return fmt.Sprintf("contract[id=%s maxLatency=%.1fms maxCost=$%.2f/hr minAvail=%.1f%% security=%.1f maxCarbon=%.1fg accepted=%t]",
		c.ID, c.MaxLatencyMs, c.MaxCostPerHour, c.MinAvailability, c.MinSecurityLevel, c.MaxCarbonGrams, c.Accepted)
}

package intent

import (
	"fmt"
	"time"
)

// Vector expresses how strongly a user wants each resource dimension
// optimized. Each field is in [0,1]: Cost=1 means "minimize cost at all
// costs", Cost=0 means "don't care". Out-of-range constructor inputs are
// clamped, never rejected.
//
// UserID and CreatedAt are provenance only. CreatedAt orders history entries
// for recency weighting; it carries no other business meaning. Treat a Vector
// as immutable after construction — the Tracker stamps UserID on its own
// copy when learning.
type Vector struct {
	Cost     float64
	Latency  float64
	Security float64
	Carbon   float64

	UserID    string
	CreatedAt time.Time
}

// NewVector builds a Vector with every priority clamped into [0,1].
func NewVector(cost, latency, security, carbon float64) Vector {
	return Vector{
		Cost:      clamp01(cost),
		Latency:   clamp01(latency),
		Security:  clamp01(security),
		Carbon:    clamp01(carbon),
		UserID:    "default",
		CreatedAt: time.Now(),
	}
}

// DefaultVector returns the balanced-priorities vector used whenever no
// signal is available (empty extractor input, user with no history).
func DefaultVector() Vector {
	return NewVector(0.5, 0.5, 0.5, 0.3)
}

func clamp01(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}

func (v Vector) String() string {
	return fmt.Sprintf("intent[cost=%.2f latency=%.2f security=%.2f carbon=%.2f user=%s]",
		v.Cost, v.Latency, v.Security, v.Carbon, v.UserID)
}

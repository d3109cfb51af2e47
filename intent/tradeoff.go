package intent

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Inverse-scaling constants for the tradeoff formula, chosen so no single
// term structurally dominates at typical magnitudes (dollars/hr, ms, 0-10
// security, grams/hr).
const (
	costInverseScale    = 10.0
	latencyInverseScale = 1000.0
	carbonInverseScale  = 100.0

	// metricFloor replaces non-positive cost/latency inputs so inverse
	// scaling never divides by zero.
	metricFloor = 0.01

	// Fixed values assumed by ScoreSimple for callers that only model the
	// cost/latency tradeoff.
	simpleSecurityLevel  = 5.0
	simpleCarbonEmission = 50.0
)

// TradeoffEngine scores candidate resource configurations against a priority
// Vector. Scores increase monotonically with match quality and are not
// bounded to [0,1]. The zero value is ready to use.
type TradeoffEngine struct{}

// Score rates one configuration. Each term is the dimension's priority times
// an inverse-scaled raw metric: lower cost, latency, and carbon score
// higher; higher security level scores higher. Non-positive cost or latency
// is floored to 0.01 rather than faulting.
func (TradeoffEngine) Score(cost, latency, securityLevel, carbonEmission float64, v Vector) float64 {
	if cost <= 0 {
		cost = metricFloor
	}
	if latency <= 0 {
		latency = metricFloor
	}

	costScore := v.Cost * (1.0 / cost) * costInverseScale
	latencyScore := v.Latency * (1.0 / latency) * latencyInverseScale
	securityScore := v.Security * securityLevel
	carbonScore := v.Carbon * (1.0 / math.Max(carbonEmission, metricFloor)) * carbonInverseScale

	return costScore + latencyScore + securityScore + carbonScore
}

// ScoreSimple rates a configuration on cost and latency alone, assuming a
// mid-range security level of 5.0 and carbon emission of 50.0.
func (e TradeoffEngine) ScoreSimple(cost, latency float64, v Vector) float64 {
	return e.Score(cost, latency, simpleSecurityLevel, simpleCarbonEmission, v)
}

// FindBest returns the index of the best-scoring candidate among parallel
// cost/latency slices. Comparison is strict greater-than, so on an exact tie
// the earliest index wins. Mismatched or empty slices are a caller contract
// violation and panic.
func (e TradeoffEngine) FindBest(costs, latencies []float64, v Vector) int {
	if len(costs) != len(latencies) {
		panic(fmt.Sprintf("FindBest: %d costs vs %d latencies", len(costs), len(latencies)))
	}
	if len(costs) == 0 {
		panic("FindBest: no candidates")
	}

	bestIndex := 0
	bestScore := -1.0
	for i := range costs {
		s := e.ScoreSimple(costs[i], latencies[i], v)
		logrus.Debugf("tradeoff: option %d cost=$%.2f latency=%.1fms score=%.2f", i, costs[i], latencies[i], s)
		if s > bestScore {
			bestScore = s
			bestIndex = i
		}
	}
	logrus.Debugf("tradeoff: best option %d (score=%.2f)", bestIndex, bestScore)
	return bestIndex
}

// MeetsContract reports whether a configuration's cost and latency are
// within the contract bounds. Availability is deliberately not checked here;
// the caller compares observed uptime separately.
func (TradeoffEngine) MeetsContract(cost, latency float64, c Contract) bool {
	return cost <= c.MaxCostPerHour && latency <= c.MaxLatencyMs
}

// ParetoScore is a balanced cost/latency efficiency indicator in (0,1]: the
// geometric mean of 1/(1+cost) and 1/(1+latency/100). Unlike Score it is not
// intent-weighted.
func (TradeoffEngine) ParetoScore(cost, latency float64) float64 {
	normalizedCost := 1.0 / (1.0 + cost)
	normalizedLatency := 1.0 / (1.0 + latency/100.0)
	return math.Sqrt(normalizedCost * normalizedLatency)
}

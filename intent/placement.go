package intent

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Fixed scales for the placement score terms. Latency dominates by default,
// cost second, security third, carbon smallest — performance sensitivity is
// the most common driver.
const (
	placementLatencyScale  = 40.0
	placementCostScale     = 30.0
	placementSecurityScale = 20.0
	placementCarbonScale   = 10.0
)

// ErrNoFeasibleHost is returned by SelectHost when no host passes the
// resource feasibility filter. It is an outcome callers must handle, not a
// fault.
var ErrNoFeasibleHost = errors.New("no feasible host for vm request")

// HostSnapshot is a read-only view of one host's telemetry for a single
// placement call: capacity, current allocation, and resident-VM count.
// Freshness is the caller's responsibility; the policy does no caching or
// staleness tracking.
type HostSnapshot struct {
	ID              string  `yaml:"id"`
	TotalMips       float64 `yaml:"total_mips"`
	AllocatedMips   float64 `yaml:"allocated_mips"`
	FreePes         int64   `yaml:"free_pes"`
	RAMAvailableMb  int64   `yaml:"ram_available_mb"`
	BwAvailableMbps int64   `yaml:"bw_available_mbps"`
	VMCount         int     `yaml:"vm_count"`
}

// Fits reports whether the host has enough free cores, memory, and bandwidth
// for the request. Any single shortfall excludes the host from scoring
// entirely.
func (h HostSnapshot) Fits(vm VMRequest) bool {
	return h.FreePes >= vm.Pes &&
		h.RAMAvailableMb >= vm.RAMMb &&
		h.BwAvailableMbps >= vm.BwMbps
}

// VMRequest is the resource shape of a VM awaiting placement.
type VMRequest struct {
	ID     string `yaml:"id"`
	Pes    int64  `yaml:"pes"`
	RAMMb  int64  `yaml:"ram_mb"`
	BwMbps int64  `yaml:"bw_mbps"`
}

// PlacementDecision is the outcome of SelectHost. Scores holds the composite
// score of every feasible host, including the losers, for diagnostics.
type PlacementDecision struct {
	HostID string
	Score  float64
	Scores map[string]float64
	Reason string
}

// PlacementPolicy selects hosts for VMs by how well each host matches the
// user's priority Vector rather than by resource fit alone. The zero value
// is ready to use.
type PlacementPolicy struct{}

// SelectHost picks the best host for the request. Infeasible hosts are
// excluded first; the rest are scored by hostScore. Comparison is strict
// greater-than, so the first-encountered host wins exact ties. When nothing
// is feasible the decision carries no host and ErrNoFeasibleHost is
// returned.
func (p PlacementPolicy) SelectHost(vm VMRequest, hosts []HostSnapshot, v Vector) (PlacementDecision, error) {
	scores := make(map[string]float64, len(hosts))
	bestScore := -1.0
	bestID := ""

	for _, h := range hosts {
		if !h.Fits(vm) {
			logrus.Debugf("placement: host %s skipped, insufficient resources for vm %s", h.ID, vm.ID)
			continue
		}
		s := hostScore(h, v)
		scores[h.ID] = s
		logrus.Debugf("placement: host %s score=%.2f", h.ID, s)
		if s > bestScore {
			bestScore = s
			bestID = h.ID
		}
	}

	if bestID == "" {
		return PlacementDecision{Scores: scores}, ErrNoFeasibleHost
	}
	return PlacementDecision{
		HostID: bestID,
		Score:  bestScore,
		Scores: scores,
		Reason: fmt.Sprintf("best of %d feasible hosts for %v", len(scores), v),
	}, nil
}

// Compare exposes the scoring for exactly two hosts as a diagnostic string.
func (p PlacementPolicy) Compare(h1, h2 HostSnapshot, v Vector) string {
	s1 := hostScore(h1, v)
	s2 := hostScore(h2, v)
	winner := h1.ID
	if s2 > s1 {
		winner = h2.ID
	}
	return fmt.Sprintf("host %s score=%.2f vs host %s score=%.2f -> winner: %s",
		h1.ID, s1, h2.ID, s2, winner)
}

// hostScore is the weighted placement score. Compute headroom serves the
// latency priority; utilization serves both the cost and carbon priorities
// (consolidation as a proxy for cheap and for green — an intentional
// conflation inherited from the scoring model); co-tenant count inversely
// serves the security priority.
func hostScore(h HostSnapshot, v Vector) float64 {
	freeMips := h.TotalMips - h.AllocatedMips
	headroom := freeMips / h.TotalMips
	utilization := h.AllocatedMips / math.Max(1, h.TotalMips)
	isolation := 1.0 / (1.0 + float64(h.VMCount))

	score := v.Latency * headroom * placementLatencyScale
	score += v.Cost * utilization * placementCostScale
	score += v.Security * isolation * placementSecurityScale
	score += v.Carbon * utilization * placementCarbonScale
	return score
}

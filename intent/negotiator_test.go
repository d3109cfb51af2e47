package intent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNegotiate_LinearInterpolation(t *testing.T) {
	n := NewNegotiator(DefaultProviderTerms())

	// Zero priorities: loosest possible terms.
	c := n.Negotiate(NewVector(0, 0, 0, 0))
	assert.InDelta(t, 200.0, c.MaxLatencyMs, 1e-9)
	assert.InDelta(t, 20.0, c.MaxCostPerHour, 1e-9)
	assert.InDelta(t, 95.0, c.MinAvailability, 1e-9)
	assert.InDelta(t, 0.0, c.MinSecurityLevel, 1e-9)
	assert.InDelta(t, 100.0, c.MaxCarbonGrams, 1e-9)
	assert.True(t, c.Accepted)

	// Mid priorities.
	c = n.Negotiate(NewVector(0.5, 0.5, 0.5, 0.5))
	assert.InDelta(t, 105.0, c.MaxLatencyMs, 1e-9)
	assert.InDelta(t, 10.25, c.MaxCostPerHour, 1e-9)
	assert.InDelta(t, 97.45, c.MinAvailability, 1e-9)
	assert.InDelta(t, 5.0, c.MinSecurityLevel, 1e-9)
	assert.InDelta(t, 60.0, c.MaxCarbonGrams, 1e-9)
}

func TestNegotiate_MonotonicInCostPriority(t *testing.T) {
	n := NewNegotiator(DefaultProviderTerms())
	prev := n.Negotiate(NewVector(0.0, 0.2, 0.5, 0.5)).MaxCostPerHour
	for _, cost := range []float64{0.1, 0.3, 0.5, 0.7, 0.9, 1.0} {
		cur := n.Negotiate(NewVector(cost, 0.2, 0.5, 0.5)).MaxCostPerHour
		assert.LessOrEqual(t, cur, prev, "cost priority %v", cost)
		prev = cur
	}
}

func TestNegotiate_ConflictRelaxesBothBounds(t *testing.T) {
	terms := DefaultProviderTerms()
	n := NewNegotiator(terms)
	v := NewVector(0.9, 0.9, 0.0, 0.0)

	c := n.Negotiate(v)

	strictLatency := terms.MaxLatencyMs - v.Latency*(terms.MaxLatencyMs-terms.MinLatencyMs)
	strictCost := terms.MaxCostPerHour - v.Cost*(terms.MaxCostPerHour-terms.MinCostPerHour)
	assert.Greater(t, c.MaxLatencyMs, strictLatency)
	assert.Greater(t, c.MaxCostPerHour, strictCost)
	assert.InDelta(t, strictLatency*1.2, c.MaxLatencyMs, 1e-9)
	assert.InDelta(t, strictCost*1.15, c.MaxCostPerHour, 1e-9)
}

func TestNegotiate_NoConflictBelowThreshold(t *testing.T) {
	terms := DefaultProviderTerms()
	n := NewNegotiator(terms)

	// One of the two at the threshold exactly: no relaxation.
	v := NewVector(0.7, 0.9, 0.0, 0.0)
	c := n.Negotiate(v)
	strictCost := terms.MaxCostPerHour - v.Cost*(terms.MaxCostPerHour-terms.MinCostPerHour)
	assert.InDelta(t, strictCost, c.MaxCostPerHour, 1e-9)
}

func TestNegotiate_ExtremePrioritiesStillAccepted(t *testing.T) {
	// With well-ordered provider terms the interpolation bottoms out at the
	// provider minimums, so even a maximally demanding vector lands on
	// acceptable terms (the conflict relaxation only ever loosens them).
	n := NewNegotiator(DefaultProviderTerms())
	c := n.Negotiate(NewVector(1.0, 1.0, 1.0, 1.0))
	assert.True(t, c.Accepted)
	assert.GreaterOrEqual(t, c.MaxLatencyMs, DefaultProviderTerms().MinLatencyMs)
	assert.GreaterOrEqual(t, c.MaxCostPerHour, DefaultProviderTerms().MinCostPerHour)
}

func TestNegotiate_FreshContractIdentity(t *testing.T) {
	n := NewNegotiator(DefaultProviderTerms())
	c1 := n.Negotiate(DefaultVector())
	c2 := n.Negotiate(DefaultVector())
	assert.NotEmpty(t, c1.ID)
	assert.NotEqual(t, c1.ID, c2.ID)
	assert.False(t, c1.CreatedAt.IsZero())
}

func TestRenegotiate_RelaxesOnlyViolatedBounds(t *testing.T) {
	n := NewNegotiator(DefaultProviderTerms())
	c := n.Negotiate(NewVector(0.5, 0.5, 0.6, 0.4))

	// Latency violated, cost fine.
	renewed := n.Renegotiate(c, c.MaxLatencyMs*2, c.MaxCostPerHour/2)
	assert.InDelta(t, c.MaxLatencyMs*2*1.1, renewed.MaxLatencyMs, 1e-9)
	assert.InDelta(t, c.MaxCostPerHour, renewed.MaxCostPerHour, 1e-9)

	// Non-violated bounds carry over unchanged.
	assert.Equal(t, c.MinAvailability, renewed.MinAvailability)
	assert.Equal(t, c.MinSecurityLevel, renewed.MinSecurityLevel)
	assert.Equal(t, c.MaxCarbonGrams, renewed.MaxCarbonGrams)
}

func TestRenegotiate_AlwaysAcceptedWithNewIdentity(t *testing.T) {
	n := NewNegotiator(DefaultProviderTerms())
	c := n.Negotiate(DefaultVector())
	renewed := n.Renegotiate(c, 0, 0)
	assert.True(t, renewed.Accepted)
	assert.NotEqual(t, c.ID, renewed.ID)
}

func TestContract_SatisfiedAndPenalty(t *testing.T) {
	c := NewContract(100.0, 10.0, 99.0, 5.0, 50.0)

	assert.True(t, c.Satisfied(100.0, 10.0, 99.0))
	assert.False(t, c.Satisfied(101.0, 10.0, 99.0))
	assert.False(t, c.Satisfied(100.0, 10.5, 99.0))
	assert.False(t, c.Satisfied(100.0, 10.0, 98.9))

	assert.Equal(t, 0.0, c.Penalty(50.0, 5.0))
	// 50% latency excess and 100% cost excess: 5 + 10.
	assert.InDelta(t, 15.0, c.Penalty(150.0, 20.0), 1e-9)
}

func TestProviderTerms_Validate(t *testing.T) {
	require.NoError(t, DefaultProviderTerms().Validate())

	bad := DefaultProviderTerms()
	bad.MaxLatencyMs = 5.0 // below min
	assert.Error(t, bad.Validate())

	bad = DefaultProviderTerms()
	bad.MinCostPerHour = 0
	assert.Error(t, bad.Validate())

	bad = DefaultProviderTerms()
	bad.CeilingAvailability = 90.0 // below base
	assert.Error(t, bad.Validate())
}

func TestLoadProviderTerms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.yaml")
	content := `min_latency_ms: 5
max_latency_ms: 300
min_cost_per_hour: 0.25
max_cost_per_hour: 40
base_availability: 90
ceiling_availability: 99.99
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	terms, err := LoadProviderTerms(path)
	require.NoError(t, err)
	assert.Equal(t, 5.0, terms.MinLatencyMs)
	assert.Equal(t, 40.0, terms.MaxCostPerHour)

	require.NoError(t, os.WriteFile(path, []byte("min_latency_ms: -1\n"), 0o644))
	_, err = LoadProviderTerms(path)
	assert.Error(t, err)
}

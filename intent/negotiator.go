package intent

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// conflictThreshold marks cost and latency priorities as jointly
	// unsatisfiable at the strict bounds when both exceed it.
	conflictThreshold = 0.7
	// Relaxation applied when the conflict fires: both bounds loosen,
	// a compromise rather than picking a winner.
	latencyRelaxFactor = 1.2
	costRelaxFactor    = 1.15
	// renegotiationBuffer inflates an observed, violated value when
	// re-negotiating.
	renegotiationBuffer = 1.1
)

// ProviderTerms are the provider-side offering extremes the Negotiator
// interpolates between.
type ProviderTerms struct {
	MinLatencyMs        float64 `yaml:"min_latency_ms"`       // best the provider can do
	MaxLatencyMs        float64 `yaml:"max_latency_ms"`       // worst acceptable
	MinCostPerHour      float64 `yaml:"min_cost_per_hour"`    // cheapest tier
	MaxCostPerHour      float64 `yaml:"max_cost_per_hour"`    // premium tier
	BaseAvailability    float64 `yaml:"base_availability"`    // availability floor, percent
	CeilingAvailability float64 `yaml:"ceiling_availability"` // availability at full security priority
}

// DefaultProviderTerms returns the standard offering range.
func DefaultProviderTerms() ProviderTerms {
	return ProviderTerms{
		MinLatencyMs:        10.0,
		MaxLatencyMs:        200.0,
		MinCostPerHour:      0.50,
		MaxCostPerHour:      20.0,
		BaseAvailability:    95.0,
		CeilingAvailability: 99.9,
	}
}

// LoadProviderTerms reads provider terms from a YAML file.
func LoadProviderTerms(path string) (ProviderTerms, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProviderTerms{}, fmt.Errorf("reading provider terms: %w", err)
	}
	var t ProviderTerms
	if err := yaml.Unmarshal(data, &t); err != nil {
		return ProviderTerms{}, fmt.Errorf("parsing provider terms: %w", err)
	}
	if err := t.Validate(); err != nil {
		return ProviderTerms{}, err
	}
	return t, nil
}

// Validate checks the offering ranges are well-ordered.
func (t ProviderTerms) Validate() error {
	if t.MinLatencyMs <= 0 || t.MaxLatencyMs < t.MinLatencyMs {
		return fmt.Errorf("provider terms: latency range [%v, %v] invalid", t.MinLatencyMs, t.MaxLatencyMs)
	}
	if t.MinCostPerHour <= 0 || t.MaxCostPerHour < t.MinCostPerHour {
		return fmt.Errorf("provider terms: cost range [%v, %v] invalid", t.MinCostPerHour, t.MaxCostPerHour)
	}
	if t.BaseAvailability <= 0 || t.CeilingAvailability < t.BaseAvailability {
		return fmt.Errorf("provider terms: availability range [%v, %v] invalid", t.BaseAvailability, t.CeilingAvailability)
	}
	return nil
}

// Negotiator translates a priority Vector into concrete Contract terms by
// linear interpolation between the provider's extremes. It is stateless and
// safe for concurrent use.
type Negotiator struct {
	terms ProviderTerms
}

// NewNegotiator creates a Negotiator with the given provider terms.
func NewNegotiator(terms ProviderTerms) *Negotiator {
	return &Negotiator{terms: terms}
}

// Negotiate produces a Contract from the vector. Higher latency priority
// means a stricter (lower) latency bound; higher cost priority means a
// stricter (lower) cost bound. When both cost and latency priorities exceed
// conflictThreshold the demands are jointly unsatisfiable at the strict
// bounds, and both relax multiplicatively.
//
// The contract is marked accepted iff its bounds stay at or above the
// provider's minimum offerings. An unaccepted contract is still returned —
// the caller branches on Accepted.
func (n *Negotiator) Negotiate(v Vector) Contract {
	t := n.terms

	maxLatency := t.MaxLatencyMs - v.Latency*(t.MaxLatencyMs-t.MinLatencyMs)
	maxCost := t.MaxCostPerHour - v.Cost*(t.MaxCostPerHour-t.MinCostPerHour)

	if v.Cost > conflictThreshold && v.Latency > conflictThreshold {
		logrus.Debugf("negotiator: cheap-and-fast conflict for %v, relaxing both bounds", v)
		maxLatency *= latencyRelaxFactor
		maxCost *= costRelaxFactor
	}

	minAvailability := t.BaseAvailability + v.Security*(t.CeilingAvailability-t.BaseAvailability)
	securityLevel := v.Security * 10.0
	maxCarbon := 100.0 - v.Carbon*80.0

	c := NewContract(maxLatency, maxCost, minAvailability, securityLevel, maxCarbon)
	if maxLatency >= t.MinLatencyMs && maxCost >= t.MinCostPerHour {
		c.Accepted = true
		logrus.Debugf("negotiator: accepted %v", c)
	} else {
		logrus.Debugf("negotiator: rejected %v, terms too strict for provider", c)
	}
	return c
}

// Renegotiate produces a new Contract after observed violations: each
// violated bound becomes the observed value inflated by a 10% buffer, every
// other bound carries over unchanged. The new contract is always accepted —
// re-negotiation is cooperative, not adversarial.
func (n *Negotiator) Renegotiate(c Contract, observedLatency, observedCost float64) Contract {
	newLatency := c.MaxLatencyMs
	newCost := c.MaxCostPerHour

	if observedLatency > c.MaxLatencyMs {
		newLatency = observedLatency * renegotiationBuffer
		logrus.Debugf("negotiator: relaxed latency bound to %.1fms", newLatency)
	}
	if observedCost > c.MaxCostPerHour {
		newCost = observedCost * renegotiationBuffer
		logrus.Debugf("negotiator: relaxed cost bound to $%.2f/hr", newCost)
	}

	renewed := NewContract(newLatency, newCost, c.MinAvailability, c.MinSecurityLevel, c.MaxCarbonGrams)
	renewed.Accepted = true
	return renewed
}

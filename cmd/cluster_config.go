package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/intent-sim/intent-sim/intent"
)

// Candidate is one resource configuration offered for evaluation.
type Candidate struct {
	Name           string  `yaml:"name"`
	Cost           float64 `yaml:"cost"`    // $/hr
	Latency        float64 `yaml:"latency"` // ms
	SecurityLevel  float64 `yaml:"security_level"`
	CarbonEmission float64 `yaml:"carbon_emission"` // g/hr
}

// ClusterSpec is the YAML cluster description consumed by the decide
// command: a VM awaiting placement, host telemetry snapshots, and candidate
// configurations.
type ClusterSpec struct {
	VM         intent.VMRequest      `yaml:"vm"`
	Hosts      []intent.HostSnapshot `yaml:"hosts"`
	Candidates []Candidate           `yaml:"candidates"`
}

// LoadClusterSpec reads a cluster description, rejecting unknown fields.
func LoadClusterSpec(path string) (*ClusterSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cluster spec: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var spec ClusterSpec
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing cluster spec: %w", err)
	}
	if len(spec.Hosts) == 0 {
		return nil, fmt.Errorf("cluster spec %s: no hosts", path)
	}
	if len(spec.Candidates) == 0 {
		return nil, fmt.Errorf("cluster spec %s: no candidate configurations", path)
	}
	return &spec, nil
}

// CandidateArrays returns the parallel cost/latency slices the tradeoff
// engine scores over.
func (s *ClusterSpec) CandidateArrays() (costs, latencies []float64) {
	costs = make([]float64, len(s.Candidates))
	latencies = make([]float64, len(s.Candidates))
	for i, c := range s.Candidates {
		costs[i] = c.Cost
		latencies[i] = c.Latency
	}
	return costs, latencies
}

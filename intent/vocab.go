package intent

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Vocabulary maps keywords to weights, one disjoint table per priority
// dimension. Weights must be in (0,1]. Keywords are matched by lower-case
// substring containment, so multi-word entries like "low latency" are legal
// and checked independently of their parts.
//
// A Vocabulary is configuration data: build it once (DefaultVocabulary or
// LoadVocabulary) and treat it as immutable.
type Vocabulary struct {
	Cost     map[string]float64 `yaml:"cost"`
	Latency  map[string]float64 `yaml:"latency"`
	Security map[string]float64 `yaml:"security"`
	Carbon   map[string]float64 `yaml:"carbon"`
}

// DefaultVocabulary returns the built-in English keyword tables.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Cost: map[string]float64{
			"cheap":          0.9,
			"budget":         0.85,
			"affordable":     0.8,
			"economical":     0.8,
			"low cost":       0.9,
			"save money":     0.85,
			"inexpensive":    0.8,
			"cost-effective": 0.75,
			"minimize cost":  0.9,
			"free tier":      0.95,
		},
		Latency: map[string]float64{
			"fast":             0.9,
			"quick":            0.85,
			"rapid":            0.85,
			"low latency":      0.95,
			"real-time":        0.95,
			"responsive":       0.8,
			"high performance": 0.9,
			"speed":            0.85,
			"instant":          0.9,
			"gaming":           0.85,
			"streaming":        0.8,
		},
		Security: map[string]float64{
			"secure":       0.9,
			"encrypted":    0.85,
			"private":      0.8,
			"confidential": 0.85,
			"compliant":    0.8,
			"hipaa":        0.95,
			"gdpr":         0.9,
			"isolated":     0.85,
			"protected":    0.8,
			"banking":      0.9,
			"healthcare":   0.9,
		},
		Carbon: map[string]float64{
			"green":            0.9,
			"sustainable":      0.85,
			"eco":              0.85,
			"carbon neutral":   0.95,
			"renewable":        0.9,
			"environment":      0.8,
			"low carbon":       0.9,
			"energy efficient": 0.85,
		},
	}
}

// LoadVocabulary reads and validates a YAML vocabulary file, allowing
// alternate keyword tables to be substituted without recompiling.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("reading vocabulary: %w", err)
	}
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("parsing vocabulary: %w", err)
	}
	if err := v.Validate(); err != nil {
		return Vocabulary{}, err
	}
	return v, nil
}

// Validate checks every keyword weight is a finite value in (0,1].
func (v Vocabulary) Validate() error {
	for dim, table := range map[string]map[string]float64{
		"cost": v.Cost, "latency": v.Latency, "security": v.Security, "carbon": v.Carbon,
	} {
		for kw, w := range table {
			if kw == "" {
				return fmt.Errorf("vocabulary %s: empty keyword", dim)
			}
			if w <= 0 || w > 1 || math.IsNaN(w) {
				return fmt.Errorf("vocabulary %s: keyword %q weight must be in (0,1], got %v", dim, kw, w)
			}
		}
	}
	return nil
}

package intent

import (
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
)

// multiMatchBonus is added per extra keyword match within one dimension
// beyond the first, capped so the dimension score never exceeds 1.0.
const multiMatchBonus = 0.05

// Extractor converts free-text user requests into priority Vectors by
// keyword scoring. It holds an immutable Vocabulary and is safe for
// concurrent use.
type Extractor struct {
	vocab Vocabulary
}

// NewExtractor creates an Extractor over the given vocabulary.
func NewExtractor(vocab Vocabulary) *Extractor {
	return &Extractor{vocab: vocab}
}

// Extract parses free text into a priority Vector. It never fails: empty or
// all-whitespace input yields DefaultVector, and input matching no keyword
// at all yields the moderate defaults (0.5, 0.5, 0.3, 0.2) — deliberately
// not an all-zero vector, so unparseable input still carries mild cost and
// latency interest.
func (e *Extractor) Extract(text string) Vector {
	input := strings.ToLower(strings.TrimSpace(text))
	if input == "" {
		logrus.Debug("extractor: empty input, returning default vector")
		return DefaultVector()
	}

	cost := dimensionScore(input, e.vocab.Cost)
	latency := dimensionScore(input, e.vocab.Latency)
	security := dimensionScore(input, e.vocab.Security)
	carbon := dimensionScore(input, e.vocab.Carbon)

	if cost == 0 && latency == 0 && security == 0 && carbon == 0 {
		cost, latency, security, carbon = 0.5, 0.5, 0.3, 0.2
	}

	v := NewVector(cost, latency, security, carbon)
	logrus.Debugf("extractor: %q -> %v", text, v)
	return v
}

// Explain returns a human-readable breakdown of how text was parsed.
func (e *Extractor) Explain(text string) string {
	v := e.Extract(text)
	var sb strings.Builder
	fmt.Fprintf(&sb, "input: %q\n", text)
	fmt.Fprintf(&sb, "cost priority:     %.0f%%\n", v.Cost*100)
	fmt.Fprintf(&sb, "latency priority:  %.0f%%\n", v.Latency*100)
	fmt.Fprintf(&sb, "security priority: %.0f%%\n", v.Security*100)
	fmt.Fprintf(&sb, "carbon priority:   %.0f%%\n", v.Carbon*100)
	return sb.String()
}

// dimensionScore returns the maximum weight among matched keywords, plus the
// multi-match bonus. A single strong keyword dominates; sums are never used.
func dimensionScore(input string, keywords map[string]float64) float64 {
	maxScore := 0.0
	matches := 0
	for kw, w := range keywords {
		if strings.Contains(input, kw) {
			maxScore = math.Max(maxScore, w)
			matches++
		}
	}
	if matches > 1 {
		maxScore = math.Min(1.0, maxScore+multiMatchBonus*float64(matches-1))
	}
	return maxScore
}

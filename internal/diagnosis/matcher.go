// Package diagnosis turns symptom text into a diagnosis record by matching it
// against a keyword rule table and shaping the matched rule into a response.
package diagnosis

import (
	"fmt"
	"strings"

	"github.com/kiranshivaraju/fixit/internal/knowledge"
	"github.com/kiranshivaraju/fixit/pkg/models"
)

// Strategy selects the rule that best explains a symptom.
// Implementations never fail: no match yields a fallback rule.
type Strategy interface {
	Name() string
	Match(device, symptom string) models.Rule
}

// Matcher scores every rule of the requested device by keyword hits.
type Matcher struct {
	index *knowledge.Index
}

func NewMatcher(idx *knowledge.Index) *Matcher {
	return &Matcher{index: idx}
}

func (m *Matcher) Name() string { return StrategyRules }

// Match returns the rule with the most keyword phrases contained in the
// symptom. Each keyword counts once. A rule must beat the current best score
// to replace it, so the earliest rule wins a tie and zero hits never match.
func (m *Matcher) Match(device, symptom string) models.Rule {
	text := NormalizeSymptom(symptom)

	var (
		best      models.Rule
		bestScore int
	)
	for _, rule := range m.index.Lookup(device) {
		score := Score(rule.Keywords, text)
		if score > bestScore {
			bestScore = score
			best = rule
		}
	}

	if bestScore == 0 {
		return FallbackRule(device)
	}
	return best
}

// Score counts the keywords that occur in text.
func Score(keywords []string, text string) int {
	score := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			score++
		}
	}
	return score
}

// NormalizeSymptom lowercases and trims symptom text.
func NormalizeSymptom(symptom string) string {
	return strings.TrimSpace(strings.ToLower(symptom))
}

// FallbackRule is the generic rule returned when nothing matches.
func FallbackRule(device string) models.Rule {
	return models.Rule{
		Diagnosis:          fmt.Sprintf("%s issue detected", device),
		Causes:             []string{"The symptom does not match specific known issues."},
		Severity:           models.SeverityMedium,
		Cost:               "Varies",
		TechnicianRequired: false,
	}
}

var _ Strategy = (*Matcher)(nil)

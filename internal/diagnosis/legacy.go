package diagnosis

import (
	"strings"

	"github.com/kiranshivaraju/fixit/internal/knowledge"
	"github.com/kiranshivaraju/fixit/pkg/models"
)

const legacyGenericDiagnosis = "General household appliance issue detected"

var legacyGenericChecks = []string{
	"Ensure appliance is properly plugged in and powered",
	"Check circuit breaker or fuse box",
	"Consult user manual for specific error codes",
	"Unplug for 5 minutes then restart",
	"Contact professional technician for complex issues",
}

// LegacyMatcher looks for an appliance name inside the symptom text and
// ignores the requested device. The first appliance in table order wins.
type LegacyMatcher struct {
	appliances []knowledge.Appliance
}

func NewLegacyMatcher(appliances []knowledge.Appliance) *LegacyMatcher {
	return &LegacyMatcher{appliances: appliances}
}

func (m *LegacyMatcher) Name() string { return StrategyLegacy }

func (m *LegacyMatcher) Match(_ string, symptom string) models.Rule {
	text := NormalizeSymptom(symptom)
	for _, a := range m.appliances {
		if strings.Contains(text, a.Name) {
			return applianceRule(a)
		}
	}
	return models.Rule{
		Diagnosis: legacyGenericDiagnosis,
		Causes:    []string{"The symptom does not mention a known appliance."},
		Severity:  models.SeverityMedium,
		Cost:      "Varies",
		Checks:    legacyGenericChecks,
	}
}

func applianceRule(a knowledge.Appliance) models.Rule {
	rule := models.Rule{
		Keywords:  []string{a.Name},
		Diagnosis: a.Diagnosis,
		Causes:    []string{a.Diagnosis},
		Cost:      "Varies",
		Checks:    a.Checks,
	}
	switch a.Difficulty {
	case knowledge.DifficultyEasy:
		rule.Severity = models.SeverityLow
	case knowledge.DifficultyTechnician:
		rule.Severity = models.SeverityHigh
		rule.TechnicianRequired = true
	default:
		rule.Severity = models.SeverityMedium
	}
	return rule
}

var _ Strategy = (*LegacyMatcher)(nil)

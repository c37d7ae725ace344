package models

// Severity is the urgency tag attached to every rule.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// DefaultSuccessProbability is reported for any severity outside the enum.
const DefaultSuccessProbability = "60%"

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// SuccessProbability returns the display probability that a self-repair
// succeeds for a problem of this severity.
func (s Severity) SuccessProbability() string {
	switch s {
	case SeverityLow:
		return "85%"
	case SeverityMedium:
		return "65%"
	case SeverityHigh:
		return "40%"
	case SeverityCritical:
		return "20%"
	default:
		return DefaultSuccessProbability
	}
}

// Confidence is the label derived from a success probability.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ConfidenceFor maps a probability string to a confidence label.
// Only the exact strings "85%" and "65%" earn high and medium; everything
// else, including the default probability, is low.
func ConfidenceFor(probability string) Confidence {
	switch probability {
	case "85%":
		return ConfidenceHigh
	case "65%":
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

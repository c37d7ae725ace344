package models

import "time"

// StepBundle groups remediation steps by skill level.
type StepBundle struct {
	Beginner     []string `json:"beginner"`
	Intermediate []string `json:"intermediate"`
	Advanced     []string `json:"advanced"`
}

// DiagnosisResult is the record returned for a single diagnose request.
// Degraded records produced after an internal fault carry Error and
// Suggestions instead of Steps.
type DiagnosisResult struct {
	Device               string      `json:"device"`
	Symptom              string      `json:"symptom"`
	Diagnosis            string      `json:"diagnosis"`
	Causes               []string    `json:"causes,omitempty"`
	Severity             Severity    `json:"severity,omitempty"`
	CostEstimate         string      `json:"costEstimate,omitempty"`
	TechnicianRequired   bool        `json:"technicianRequired"`
	Steps                *StepBundle `json:"steps,omitempty"`
	Checks               []string    `json:"checks,omitempty"`
	DoNot                []string    `json:"doNot,omitempty"`
	LifespanNotes        string      `json:"lifespanNotes,omitempty"`
	ProbabilityOfSuccess string      `json:"probabilityOfSuccess,omitempty"`
	Difficulty           Severity    `json:"difficulty,omitempty"`
	Confidence           Confidence  `json:"confidence"`
	Flavor               string      `json:"flavor,omitempty"`
	Timestamp            int64       `json:"timestamp"`

	Suggestions []string `json:"suggestions,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// GeneratedAt returns the timestamp as a time.Time in UTC.
func (r DiagnosisResult) GeneratedAt() time.Time {
	return time.UnixMilli(r.Timestamp).UTC()
}

// IsDegraded reports whether the record describes an internal fault.
func (r DiagnosisResult) IsDegraded() bool {
	return r.Error != ""
}

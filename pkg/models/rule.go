package models

// Rule maps a set of keyword phrases to a canned diagnosis.
// Rules are built once when a knowledge base is loaded and never modified.
type Rule struct {
	Keywords           []string `yaml:"keywords"  json:"keywords"`
	Diagnosis          string   `yaml:"diagnosis" json:"diagnosis"`
	Causes             []string `yaml:"causes"    json:"causes"`
	Severity           Severity `yaml:"severity"  json:"severity"`
	Cost               string   `yaml:"cost"      json:"cost"`
	TechnicianRequired bool     `yaml:"tech"      json:"technicianRequired"`

	// Checks holds appliance-specific checks. Only the legacy table sets it.
	Checks []string `yaml:"-" json:"checks,omitempty"`
}

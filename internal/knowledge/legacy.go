package knowledge

import (
	"bytes"
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed legacy.yaml
var legacyTable []byte

// Difficulty grades used by the legacy appliance table.
const (
	DifficultyEasy       = "easy"
	DifficultyMedium     = "medium"
	DifficultyTechnician = "technician"
)

// Appliance is one entry of the legacy appliance table.
type Appliance struct {
	Name       string   `yaml:"appliance"`
	Diagnosis  string   `yaml:"diagnosis"`
	Difficulty string   `yaml:"difficulty"`
	Checks     []string `yaml:"checks"`
}

// Appliances returns the embedded legacy appliance table in match order.
func Appliances() ([]Appliance, error) {
	dec := yaml.NewDecoder(bytes.NewReader(legacyTable))
	dec.KnownFields(true)

	var table []Appliance
	if err := dec.Decode(&table); err != nil {
		return nil, fmt.Errorf("decode legacy table: %w", err)
	}
	for i := range table {
		a := &table[i]
		a.Name = strings.ToLower(strings.TrimSpace(a.Name))
		if a.Name == "" || a.Diagnosis == "" {
			return nil, fmt.Errorf("%w: legacy entry %d needs an appliance and a diagnosis", ErrInvalidRule, i+1)
		}
		if !slices.Contains([]string{DifficultyEasy, DifficultyMedium, DifficultyTechnician}, a.Difficulty) {
			return nil, fmt.Errorf("%w: legacy entry %q has unknown difficulty %q", ErrInvalidRule, a.Name, a.Difficulty)
		}
	}
	return table, nil
}

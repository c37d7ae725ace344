// Package knowledge loads the static tables the diagnosis engine matches
// against: the per-device rule table, the legacy appliance table and the
// issue catalog served for browsing.
package knowledge

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/kiranshivaraju/fixit/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// Index is the immutable rule table keyed by device category.
// It is safe for concurrent use because nothing mutates it after Load.
type Index struct {
	rules   map[string][]models.Rule
	devices []string
	count   int
}

// Default returns the index built from the embedded rule table.
func Default() (*Index, error) {
	return Load(bytes.NewReader(defaultRules))
}

// LoadFile reads and validates a rule table from a YAML file.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer f.Close()

	idx, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load rules from %s: %w", path, err)
	}
	return idx, nil
}

// Load parses a YAML rule table and validates every rule.
// Device keys and keywords are normalized to trimmed lower case.
func Load(r io.Reader) (*Index, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var raw map[string][]models.Rule
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: rule table is empty", ErrInvalidRule)
		}
		return nil, fmt.Errorf("decode rule table: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: rule table is empty", ErrInvalidRule)
	}

	idx := &Index{rules: make(map[string][]models.Rule, len(raw))}
	for key, rules := range raw {
		device := strings.ToLower(strings.TrimSpace(key))
		if device == "" {
			return nil, fmt.Errorf("%w: empty device category", ErrInvalidRule)
		}
		if _, dup := idx.rules[device]; dup {
			return nil, fmt.Errorf("%w: device category %q is declared more than once", ErrInvalidRule, device)
		}
		normalized := make([]models.Rule, 0, len(rules))
		for i, rule := range rules {
			n, err := normalizeRule(rule)
			if err != nil {
				return nil, fmt.Errorf("%w: %s rule %d: %v", ErrInvalidRule, device, i+1, err)
			}
			normalized = append(normalized, n)
		}
		idx.rules[device] = normalized
		idx.devices = append(idx.devices, device)
		idx.count += len(normalized)
	}
	sort.Strings(idx.devices)

	return idx, nil
}

func normalizeRule(rule models.Rule) (models.Rule, error) {
	if len(rule.Keywords) == 0 {
		return rule, errors.New("at least one keyword is required")
	}
	keywords := make([]string, len(rule.Keywords))
	for i, k := range rule.Keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			return rule, fmt.Errorf("keyword %d is empty", i+1)
		}
		keywords[i] = k
	}
	rule.Keywords = keywords

	if strings.TrimSpace(rule.Diagnosis) == "" {
		return rule, errors.New("diagnosis is required")
	}
	if len(rule.Causes) == 0 {
		return rule, errors.New("at least one cause is required")
	}
	if !rule.Severity.Valid() {
		return rule, fmt.Errorf("severity must be one of low, medium, high, critical; got %q", rule.Severity)
	}
	return rule, nil
}

// Lookup returns the ordered rules for a device category, or nil when the
// category is unknown. The returned slice is a copy.
func (idx *Index) Lookup(device string) []models.Rule {
	return slices.Clone(idx.rules[device])
}

// Devices returns the known device categories in sorted order.
func (idx *Index) Devices() []string {
	return slices.Clone(idx.devices)
}

// Has reports whether device is a known category.
func (idx *Index) Has(device string) bool {
	_, ok := idx.rules[device]
	return ok
}

// RuleCount is the total number of rules across all categories.
func (idx *Index) RuleCount() int {
	return idx.count
}

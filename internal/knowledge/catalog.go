package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const catalogSchemaURL = "schema://issue-catalog.json"

// catalogSchema describes the issue catalog file. Only the device is
// required; every other field is passed through untouched.
const catalogSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["device"],
    "properties": {
      "device":     {"type": "string", "minLength": 1},
      "diagnosis":  {"type": "string", "minLength": 1},
      "keywords":   {"type": "array", "items": {"type": "string"}},
      "fixes":      {"type": "array", "items": {"type": "string"}},
      "difficulty": {"type": "string"}
    }
  }
}`

var compiledCatalogSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(catalogSchema))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(catalogSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(catalogSchemaURL)
})

// Catalog is the browsable list of known issues. Entries are kept as the raw
// JSON they were loaded from.
type Catalog struct {
	entries []json.RawMessage
	devices []string
}

// LoadCatalog reads an issue catalog from a JSON file and validates it.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read issue catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog validates raw catalog JSON against the catalog schema.
func ParseCatalog(data []byte) (*Catalog, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrInvalidCatalog, err)
	}

	schema, err := compiledCatalogSchema()
	if err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	seen := make(map[string]bool)
	var devices []string
	for _, entry := range entries {
		var head struct {
			Device string `json:"device"`
		}
		if err := json.Unmarshal(entry, &head); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		if !seen[head.Device] {
			seen[head.Device] = true
			devices = append(devices, head.Device)
		}
	}
	sort.Strings(devices)

	return &Catalog{entries: entries, devices: devices}, nil
}

// BuiltinCatalog is served when the catalog file cannot be loaded.
func BuiltinCatalog() *Catalog {
	c, err := ParseCatalog(builtinIssues)
	if err != nil {
		panic(fmt.Sprintf("builtin issue catalog: %v", err))
	}
	return c
}

// Entries returns every catalog entry, unfiltered and in file order.
func (c *Catalog) Entries() []json.RawMessage {
	return slices.Clone(c.entries)
}

// Devices returns the distinct devices mentioned by the catalog.
func (c *Catalog) Devices() []string {
	return slices.Clone(c.devices)
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

var builtinIssues = []byte(`[
  {
    "device": "phone",
    "keywords": ["phone", "iphone", "android", "screen", "battery", "charge"],
    "diagnosis": "Phone display or power issue",
    "fixes": [
      "Check charging cable and adapter",
      "Force restart the device",
      "Check for software updates",
      "Test in safe mode to rule out apps",
      "Check for physical damage to screen"
    ],
    "difficulty": "easy"
  },
  {
    "device": "laptop",
    "keywords": ["laptop", "computer", "keyboard", "slow", "overheat", "boot"],
    "diagnosis": "Laptop performance or hardware issue",
    "fixes": [
      "Check power connection and battery",
      "Run disk cleanup and defragmentation",
      "Update drivers and operating system",
      "Clean vents to prevent overheating",
      "Run hardware diagnostics"
    ],
    "difficulty": "medium"
  }
]`)

package knowledge_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kiranshivaraju/fixit/internal/knowledge"
	"github.com/kiranshivaraju/fixit/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedTable(t *testing.T) {
	idx, err := knowledge.Default()
	require.NoError(t, err)

	assert.Equal(t, []string{"laptop", "microwave", "phone", "refrigerator"}, idx.Devices())
	assert.Equal(t, 7, idx.RuleCount())

	phone := idx.Lookup("phone")
	require.Len(t, phone, 2)
	assert.Equal(t, "Phone not charging", phone[0].Diagnosis)
	assert.Equal(t, []string{"not charging", "charging", "charge"}, phone[0].Keywords)
	assert.Equal(t, models.SeverityHigh, phone[0].Severity)
	assert.Equal(t, "$5 – $40", phone[0].Cost)
	assert.True(t, phone[0].TechnicianRequired)
	assert.Equal(t, "Flickering display", phone[1].Diagnosis)
}

func TestDefault_PreservesRuleOrder(t *testing.T) {
	idx, err := knowledge.Default()
	require.NoError(t, err)

	var got []string
	for _, r := range idx.Lookup("laptop") {
		got = append(got, r.Diagnosis)
	}
	assert.Equal(t, []string{"Laptop not powering on", "Laptop overheating", "Performance slowdown"}, got)
}

func TestLookup_UnknownDevice(t *testing.T) {
	idx, err := knowledge.Default()
	require.NoError(t, err)

	assert.Nil(t, idx.Lookup("toaster"))
	assert.False(t, idx.Has("toaster"))
	assert.True(t, idx.Has("microwave"))
}

func TestLookup_ReturnsCopy(t *testing.T) {
	idx, err := knowledge.Default()
	require.NoError(t, err)

	rules := idx.Lookup("phone")
	rules[0] = models.Rule{Diagnosis: "tampered"}

	assert.Equal(t, "Phone not charging", idx.Lookup("phone")[0].Diagnosis)
}

func TestLoad_NormalizesKeywords(t *testing.T) {
	doc := `
tv:
  - keywords: ["  No Signal ", "BLACK"]
    diagnosis: No picture
    causes: [Loose HDMI cable]
    severity: low
    cost: "$0"
    tech: false
`
	idx, err := knowledge.Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"no signal", "black"}, idx.Lookup("tv")[0].Keywords)
}

func TestLoad_NormalizesDeviceKeys(t *testing.T) {
	doc := `
"  Washer ":
  - keywords: [leak]
    diagnosis: Door seal failure
    causes: [Worn gasket]
    severity: medium
    cost: "$15"
    tech: false
`
	idx, err := knowledge.Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"washer"}, idx.Devices())
	assert.True(t, idx.Has("washer"))
	assert.False(t, idx.Has("  Washer "))
	require.Len(t, idx.Lookup("washer"), 1)
	assert.Equal(t, "Door seal failure", idx.Lookup("washer")[0].Diagnosis)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "empty document",
			doc:  "",
			want: "rule table is empty",
		},
		{
			name: "blank device key",
			doc:  "\"  \":\n  - keywords: [a]\n    diagnosis: x\n    causes: [y]\n    severity: low\n",
			want: "empty device category",
		},
		{
			name: "device keys collide after normalization",
			doc:  "Washer:\n  - keywords: [a]\n    diagnosis: x\n    causes: [y]\n    severity: low\nwasher:\n  - keywords: [b]\n    diagnosis: z\n    causes: [y]\n    severity: low\n",
			want: "declared more than once",
		},
		{
			name: "no keywords",
			doc:  "tv:\n  - diagnosis: x\n    causes: [y]\n    severity: low\n",
			want: "at least one keyword",
		},
		{
			name: "blank keyword",
			doc:  "tv:\n  - keywords: [\"ok\", \"  \"]\n    diagnosis: x\n    causes: [y]\n    severity: low\n",
			want: "keyword 2 is empty",
		},
		{
			name: "missing diagnosis",
			doc:  "tv:\n  - keywords: [a]\n    causes: [y]\n    severity: low\n",
			want: "diagnosis is required",
		},
		{
			name: "missing causes",
			doc:  "tv:\n  - keywords: [a]\n    diagnosis: x\n    severity: low\n",
			want: "at least one cause",
		},
		{
			name: "bad severity",
			doc:  "tv:\n  - keywords: [a]\n    diagnosis: x\n    causes: [y]\n    severity: urgent\n",
			want: "severity must be one of",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := knowledge.Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, knowledge.ErrInvalidRule)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_UnknownField(t *testing.T) {
	doc := "tv:\n  - keywords: [a]\n    diagnosis: x\n    causes: [y]\n    severity: low\n    priority: 3\n"
	_, err := knowledge.Load(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "priority")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	doc := "oven:\n  - keywords: [\"not heating\"]\n    diagnosis: Oven not heating\n    causes: [Element failure]\n    severity: critical\n    cost: \"$50\"\n    tech: true\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	idx, err := knowledge.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"oven"}, idx.Devices())
	assert.Equal(t, models.SeverityCritical, idx.Lookup("oven")[0].Severity)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := knowledge.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open rules file")
}

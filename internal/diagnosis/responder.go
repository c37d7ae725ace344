package diagnosis

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/kiranshivaraju/fixit/pkg/models"
)

var (
	beginnerSteps = []string{
		"Restart the device and test again",
		"Check all cables, ports, and connections",
		"Ensure the device is not overheating",
		"Try a different power source or outlet",
	}
	intermediateSteps = []string{
		"Clean dust from vents and openings",
		"Test with another charger or cable",
		"Disable recently installed apps or drivers",
		"Run built-in diagnostics if available",
	}
	advancedSteps = []string{
		"Inspect internal components for damage",
		"Replace suspected faulty parts",
		"Perform firmware reset or motherboard diagnostics",
		"Check for burnt smell or damaged capacitors",
	}
	doNotList = []string{
		"Do NOT open the device while plugged in.",
		"Do NOT continue using the device if you smell burning.",
		"Do NOT poke internal components without proper tools.",
		"Do NOT attempt repairs you're not trained for.",
	}
	flavors = []string{
		"🕯 The FixIt spirits whisper: something deeper is wrong…",
		"👻 A hidden glitch lurks within the device.",
		"🔮 The Kiroween oracle senses a hardware disturbance.",
		"🦇 Shadows flicker… your device is cursed with instability.",
	}
)

// Chooser returns an index in [0, n). It picks the flavor text.
type Chooser func(n int) int

// Responder shapes a matched rule into a DiagnosisResult.
type Responder struct {
	choose Chooser
	now    func() time.Time
}

// ResponderOption configures a Responder.
type ResponderOption func(*Responder)

// WithChooser replaces the random flavor selection.
func WithChooser(c Chooser) ResponderOption {
	return func(r *Responder) { r.choose = c }
}

// WithClock replaces the wall clock used for timestamps.
func WithClock(now func() time.Time) ResponderOption {
	return func(r *Responder) { r.now = now }
}

func NewResponder(opts ...ResponderOption) *Responder {
	r := &Responder{choose: rand.IntN, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Build assembles the full response for a matched rule.
func (r *Responder) Build(device, symptom string, rule models.Rule) models.DiagnosisResult {
	probability := rule.Severity.SuccessProbability()

	return models.DiagnosisResult{
		Device:             device,
		Symptom:            symptom,
		Diagnosis:          rule.Diagnosis,
		Causes:             slices.Clone(rule.Causes),
		Severity:           rule.Severity,
		CostEstimate:       rule.Cost,
		TechnicianRequired: rule.TechnicianRequired,
		Steps: &models.StepBundle{
			Beginner:     slices.Clone(beginnerSteps),
			Intermediate: slices.Clone(intermediateSteps),
			Advanced:     slices.Clone(advancedSteps),
		},
		Checks:               slices.Clone(rule.Checks),
		DoNot:                slices.Clone(doNotList),
		LifespanNotes:        LifespanNote(device),
		ProbabilityOfSuccess: probability,
		Difficulty:           rule.Severity,
		Confidence:           models.ConfidenceFor(probability),
		Flavor:               flavors[r.choose(len(flavors))],
		Timestamp:            r.now().UnixMilli(),
	}
}

// LifespanNote returns the maintenance note for a device.
func LifespanNote(device string) string {
	switch device {
	case "laptop":
		return "Laptop thermal paste lasts ~2–4 years before efficiency drops."
	case "phone":
		return "Phone batteries degrade after ~500 charge cycles."
	default:
		return "Regular maintenance extends device lifespan."
	}
}

// Flavors returns the fixed pool of flavor strings.
func Flavors() []string {
	return slices.Clone(flavors)
}

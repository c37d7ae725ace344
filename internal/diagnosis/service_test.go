package diagnosis_test

import (
	"testing"

	"github.com/kiranshivaraju/fixit/internal/diagnosis"
	"github.com/kiranshivaraju/fixit/pkg/models"
	"github.com/stretchr/testify/assert"
)

type panickingStrategy struct{}

func (panickingStrategy) Name() string { return "panicking" }

func (panickingStrategy) Match(_, _ string) models.Rule {
	var rules []models.Rule
	return rules[3]
}

func TestDiagnose_Examples(t *testing.T) {
	svc := diagnosis.NewService(diagnosis.NewMatcher(defaultIndex(t)), fixedResponder(0))
	assert.Equal(t, "rules", svc.Strategy())

	phone := svc.Diagnose("phone", "my phone won't charge at all")
	assert.Equal(t, "Phone not charging", phone.Diagnosis)
	assert.Equal(t, models.SeverityHigh, phone.Severity)
	assert.Equal(t, "40%", phone.ProbabilityOfSuccess)
	assert.Equal(t, models.ConfidenceLow, phone.Confidence)
	assert.True(t, phone.TechnicianRequired)
	assert.Contains(t, phone.LifespanNotes, "charge cycles")

	fridge := svc.Diagnose("refrigerator", "it's warm inside and not cooling")
	assert.Equal(t, "Cooling failure", fridge.Diagnosis)
	assert.Equal(t, models.SeverityHigh, fridge.Severity)
	assert.Equal(t, "40%", fridge.ProbabilityOfSuccess)

	toaster := svc.Diagnose("toaster", "anything")
	assert.Equal(t, "toaster issue detected", toaster.Diagnosis)
	assert.Equal(t, models.SeverityMedium, toaster.Severity)
	assert.Equal(t, "65%", toaster.ProbabilityOfSuccess)
	assert.Equal(t, models.ConfidenceMedium, toaster.Confidence)
	assert.False(t, toaster.TechnicianRequired)

	slow := svc.Diagnose("laptop", "so slow")
	assert.Equal(t, "85%", slow.ProbabilityOfSuccess)
	assert.Equal(t, models.ConfidenceHigh, slow.Confidence)
}

func TestDiagnose_FaultBecomesErrorRecord(t *testing.T) {
	svc := diagnosis.NewService(panickingStrategy{}, fixedResponder(0))

	got := svc.Diagnose("phone", "won't charge")

	assert.True(t, got.IsDegraded())
	assert.Equal(t, diagnosis.EngineErrorDiagnosis, got.Diagnosis)
	assert.Equal(t, []string{"Try again later."}, got.Suggestions)
	assert.Equal(t, models.ConfidenceLow, got.Confidence)
	assert.Contains(t, got.Error, "index out of range")
	assert.Equal(t, "phone", got.Device)
	assert.Nil(t, got.Steps)
	assert.NotZero(t, got.Timestamp)
}

func TestDiagnose_ChooserFaultBecomesErrorRecord(t *testing.T) {
	r := diagnosis.NewResponder(diagnosis.WithChooser(func(int) int { return 99 }))
	svc := diagnosis.NewService(diagnosis.NewMatcher(defaultIndex(t)), r)

	got := svc.Diagnose("phone", "charge")
	assert.Equal(t, diagnosis.EngineErrorDiagnosis, got.Diagnosis)
	assert.NotEmpty(t, got.Error)
}

func TestDiagnose_LegacyStrategy(t *testing.T) {
	s, err := diagnosis.NewStrategy("legacy", defaultIndex(t))
	if !assert.NoError(t, err) {
		return
	}
	svc := diagnosis.NewService(s, fixedResponder(0))

	got := svc.Diagnose("phone", "the air conditioner is blowing warm air")
	assert.Equal(t, "AC cooling or airflow problem", got.Diagnosis)
	assert.Len(t, got.Checks, 5)
	assert.Equal(t, "65%", got.ProbabilityOfSuccess)
}

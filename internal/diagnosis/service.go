package diagnosis

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/kiranshivaraju/fixit/pkg/models"
)

// EngineErrorDiagnosis labels the degraded record returned after a fault.
const EngineErrorDiagnosis = "AI Engine Error"

// Service runs a strategy and a responder for each request.
type Service struct {
	strategy  Strategy
	responder *Responder
	now       func() time.Time
}

func NewService(strategy Strategy, responder *Responder) *Service {
	return &Service{strategy: strategy, responder: responder, now: time.Now}
}

// Strategy returns the name of the configured matching strategy.
func (s *Service) Strategy() string {
	return s.strategy.Name()
}

// Diagnose matches the symptom and builds the response. Any panic raised
// while doing so is folded into a degraded record instead of propagating.
func (s *Service) Diagnose(device, symptom string) (result models.DiagnosisResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("diagnosis fault",
				"error", r,
				"device", device,
				"strategy", s.strategy.Name(),
				"stack", string(debug.Stack()),
			)
			result = s.errorResult(device, symptom, fmt.Sprint(r))
		}
	}()

	rule := s.strategy.Match(device, symptom)
	return s.responder.Build(device, symptom, rule)
}

func (s *Service) errorResult(device, symptom, fault string) models.DiagnosisResult {
	return models.DiagnosisResult{
		Device:      device,
		Symptom:     symptom,
		Diagnosis:   EngineErrorDiagnosis,
		Suggestions: []string{"Try again later."},
		Confidence:  models.ConfidenceLow,
		Error:       fault,
		Timestamp:   s.now().UnixMilli(),
	}
}

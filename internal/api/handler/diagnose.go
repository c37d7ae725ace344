package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	mw "github.com/kiranshivaraju/fixit/internal/api/middleware"
	"github.com/kiranshivaraju/fixit/internal/api/response"
	"github.com/kiranshivaraju/fixit/pkg/models"
)

// maxDiagnoseBody caps the request body for POST /api/v1/diagnose.
const maxDiagnoseBody = 64 << 10

// exampleSymptom is echoed back to clients that omit the symptom.
const exampleSymptom = "my phone won't charge"

// Diagnoser defines the interface the handler depends on.
type Diagnoser interface {
	Diagnose(device, symptom string) models.DiagnosisResult
}

type diagnoseRequest struct {
	Symptom string `json:"symptom"`
	Device  string `json:"device"`
}

// NewDiagnoseHandler returns an http.HandlerFunc for POST /api/v1/diagnose.
// Requests without a device are diagnosed against defaultDevice.
func NewDiagnoseHandler(svc Diagnoser, defaultDevice string) http.HandlerFunc {
	defaultDevice = normalizeDevice(defaultDevice)

	return func(w http.ResponseWriter, r *http.Request) {
		var req diagnoseRequest
		body := http.MaxBytesReader(w, r.Body, maxDiagnoseBody)
		if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		if strings.TrimSpace(req.Symptom) == "" {
			response.Error(w, http.StatusBadRequest, "MISSING_FIELD", "symptom is required", map[string]any{
				"field":   "symptom",
				"example": map[string]string{"symptom": exampleSymptom},
			})
			return
		}

		device := normalizeDevice(req.Device)
		if device == "" {
			device = defaultDevice
		}

		result := svc.Diagnose(device, req.Symptom)
		if result.IsDegraded() {
			slog.Warn("diagnosis degraded",
				"device", device,
				"error", result.Error,
				"request_id", mw.GetRequestID(r),
			)
		} else {
			slog.Info("diagnosis",
				"device", device,
				"diagnosis", result.Diagnosis,
				"severity", result.Severity,
				"request_id", mw.GetRequestID(r),
			)
		}

		response.JSON(w, result)
	}
}

func normalizeDevice(device string) string {
	return strings.ToLower(strings.TrimSpace(device))
}

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"slices"
	"time"

	"github.com/kiranshivaraju/fixit/internal/api/response"
)

// Endpoint describes one public route.
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

var endpoints = []Endpoint{
	{http.MethodGet, "/", "Service index"},
	{http.MethodGet, "/api/v1/health", "Health check"},
	{http.MethodGet, "/api/v1/test", "Connection test"},
	{http.MethodGet, "/api/v1/test-diagnoses", "Sample symptoms for verification"},
	{http.MethodGet, "/api/v1/issues", "Issue catalog"},
	{http.MethodPost, "/api/v1/diagnose", "Diagnose a symptom"},
	{http.MethodPost, "/api/v1/diagnose/test", "Canned diagnosis for connection testing"},
}

// Endpoints lists the public routes.
func Endpoints() []Endpoint {
	return slices.Clone(endpoints)
}

// KnowledgeBase summarizes the loaded rule table.
type KnowledgeBase interface {
	Devices() []string
	RuleCount() int
}

// ServiceInfo identifies the running service.
type ServiceInfo struct {
	Name     string
	Version  string
	Strategy string
	Started  time.Time
}

type sampleSymptom struct {
	Symptom        string `json:"symptom"`
	ExpectedDevice string `json:"expectedDevice"`
	Description    string `json:"description"`
}

var sampleSymptoms = []sampleSymptom{
	{"phone won't charge", "phone", "Phone power issues"},
	{"laptop is overheating", "laptop", "Laptop cooling issues"},
	{"fridge not cooling", "refrigerator", "Refrigerator cooling"},
	{"washing machine leaking", "washing machine", "Washing machine drainage"},
	{"microwave not heating food", "microwave", "Microwave heating element"},
}

var testSteps = []string{
	"Client sent the request to the backend",
	"Backend received and processed the request",
	"Backend returned this structured response",
	"Client should parse and display this response",
}

// NewIndexHandler returns an http.HandlerFunc for GET /.
func NewIndexHandler(info ServiceInfo, kb KnowledgeBase, catalog IssueCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, map[string]any{
			"name":      info.Name,
			"version":   info.Version,
			"status":    "operational",
			"strategy":  info.Strategy,
			"endpoints": Endpoints(),
			"stats": map[string]any{
				"rules":            kb.RuleCount(),
				"devices":          kb.Devices(),
				"catalogIssues":    catalog.Len(),
				"supportedDevices": catalog.Devices(),
			},
			"timestamp": time.Now().UnixMilli(),
		})
	}
}

// NewConnectionTestHandler returns an http.HandlerFunc for GET /api/v1/test.
func NewConnectionTestHandler(info ServiceInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, map[string]any{
			"status":  "connected",
			"message": fmt.Sprintf("%s backend is ready", info.Name),
			"server": map[string]any{
				"goVersion":     runtime.Version(),
				"platform":      runtime.GOOS + "/" + runtime.GOARCH,
				"uptimeSeconds": int64(time.Since(info.Started).Seconds()),
			},
			"endpoints": Endpoints(),
			"timestamp": time.Now().UnixMilli(),
		})
	}
}

// NewSampleSymptomsHandler returns an http.HandlerFunc for
// GET /api/v1/test-diagnoses.
func NewSampleSymptomsHandler(kb KnowledgeBase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, map[string]any{
			"symptoms":     sampleSymptoms,
			"instructions": `POST /api/v1/diagnose with {"symptom": "...", "device": "..."}`,
			"knowledgeBase": map[string]any{
				"rules":   kb.RuleCount(),
				"devices": kb.Devices(),
			},
			"timestamp": time.Now().UnixMilli(),
		})
	}
}

// NewTestDiagnoseHandler returns an http.HandlerFunc for
// POST /api/v1/diagnose/test. It never consults the knowledge base.
func NewTestDiagnoseHandler(info ServiceInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body any
		err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDiagnoseBody)).Decode(&body)
		if err != nil && !errors.Is(err, io.EOF) {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		response.JSON(w, map[string]any{
			"device":         "test-device",
			"diagnosis":      "Connection test successful",
			"steps":          testSteps,
			"difficulty":     "easy",
			"confidence":     "high",
			"backendVersion": info.Version,
			"requestBody":    body,
			"timestamp":      time.Now().UnixMilli(),
		})
	}
}

// NotFound answers unknown routes with the list of available endpoints.
func NotFound(w http.ResponseWriter, r *http.Request) {
	response.Error(w, http.StatusNotFound, "NOT_FOUND",
		fmt.Sprintf("The requested endpoint %s %s does not exist", r.Method, r.URL.Path),
		map[string]any{"availableEndpoints": Endpoints()})
}

// MethodNotAllowed answers known routes called with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.Error(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED",
		fmt.Sprintf("Method %s is not allowed on %s", r.Method, r.URL.Path), nil)
}

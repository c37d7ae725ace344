package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubKB struct{}

func (stubKB) Devices() []string { return []string{"laptop", "phone"} }
func (stubKB) RuleCount() int    { return 5 }

type stubCatalog struct{}

func (stubCatalog) Entries() []json.RawMessage {
	return []json.RawMessage{
		json.RawMessage(`{"device":"phone","diagnosis":"Phone issue","extra":true}`),
		json.RawMessage(`{"device":"laptop","diagnosis":"Laptop issue"}`),
	}
}
func (stubCatalog) Devices() []string { return []string{"phone", "laptop"} }
func (stubCatalog) Len() int          { return 2 }

var testInfo = ServiceInfo{Name: "FixIt", Version: "1.2.3", Strategy: "rules", Started: time.Now()}

func parseData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var env struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env.Data
}

func TestIndexHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NewIndexHandler(testInfo, stubKB{}, stubCatalog{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	data := parseData(t, rec)
	assert.Equal(t, "FixIt", data["name"])
	assert.Equal(t, "1.2.3", data["version"])
	assert.Equal(t, "operational", data["status"])
	assert.Len(t, data["endpoints"], len(Endpoints()))

	stats := data["stats"].(map[string]any)
	assert.EqualValues(t, 5, stats["rules"])
	assert.EqualValues(t, 2, stats["catalogIssues"])
	assert.Equal(t, []any{"laptop", "phone"}, stats["devices"])
}

func TestConnectionTestHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NewConnectionTestHandler(testInfo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/test", nil))

	data := parseData(t, rec)
	assert.Equal(t, "connected", data["status"])
	server := data["server"].(map[string]any)
	assert.Equal(t, runtime.Version(), server["goVersion"])
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, server["platform"])
}

func TestSampleSymptomsHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NewSampleSymptomsHandler(stubKB{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/test-diagnoses", nil))

	data := parseData(t, rec)
	symptoms := data["symptoms"].([]any)
	require.Len(t, symptoms, 5)
	first := symptoms[0].(map[string]any)
	assert.Equal(t, "phone won't charge", first["symptom"])
	assert.Equal(t, "phone", first["expectedDevice"])
}

func TestTestDiagnoseHandler_EchoesBody(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/diagnose/test", strings.NewReader(`{"symptom":"ping"}`))
	NewTestDiagnoseHandler(testInfo).ServeHTTP(rec, r)

	data := parseData(t, rec)
	assert.Equal(t, "test-device", data["device"])
	assert.Equal(t, "1.2.3", data["backendVersion"])
	assert.Equal(t, map[string]any{"symptom": "ping"}, data["requestBody"])
}

func TestTestDiagnoseHandler_EmptyBody(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/diagnose/test", http.NoBody)
	NewTestDiagnoseHandler(testInfo).ServeHTTP(rec, r)

	data := parseData(t, rec)
	assert.Nil(t, data["requestBody"])
}

func TestIssuesHandler_Unfiltered(t *testing.T) {
	rec := httptest.NewRecorder()
	NewIssuesHandler(stubCatalog{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/issues", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Data []map[string]any `json:"data"`
		Meta struct {
			Count int `json:"count"`
		} `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, 2, env.Meta.Count)
	require.Len(t, env.Data, 2)
	assert.Equal(t, true, env.Data[0]["extra"])
}

func TestNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	e := parseErr(t, rec)
	assert.Equal(t, "NOT_FOUND", e.Code)
	assert.Contains(t, e.Message, "GET /nope")
	assert.Len(t, e.Details["availableEndpoints"], len(Endpoints()))
}

func TestEndpoints_ReturnsCopy(t *testing.T) {
	eps := Endpoints()
	eps[0].Path = "/changed"
	assert.Equal(t, "/", Endpoints()[0].Path)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kiranshivaraju/fixit/internal/api/response"
)

// IssueCatalog is the read-only issue listing served by GET /api/v1/issues.
type IssueCatalog interface {
	Entries() []json.RawMessage
	Devices() []string
	Len() int
}

// NewIssuesHandler returns an http.HandlerFunc for GET /api/v1/issues.
func NewIssuesHandler(catalog IssueCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.List(w, catalog.Entries(), catalog.Len())
	}
}

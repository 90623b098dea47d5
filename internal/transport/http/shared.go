package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "ptz-simulator/pkg/domain-errors"
)

// WriteJSON encodes a payload with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// errorEnvelope is the JSON error shape every endpoint shares.
type errorEnvelope struct {
	Error string `json:"error"`
	// Message is the human-readable description, French for user-facing
	// validation errors.
	Message string `json:"message,omitempty"`
	// Field names the offending input for validation errors so the wizard
	// can highlight it.
	Field string `json:"field,omitempty"`
}

// WriteError centralizes domain error translation to HTTP responses so the
// JSON error envelope stays consistent.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	envelope := errorEnvelope{Error: string(code)}

	var de *dErrors.Error
	if errors.As(err, &de) {
		envelope.Message = de.Message
		envelope.Field = de.Field
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), envelope)
}

package api

import (
	"encoding/json"
	"net/http"
)

// Caller-facing error messages. Diagnostic detail goes to the log only.
const (
	msgMethodNotAllowed = "Method not allowed"
	msgNotConfigured    = "Slack webhook not configured"
	msgDeliveryFailed   = "Failed to send Slack notification"
	msgInternal         = "Internal server error"
	msgNotFound         = "Not found"
)

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the standard error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// relayResponse acknowledges a delivered notification.
type relayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// setCORS marks relay responses as callable from any origin.
func setCORS(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
}

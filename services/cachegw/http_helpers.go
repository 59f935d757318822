package cachegw

import (
	"encoding/json"
	"errors"
	"net/http"
)

// apiError is the wire shape of every error this API returns:
// {"error":{"message":"..."}}.
type apiError struct {
	Message string `json:"message"`
}

func decodeJSON(r *http.Request, dest any) error {
	if r.Body == nil {
		return errors.New("request body required")
	}
	defer r.Body.Close()

	return json.NewDecoder(r.Body).Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	if message == "" {
		message = "unknown error"
	}
	respondJSON(w, status, map[string]any{"error": apiError{Message: message}})
}

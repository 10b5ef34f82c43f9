package utils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// WriteError maps an APIError to its status; anything else is reported as a
// plain 500 without leaking internals.
func WriteError(w http.ResponseWriter, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		WriteJSON(w, apiErr.Status, apiErr)
		return
	}
	log.Printf("unexpected error: %v", err)
	WriteJSON(w, http.StatusInternalServerError, &APIError{Message: "Internal server error"})
}

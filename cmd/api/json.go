package main

import (
	"encoding/json"
	"log"
	"net/http"
)

type ApiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   ApiError `json:"error"`
}

// fallbackBody is served when the intended response itself cannot be
// marshalled. Pre-encoded so the fallback path has no failure mode of its
// own.
var fallbackBody = []byte(`{"success":false,"error":{"code":"INTERNAL_ERROR","message":"Failed to generate response"}}`)

func respondWithError(w http.ResponseWriter, code int, apiErr ApiError) {
	if code >= 500 {
		log.Printf("Responding with 5XX error: %s - %s", apiErr.Code, apiErr.Message)
	}

	respondWithJSON(w, code, ErrorResponse{Error: apiErr})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshalling JSON response: %v", err)
		code = http.StatusInternalServerError
		data = fallbackBody
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(data)
}

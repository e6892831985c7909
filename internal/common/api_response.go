package common

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"panduankota/backend/internal/constants"
	"panduankota/backend/internal/models/dtos"
)

// RespondSuccess sends a standardized JSON success response.
func RespondSuccess(w http.ResponseWriter, initTime time.Time, message string, data any, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := dtos.APIResponse{
		Status:       constants.APIStatusOk,
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
		Data:         data,
	}

	writeJSON(w, code, response)
}

// RespondError sends a standardized JSON error response. The message is a
// symbolic reason code the client localizes.
func RespondError(w http.ResponseWriter, initTime time.Time, reason string, statusCode ...int) {
	code := http.StatusInternalServerError
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := dtos.APIResponse{
		Status:       constants.APIStatusError,
		Message:      reason,
		ResponseTime: GetResponseTime(initTime),
	}

	writeJSON(w, code, response)
}

// writeJSON marshals data and writes it to the HTTP response.
func writeJSON(w http.ResponseWriter, code int, body dtos.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("JSON encode failed: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// ReasonStatus maps a domain reason code to its HTTP status.
func ReasonStatus(reason string) int {
	switch reason {
	case constants.ReasonForbidden:
		return http.StatusForbidden
	case constants.ReasonUnauthorized, constants.ReasonInvalidLogin, constants.ReasonBlocked:
		return http.StatusUnauthorized
	case constants.ReasonNotFound:
		return http.StatusNotFound
	case constants.ReasonStoreFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

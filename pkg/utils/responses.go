package utils

import (
	"encoding/json"
	"net/http"
)

// Payload holds the extra top-level fields merged into the response envelope.
type Payload map[string]any

// ResponseJSON writes the {success, message, ...payload} envelope with a custom status code.
func ResponseJSON(w http.ResponseWriter, code int, success bool, message string, payload Payload) {
	body := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = success
	body["message"] = message

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, payload Payload) {
	ResponseJSON(w, http.StatusOK, true, message, payload)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, payload Payload) {
	ResponseJSON(w, http.StatusCreated, true, message, payload)
}

// ------------- Error responses -------------

// returns 400 Bad Request; errors carries field-level validation messages when present
func ResponseBadRequest(w http.ResponseWriter, message string, errors map[string]string) {
	var payload Payload
	if len(errors) > 0 {
		payload = Payload{"errors": errors}
	}
	ResponseJSON(w, http.StatusBadRequest, false, message, payload)
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusUnauthorized, false, message, nil)
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusForbidden, false, message, nil)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusNotFound, false, message, nil)
}

// returns 429 Too Many Requests
func ResponseTooManyRequests(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusTooManyRequests, false, message, nil)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusInternalServerError, false, message, nil)
}

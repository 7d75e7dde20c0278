package utils

import (
	"encoding/json"
	"net/http"

	"daycare-backend/internal/apperr"
)

// Fields are the extra top-level keys of a response envelope.
type Fields map[string]interface{}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Success writes {success: true, message, ...fields}.
func Success(w http.ResponseWriter, status int, message string, fields Fields) {
	body := Fields{"success": true, "message": message}
	for k, v := range fields {
		body[k] = v
	}
	JSON(w, status, body)
}

// Fail writes {success: false, message} with the given status.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Fields{"success": false, "message": message})
}

// Error maps err to its status code. Internal failures carry the raw
// underlying message in "error".
func Error(w http.ResponseWriter, err error) {
	status := apperr.StatusOf(err)
	body := Fields{"success": false, "message": apperr.MessageOf(err)}
	if apperr.KindOf(err) == apperr.KindInternal {
		body["message"] = "Internal server error"
		if cause := apperr.Cause(err); cause != nil {
			body["error"] = cause.Error()
		}
	}
	JSON(w, status, body)
}

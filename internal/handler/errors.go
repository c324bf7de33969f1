package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"inkblog/internal/logger"
)

const (
	msgMissingFields = "Missing required fields!"
	msgBodyMissing   = "Request body is missing."
	msgBadBody       = "Invalid request body."
	msgWentWrong     = "Something went wrong!"
	msgShortPassword = "Password must be at least 8 characters long."
	msgLongPassword  = "Password must be at most 128 characters long."
)

var errEmptyBody = errors.New("empty request body")

// Envelope is the payload merged next to success and message.
type Envelope map[string]interface{}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteError sends {success: false, message}.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{Success: false, Message: message})
}

// writeSuccess sends {success: true, message, ...payload}.
func writeSuccess(w http.ResponseWriter, message string, statusCode int, payload Envelope) {
	body := Envelope{"success": true, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, statusCode, body)
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// internalError logs err with the request logger and sends a generic 500.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).Error("request failed",
		zap.String("path", r.URL.Path),
		zap.Error(err))
	WriteError(w, msgWentWrong, http.StatusInternalServerError)
}

// decodeJSON reads one JSON object from the body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errEmptyBody
	}

	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return errEmptyBody
	}

	return err
}

// writeDecodeError answers a failed decodeJSON.
func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errEmptyBody) {
		WriteError(w, msgBodyMissing, http.StatusBadRequest)
		return
	}
	WriteError(w, msgBadBody, http.StatusBadRequest)
}

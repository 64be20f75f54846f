// Package httputil centralizes JSON response writing and domain error
// translation so every handler produces the same envelopes.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "filmorate/pkg/domain-errors"
)

// errorBody is the wire shape for failures: a category plus a detail message.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSON writes v with the given status. Encoding failures are swallowed;
// by the time Encode fails the status line is already on the wire.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into an HTTP status and the standard
// error envelope. Errors that carry no domain code are reported as internal
// without leaking their message.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	msg := "internal server error"

	var de *dErrors.Error
	if errors.As(err, &de) {
		msg = de.Message()
	}
	if code == dErrors.CodeInternal {
		msg = "internal server error"
	}

	WriteJSON(w, statusFor(code), errorBody{Error: string(code), Message: msg})
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

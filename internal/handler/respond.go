// Package handler exposes the HTTP surface of the stipend service.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	pkgerrors "stipend/pkg/errors"
)

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondValidationErrors(w http.ResponseWriter, errs map[string]string) {
	respondJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "Validation failed",
		"fields": errs,
	})
}

// respondServiceError maps the domain sentinels onto HTTP status codes.
func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, pkgerrors.ErrInvalidIdentifier),
		errors.Is(err, pkgerrors.ErrInvalidAmount),
		errors.Is(err, pkgerrors.ErrNotFuture):
		return http.StatusBadRequest
	case errors.Is(err, pkgerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, pkgerrors.ErrRecipientNotFound),
		errors.Is(err, pkgerrors.ErrPeriodNotFound):
		return http.StatusNotFound
	case errors.Is(err, pkgerrors.ErrAlreadyActive),
		errors.Is(err, pkgerrors.ErrNotActive),
		errors.Is(err, pkgerrors.ErrAlreadySettled),
		errors.Is(err, pkgerrors.ErrPeriodSettled),
		errors.Is(err, pkgerrors.ErrTooEarly),
		errors.Is(err, pkgerrors.ErrTransferFailed),
		errors.Is(err, pkgerrors.ErrInsufficientFunds):
		return http.StatusConflict
	case errors.Is(err, pkgerrors.ErrSystemPaused):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

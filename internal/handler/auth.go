package handler

import (
	"encoding/json"
	"net/http"

	"stipend/internal/auth"
	"stipend/pkg/validator"
)

type AuthHandler struct {
	service   *auth.Service
	validator *validator.Validator
	logger    Logger
}

func NewAuthHandler(service *auth.Service, val *validator.Validator, log Logger) *AuthHandler {
	return &AuthHandler{service: service, validator: val, logger: log}
}

// Login authenticates the configured admin and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.logger.Warn("Login failed", map[string]interface{}{"email": req.Email})
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

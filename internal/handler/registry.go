package handler

import (
	"encoding/json"
	"net/http"

	"stipend/internal/registry"
	"stipend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type RegistryHandler struct {
	service   *registry.Service
	validator *validator.Validator
	logger    Logger
}

func NewRegistryHandler(service *registry.Service, val *validator.Validator, log Logger) *RegistryHandler {
	return &RegistryHandler{service: service, validator: val, logger: log}
}

// AddRecipient activates a recipient on the roster.
func (h *RegistryHandler) AddRecipient(w http.ResponseWriter, r *http.Request) {
	var req registry.AddRecipientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	rec, err := h.service.AddRecipient(r.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to add recipient", map[string]interface{}{"error": err.Error(), "recipient_id": req.ID})
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, rec)
}

// UpdateRecipient changes the stipend amount and role of an active recipient.
func (h *RegistryHandler) UpdateRecipient(w http.ResponseWriter, r *http.Request) {
	id, ok := recipientID(w, r)
	if !ok {
		return
	}

	var req registry.UpdateRecipientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	rec, err := h.service.UpdateRecipient(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("Failed to update recipient", map[string]interface{}{"error": err.Error(), "recipient_id": id})
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

// RemoveRecipient deactivates a recipient without erasing its history.
func (h *RegistryHandler) RemoveRecipient(w http.ResponseWriter, r *http.Request) {
	id, ok := recipientID(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveRecipient(r.Context(), id); err != nil {
		h.logger.Error("Failed to remove recipient", map[string]interface{}{"error": err.Error(), "recipient_id": id})
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func recipientID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid recipient ID")
		return uuid.Nil, false
	}
	return id, true
}

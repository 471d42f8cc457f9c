package handler

import (
	"encoding/json"
	"net/http"

	"stipend/internal/system"
	"stipend/internal/treasury"
	"stipend/pkg/validator"

	"github.com/shopspring/decimal"
)

type AdminHandler struct {
	pause     system.PauseStore
	treasury  *treasury.Service
	validator *validator.Validator
	logger    Logger
}

func NewAdminHandler(pause system.PauseStore, tre *treasury.Service, val *validator.Validator, log Logger) *AdminHandler {
	return &AdminHandler{pause: pause, treasury: tre, validator: val, logger: log}
}

// Pause blocks all further disbursements until Resume is called.
// Roster and period configuration stay writable while paused.
func (h *AdminHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.setPaused(w, r, true)
}

// Resume lifts the disbursement pause.
func (h *AdminHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.setPaused(w, r, false)
}

func (h *AdminHandler) setPaused(w http.ResponseWriter, r *http.Request, paused bool) {
	if err := h.pause.SetPaused(r.Context(), paused); err != nil {
		h.logger.Error("Failed to update pause state", map[string]interface{}{"error": err.Error(), "paused": paused})
		respondError(w, http.StatusInternalServerError, "Failed to update pause state")
		return
	}

	h.logger.Info("Pause state changed", map[string]interface{}{"paused": paused})
	respondJSON(w, http.StatusOK, map[string]bool{"paused": paused})
}

// PauseState reports whether disbursement is currently paused.
func (h *AdminHandler) PauseState(w http.ResponseWriter, r *http.Request) {
	paused, err := h.pause.Paused(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to read pause state")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"paused": paused})
}

// Treasury returns the remaining disbursement allowance.
func (h *AdminHandler) Treasury(w http.ResponseWriter, r *http.Request) {
	t, err := h.treasury.Allowance(r.Context())
	if err != nil {
		h.logger.Error("Failed to read treasury", map[string]interface{}{"error": err.Error()})
		respondError(w, http.StatusInternalServerError, "Failed to read treasury")
		return
	}
	respondJSON(w, http.StatusOK, t)
}

type fundRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// FundTreasury credits the disbursement allowance.
func (h *AdminHandler) FundTreasury(w http.ResponseWriter, r *http.Request) {
	var req fundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	t, err := h.treasury.Fund(r.Context(), req.Amount)
	if err != nil {
		h.logger.Error("Failed to fund treasury", map[string]interface{}{"error": err.Error()})
		respondServiceError(w, err)
		return
	}

	h.logger.Info("Treasury funded", map[string]interface{}{"amount": req.Amount.String()})
	respondJSON(w, http.StatusOK, t)
}

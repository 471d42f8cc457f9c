package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"stipend/internal/period"
	"stipend/pkg/validator"

	"github.com/gorilla/mux"
)

type PeriodHandler struct {
	service   *period.Service
	validator *validator.Validator
	logger    Logger
}

func NewPeriodHandler(service *period.Service, val *validator.Validator, log Logger) *PeriodHandler {
	return &PeriodHandler{service: service, validator: val, logger: log}
}

type setPeriodRequest struct {
	DueAt time.Time `json:"due_at" validate:"required"`
}

// SetPeriod creates a payment period or reschedules an unsettled one.
func (h *PeriodHandler) SetPeriod(w http.ResponseWriter, r *http.Request) {
	id, ok := periodID(w, r)
	if !ok {
		return
	}

	var req setPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	p, err := h.service.SetPeriod(r.Context(), id, req.DueAt)
	if err != nil {
		h.logger.Error("Failed to set period", map[string]interface{}{"error": err.Error(), "period_id": id})
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, p)
}

// GetPeriod returns a period's schedule and settlement state.
func (h *PeriodHandler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	id, ok := periodID(w, r)
	if !ok {
		return
	}

	p, err := h.service.GetPeriod(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, p)
}

func periodID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id < 0 {
		respondError(w, http.StatusBadRequest, "Invalid period ID")
		return 0, false
	}
	return id, true
}

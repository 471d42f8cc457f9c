package handler

import (
	"encoding/json"
	"net/http"

	"stipend/internal/disburse"
	"stipend/pkg/validator"

	"github.com/google/uuid"
)

type DisburseHandler struct {
	service   *disburse.Service
	validator *validator.Validator
	logger    Logger
}

func NewDisburseHandler(service *disburse.Service, val *validator.Validator, log Logger) *DisburseHandler {
	return &DisburseHandler{service: service, validator: val, logger: log}
}

type disburseRequest struct {
	Candidates []uuid.UUID `json:"candidates"`
	Term       int         `json:"term" validate:"gte=0"`
}

// Disburse pays a batch of candidates for the given period. Any caller may
// trigger a disbursement; eligibility and at-most-once guarantees are
// enforced by the engine, not the transport.
func (h *DisburseHandler) Disburse(w http.ResponseWriter, r *http.Request) {
	id, ok := periodID(w, r)
	if !ok {
		return
	}

	var req disburseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	resp, err := h.service.ProcessBatch(r.Context(), &disburse.ProcessBatchRequest{
		PeriodID:   id,
		Candidates: req.Candidates,
		Term:       req.Term,
	})
	if err != nil {
		h.logger.Error("Disbursement failed", map[string]interface{}{
			"error":     err.Error(),
			"period_id": id,
		})
		respondServiceError(w, err)
		return
	}

	h.logger.Info("Disbursement processed", map[string]interface{}{
		"period_id": id,
		"paid":      len(resp.Payments),
		"settled":   resp.PeriodSettled,
	})

	respondJSON(w, http.StatusOK, resp)
}

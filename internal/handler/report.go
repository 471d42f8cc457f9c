package handler

import (
	"net/http"

	"stipend/internal/report"
)

type ReportHandler struct {
	service *report.Service
	logger  Logger
}

func NewReportHandler(service *report.Service, log Logger) *ReportHandler {
	return &ReportHandler{service: service, logger: log}
}

// ListRecipients returns the active roster in insertion order.
func (h *ReportHandler) ListRecipients(w http.ResponseWriter, r *http.Request) {
	recipients, err := h.service.ActiveRecipients(r.Context())
	if err != nil {
		h.logger.Error("Failed to list recipients", map[string]interface{}{"error": err.Error()})
		respondError(w, http.StatusInternalServerError, "Failed to list recipients")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"recipients": recipients,
		"total":      len(recipients),
	})
}

// PaymentHistory returns the per-period payment view for one recipient,
// including removed recipients whose history remains queryable.
func (h *ReportHandler) PaymentHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := recipientID(w, r)
	if !ok {
		return
	}

	entries, err := h.service.PaymentHistory(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"recipient_id": id,
		"history":      entries,
	})
}

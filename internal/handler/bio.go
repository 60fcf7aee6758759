package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bioqr/bioqr-go/internal/model"
	"github.com/bioqr/bioqr-go/internal/service"
)

// BioHandler handles HTTP requests for QR generation.
type BioHandler struct {
	service *service.BioService
}

// NewBioHandler creates a new BioHandler.
func NewBioHandler(svc *service.BioService) *BioHandler {
	return &BioHandler{service: svc}
}

// HandleGenerateQR handles POST /api/generate-qrcode requests.
func (h *BioHandler) HandleGenerateQR(w http.ResponseWriter, r *http.Request) {
	var req model.BioRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.GenerateQR(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		slog.Error("qr generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

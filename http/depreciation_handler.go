package http

import (
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"

	"depreciation-calculator/domain"
	"depreciation-calculator/service"
)

const maxBodyBytes = 1 << 20

type DepreciationHandler struct {
	service *service.DepreciationService
}

func NewDepreciationHandler(service *service.DepreciationService) *DepreciationHandler {
	return &DepreciationHandler{service: service}
}

type scheduleResponse struct {
	Method            domain.MethodCode    `json:"method"`
	MethodName        string               `json:"method_name"`
	Rows              []domain.ScheduleRow `json:"rows"`
	TotalDepreciation float64              `json:"total_depreciation"`
}

// decodeJSON enforces a JSON content type and a body size cap. It writes the
// error response itself and reports whether the handler may continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, r, http.StatusUnsupportedMediaType, "unsupported_media_type", "Content-Type must be application/json")
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.InfoContext(r.Context(), "decode request body", "err", err)
		writeError(w, r, http.StatusBadRequest, "invalid_body", "invalid request body")
		return false
	}
	return true
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsInvalidRequest(err) {
		slog.InfoContext(r.Context(), "invalid depreciation request", "err", err)
		writeError(w, r, http.StatusUnprocessableEntity, "invalid_request", domain.InvalidRequestMessage)
		return
	}
	slog.ErrorContext(r.Context(), "depreciation request failed", "err", err)
	writeError(w, r, http.StatusInternalServerError, "internal", "internal server error")
}

func (h *DepreciationHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var input domain.DepreciationInput
	if !decodeJSON(w, r, &input) {
		return
	}

	schedule, err := h.service.Calculate(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, scheduleResponse{
		Method:            schedule.Method,
		MethodName:        schedule.Method.String(),
		Rows:              schedule.Rows,
		TotalDepreciation: schedule.TotalDepreciation(),
	})
}

func (h *DepreciationHandler) Methods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.service.Methods())
}

package http

import (
	"net/http"

	"depreciation-calculator/service"
)

type CompareHandler struct {
	service *service.CompareService
}

func NewCompareHandler(service *service.CompareService) *CompareHandler {
	return &CompareHandler{service: service}
}

func (h *CompareHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var input service.CompareInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.Compare(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}

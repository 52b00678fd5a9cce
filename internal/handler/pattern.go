package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"office-key-tracker/internal/service"
)

type patternRequest struct {
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
}

func (h *Handler) GetPattern(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("key_bearer")

	pattern, err := h.patternService.GetPattern(name)
	if err != nil {
		if errors.Is(err, service.ErrUnknownEmployee) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Errorf("Failed to load pattern for %s: %v", name, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to load pattern")
		return
	}
	if pattern == nil {
		h.respondJSON(w, http.StatusOK, map[string]interface{}{"pattern": nil})
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"pattern": pattern})
}

// SetPattern обрабатывает PUT /api/patterns/{key_bearer} - полная замена шаблона
func (h *Handler) SetPattern(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("key_bearer")

	var req patternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	pattern, err := h.patternService.SetPattern(name,
		req.Monday, req.Tuesday, req.Wednesday, req.Thursday, req.Friday)
	if err != nil {
		if errors.Is(err, service.ErrUnknownEmployee) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Errorf("Failed to save pattern for %s: %v", name, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to save pattern")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"pattern": pattern})
}

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"office-key-tracker/internal/models"
	"office-key-tracker/internal/service"
)

type absenceRequest struct {
	KeyBearer string   `json:"key_bearer"`
	Dates     []string `json:"dates"`
}

// MarkAbsent обрабатывает POST /api/mark-absent: помечает даты и сразу
// оценивает каждую - письмо уходит в момент потери покрытия
func (h *Handler) MarkAbsent(w http.ResponseWriter, r *http.Request) {
	var req absenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.KeyBearer == "" || len(req.Dates) == 0 {
		h.respondError(w, http.StatusBadRequest, "Missing key_bearer or dates")
		return
	}

	var alertsSent []string
	for _, raw := range req.Dates {
		date, err := h.parseDate(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid date: %s", raw))
			return
		}

		if _, err := h.absenceService.MarkAbsent(req.KeyBearer, date); err != nil {
			if errors.Is(err, service.ErrUnknownEmployee) || errors.Is(err, service.ErrPastDate) {
				h.respondError(w, http.StatusBadRequest, err.Error())
				return
			}
			h.logger.Errorf("Failed to mark absence: %v", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to mark absence")
			return
		}

		result, err := h.alertService.Evaluate(date, "")
		if err != nil {
			h.logger.Errorf("Failed to evaluate %s: %v", raw, err)
			h.respondError(w, http.StatusInternalServerError, "Failed to evaluate coverage")
			return
		}
		if result.InitialSent {
			alertsSent = append(alertsSent, models.FormatDate(date))
		}
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"dates_marked": req.Dates,
		"alerts_sent":  alertsSent,
	})
}

// CancelAbsence обрабатывает POST /api/cancel-absence: снимает пометки и
// оценивает даты, чтобы поймать возврат покрытия ("change of plans")
func (h *Handler) CancelAbsence(w http.ResponseWriter, r *http.Request) {
	var req absenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.KeyBearer == "" || len(req.Dates) == 0 {
		h.respondError(w, http.StatusBadRequest, "Missing key_bearer or dates")
		return
	}

	var followupsSent []string
	for _, raw := range req.Dates {
		date, err := h.parseDate(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid date: %s", raw))
			return
		}

		if _, err := h.absenceService.CancelAbsence(req.KeyBearer, date); err != nil {
			h.logger.Errorf("Failed to cancel absence: %v", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to cancel absence")
			return
		}

		// Отменивший и есть тот, кто снова доступен
		result, err := h.alertService.Evaluate(date, req.KeyBearer)
		if err != nil {
			h.logger.Errorf("Failed to evaluate %s: %v", raw, err)
			h.respondError(w, http.StatusInternalServerError, "Failed to evaluate coverage")
			return
		}
		if result.FollowupSent {
			followupsSent = append(followupsSent, models.FormatDate(date))
		}
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"dates_cancelled": req.Dates,
		"followups_sent":  followupsSent,
	})
}

// Absences обрабатывает GET /api/absences - календарь будущих отсутствий
func (h *Handler) Absences(w http.ResponseWriter, r *http.Request) {
	calendar, err := h.absenceService.Calendar()
	if err != nil {
		h.logger.Errorf("Failed to load calendar: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to load absences")
		return
	}
	h.respondJSON(w, http.StatusOK, calendar)
}

// MyAbsences обрабатывает GET /api/my-absences/{key_bearer}
func (h *Handler) MyAbsences(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("key_bearer")

	dates, err := h.absenceService.ListUpcomingFor(name)
	if err != nil {
		if errors.Is(err, service.ErrUnknownEmployee) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Errorf("Failed to load absences for %s: %v", name, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to load absences")
		return
	}
	if dates == nil {
		dates = []string{}
	}
	h.respondJSON(w, http.StatusOK, dates)
}

// Status обрабатывает GET /api/status/{date} - кто доступен в этот день
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("date")
	date, err := h.parseDate(raw)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid date: %s", raw))
		return
	}

	bearers, err := h.employeeService.GetKeyBearers()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to load key bearers")
		return
	}

	absentNames, err := h.absenceService.ListAbsencesFor(date)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to load absences")
		return
	}
	absentSet := make(map[string]bool, len(absentNames))
	for _, name := range absentNames {
		absentSet[name] = true
	}

	status := make([]map[string]interface{}, 0, len(bearers))
	absentCount := 0
	for _, bearer := range bearers {
		absent := absentSet[bearer.Name]
		if absent {
			absentCount++
		}
		status = append(status, map[string]interface{}{
			"name":   bearer.Name,
			"absent": absent,
		})
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"date":         models.FormatDate(date),
		"key_bearers":  status,
		"all_absent":   len(bearers) > 0 && absentCount == len(bearers),
		"absent_count": absentCount,
		"total_count":  len(bearers),
	})
}

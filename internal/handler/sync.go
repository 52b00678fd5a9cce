package handler

import (
	"errors"
	"net/http"

	"office-key-tracker/internal/models"
	"office-key-tracker/internal/service"
)

// SyncMaterialize обрабатывает POST /api/sync/materialize.
// Внешний cron дергает его ежедневно; сама задача срабатывает только в
// свой триггерный день и ровно один раз на целевой месяц. После
// материализации затронутые даты прогоняются через машину оповещений -
// полностью непокрытая дата из шаблонов тоже должна дать письмо.
func (h *Handler) SyncMaterialize(w http.ResponseWriter, r *http.Request) {
	today := h.clock.Today()

	dates, err := h.patternService.MaterializeNextMonth(today)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyApplied) {
			h.respondJSON(w, http.StatusOK, map[string]interface{}{"applied": false, "reason": "already_applied"})
			return
		}
		h.logger.Errorf("Materialization failed: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Materialization failed")
		return
	}
	if dates == nil && today.Day() != service.MaterializeTriggerDay {
		h.respondJSON(w, http.StatusOK, map[string]interface{}{"applied": false, "reason": "not_trigger_day"})
		return
	}

	var written, alertsSent []string
	for _, date := range dates {
		written = append(written, models.FormatDate(date))
		result, err := h.alertService.Evaluate(date, "")
		if err != nil {
			h.logger.Errorf("Failed to evaluate %s after materialization: %v", models.FormatDate(date), err)
			continue
		}
		if result.InitialSent {
			alertsSent = append(alertsSent, models.FormatDate(date))
		}
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"applied":       true,
		"dates_written": written,
		"alerts_sent":   alertsSent,
	})
}

// SyncPrune обрабатывает POST /api/sync/prune - чистка записей старше
// начала прошлого месяца
func (h *Handler) SyncPrune(w http.ResponseWriter, r *http.Request) {
	today := h.clock.Today()

	deleted, err := h.patternService.PruneOld(today)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyApplied) {
			h.respondJSON(w, http.StatusOK, map[string]interface{}{"applied": false, "reason": "already_applied"})
			return
		}
		h.logger.Errorf("Prune failed: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Prune failed")
		return
	}
	if today.Day() != service.PruneTriggerDay {
		h.respondJSON(w, http.StatusOK, map[string]interface{}{"applied": false, "reason": "not_trigger_day"})
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"applied": true,
		"deleted": deleted,
	})
}

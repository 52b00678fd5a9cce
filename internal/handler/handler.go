package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"office-key-tracker/internal/service"
	"office-key-tracker/pkg/clock"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	employeeService *service.EmployeeService
	absenceService  *service.AbsenceService
	patternService  *service.PatternService
	alertService    *service.AlertService
	clock           clock.Clock
	location        *time.Location
	logger          *logrus.Logger
}

func NewHandler(
	employeeService *service.EmployeeService,
	absenceService *service.AbsenceService,
	patternService *service.PatternService,
	alertService *service.AlertService,
	clk clock.Clock,
	location *time.Location,
) *Handler {
	return &Handler{
		employeeService: employeeService,
		absenceService:  absenceService,
		patternService:  patternService,
		alertService:    alertService,
		clock:           clk,
		location:        location,
		logger:          logrus.New(),
	}
}

// Routes собирает все маршруты API
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/mark-absent", h.MarkAbsent)
	mux.HandleFunc("POST /api/cancel-absence", h.CancelAbsence)
	mux.HandleFunc("GET /api/absences", h.Absences)
	mux.HandleFunc("GET /api/my-absences/{key_bearer}", h.MyAbsences)
	mux.HandleFunc("GET /api/status/{date}", h.Status)

	mux.HandleFunc("GET /api/bearers", h.ListBearers)
	mux.HandleFunc("POST /api/bearers", h.CreateBearer)
	mux.HandleFunc("PUT /api/bearers/{name}", h.UpdateBearer)
	mux.HandleFunc("DELETE /api/bearers/{name}", h.DeleteBearer)

	mux.HandleFunc("GET /api/patterns/{key_bearer}", h.GetPattern)
	mux.HandleFunc("PUT /api/patterns/{key_bearer}", h.SetPattern)

	// Точки входа для внешнего планировщика (дергаются ежедневно)
	mux.HandleFunc("POST /api/sync/materialize", h.SyncMaterialize)
	mux.HandleFunc("POST /api/sync/prune", h.SyncPrune)

	mux.HandleFunc("GET /health", h.Health)

	return mux
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// parseDate разбирает дату формата YYYY-MM-DD в часовом поясе системы
func (h *Handler) parseDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, h.location)
}

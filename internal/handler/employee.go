package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"office-key-tracker/internal/service"
)

type bearerRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	HasKey bool   `json:"has_key"`
}

func (h *Handler) ListBearers(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.GetAllEmployees()
	if err != nil {
		h.logger.Errorf("Failed to load employees: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to load employees")
		return
	}
	h.respondJSON(w, http.StatusOK, employees)
}

func (h *Handler) CreateBearer(w http.ResponseWriter, r *http.Request) {
	var req bearerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	employee, err := h.employeeService.CreateEmployee(req.Name, req.Email, req.HasKey)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmployee) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Errorf("Failed to create employee: %v", err)
		h.respondError(w, http.StatusConflict, "Failed to create employee")
		return
	}
	h.respondJSON(w, http.StatusCreated, employee)
}

func (h *Handler) UpdateBearer(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var req bearerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	employee, err := h.employeeService.UpdateEmployee(name, req.Email, req.HasKey)
	if err != nil {
		if errors.Is(err, service.ErrUnknownEmployee) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		if errors.Is(err, service.ErrInvalidEmployee) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Errorf("Failed to update employee: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to update employee")
		return
	}
	h.respondJSON(w, http.StatusOK, employee)
}

func (h *Handler) DeleteBearer(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	if err := h.employeeService.DeleteEmployee(name); err != nil {
		if errors.Is(err, service.ErrUnknownEmployee) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Errorf("Failed to delete employee: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to delete employee")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

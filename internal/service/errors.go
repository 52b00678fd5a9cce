package service

import "errors"

// Ошибки, которые обработчики отдают клиенту как ошибки валидации.
// Все остальное считается ошибкой хранилища и подлежит повтору.
var (
	ErrUnknownEmployee = errors.New("employee is not registered")
	ErrPastDate        = errors.New("date is in the past")
	ErrInvalidEmployee = errors.New("employee name and email are required")

	// ErrAlreadyApplied - периодическая задача за этот период уже выполнена.
	// Вызывающий трактует это как успешный no-op.
	ErrAlreadyApplied = errors.New("sync job already applied for this period")
)

package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isUniqueConstraintError определяет нарушение уникального индекса.
// SQLite не дает типизированной ошибки через GORM, поэтому проверяем
// и gorm.ErrDuplicatedKey, и текст ошибки драйвера.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint failed")
}

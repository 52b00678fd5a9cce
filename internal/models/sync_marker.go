package models

import (
	"fmt"
	"time"
)

// SyncMarker - отметка о выполнении периодической задачи за период.
// Уникальный SyncKey гарантирует, что задача применится не более одного
// раза за период, даже при повторном запуске в тот же день.
type SyncMarker struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SyncKey   string    `gorm:"uniqueIndex;not null" json:"sync_key"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (SyncMarker) TableName() string {
	return "sync_markers"
}

// Виды периодических задач
const (
	SyncJobMaterialize = "materialize"
	SyncJobPrune       = "prune"
)

// SyncKeyFor строит ключ задачи за конкретный месяц, например "materialize:2024-07"
func SyncKeyFor(job string, year int, month time.Month) string {
	return fmt.Sprintf("%s:%04d-%02d", job, year, int(month))
}

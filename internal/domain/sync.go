package domain

import "time"

// SyncReport - итог одного прогона синхронизации с внешним источником
type SyncReport struct {
	RunID      string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Duration   time.Duration `json:"duration_ms"`

	Fetched  int `json:"fetched"`  // записей получено от источника
	Created  int `json:"created"`  // новых записей
	Updated  int `json:"updated"`  // обновлённых записей
	Deleted  int `json:"deleted"`  // удалённых при реконсиляции
	Rejected int `json:"rejected"` // отклонено валидацией координат
	Inactive int `json:"inactive"` // отфильтровано как неактивные
}

// SyncStatus - текущее состояние синхронизации для статусного эндпоинта
type SyncStatus struct {
	InProgress bool        `json:"in_progress"`
	LastReport *SyncReport `json:"last_report,omitempty"`
}

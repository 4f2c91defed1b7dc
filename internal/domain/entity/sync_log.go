package entity

import (
	"encoding/json"
	"time"
)

// Tipos de sincronización (origen del procesamiento).
const (
	SyncTypeWebhook    = "webhook"
	SyncTypeManualSync = "manual_sync"
	SyncTypeCron       = "cron"
	SyncTypeReplay     = "replay"
)

// Estados finales de un intento de procesamiento.
const (
	SyncStatusSuccess = "success"
	SyncStatusPartial = "partial"
	SyncStatusError   = "error"
)

// SyncLog una fila por intento de procesamiento de una venta. Se escribe una sola vez.
type SyncLog struct {
	ID                 string
	UserID             string
	SyncType           string
	Status             string
	SaleID             string
	OrderNumber        string
	SaleDate           *time.Time
	ItemsCount         int
	IngredientsUpdated int
	Errors             []ProcessingError
	ErrorMessage       string
	RequestPayload     json.RawMessage
	CreatedAt          time.Time
}

// MarksProcessed indica si el log bloquea un reprocesamiento (hubo escrituras de stock posibles).
func (l *SyncLog) MarksProcessed() bool {
	return l.Status == SyncStatusSuccess || l.Status == SyncStatusPartial
}

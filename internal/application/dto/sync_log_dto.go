package dto

import (
	"time"

	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
)

// SyncLogResponse fila del historial de sincronización.
type SyncLogResponse struct {
	ID                 string                   `json:"id"`
	SyncType           string                   `json:"sync_type"`
	Status             string                   `json:"status"`
	SaleID             string                   `json:"lightspeed_sale_id"`
	OrderNumber        string                   `json:"lightspeed_order_number,omitempty"`
	SaleDate           *time.Time               `json:"sale_date,omitempty"`
	ItemsCount         int                      `json:"items_count"`
	IngredientsUpdated int                      `json:"ingredients_updated"`
	Errors             []entity.ProcessingError `json:"errors,omitempty"`
	ErrorMessage       string                   `json:"error_message,omitempty"`
	CreatedAt          time.Time                `json:"created_at"`
}

// SyncLogQuery filtros de GET /api/lightspeed/sync-logs.
type SyncLogQuery struct {
	Limit  int    `query:"limit" validate:"min=0,max=500"`
	Status string `query:"status" validate:"omitempty,oneof=success partial error"`
	SaleID string `query:"sale_id"`
}

// NewSyncLogResponse convierte la entidad al DTO.
func NewSyncLogResponse(l *entity.SyncLog) SyncLogResponse {
	return SyncLogResponse{
		ID:                 l.ID,
		SyncType:           l.SyncType,
		Status:             l.Status,
		SaleID:             l.SaleID,
		OrderNumber:        l.OrderNumber,
		SaleDate:           l.SaleDate,
		ItemsCount:         l.ItemsCount,
		IngredientsUpdated: l.IngredientsUpdated,
		Errors:             l.Errors,
		ErrorMessage:       l.ErrorMessage,
		CreatedAt:          l.CreatedAt,
	}
}

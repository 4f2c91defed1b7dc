package dto

import (
	"time"

	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockAlertResponse alerta de stock expuesta por la API.
type StockAlertResponse struct {
	ID           string          `json:"id"`
	IngredientID string          `json:"ingredient_id"`
	AlertType    string          `json:"alert_type"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	IsResolved   bool            `json:"is_resolved"`
	ResolvedAt   *time.Time      `json:"resolved_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// StockAlertQuery filtros de GET /api/lightspeed/stock-alerts.
type StockAlertQuery struct {
	Resolved bool   `query:"resolved"`
	Type     string `query:"type" validate:"omitempty,oneof=low_stock out_of_stock negative_stock"`
	Limit    int    `query:"limit" validate:"min=0,max=500"`
}

// NewStockAlertResponse convierte la entidad al DTO.
func NewStockAlertResponse(a *entity.StockAlert) StockAlertResponse {
	return StockAlertResponse{
		ID:           a.ID,
		IngredientID: a.IngredientID,
		AlertType:    a.AlertType,
		CurrentStock: a.CurrentStock,
		MinimumStock: a.MinimumStock,
		IsResolved:   a.IsResolved,
		ResolvedAt:   a.ResolvedAt,
		CreatedAt:    a.CreatedAt,
	}
}

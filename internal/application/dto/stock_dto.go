package dto

import (
	"time"

	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para PATCH /api/stock/:ingredientId/adjust.
// Quantity positivo = entrada, negativo = retiro.
type AdjustStockRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	Notes    string          `json:"notes,omitempty" validate:"max=500"`
}

// AdjustStockResponse resultado del ajuste manual.
type AdjustStockResponse struct {
	Ingredient       IngredientResponse  `json:"ingredient"`
	PreviousQuantity decimal.Decimal     `json:"previous_quantity"`
	NewQuantity      decimal.Decimal     `json:"new_quantity"`
	Adjustment       decimal.Decimal     `json:"adjustment"`
	Movement         StockMovementDTO    `json:"movement"`
	Alert            *StockAlertResponse `json:"alert,omitempty"`
}

// IngredientResponse ingrediente con su stock actual.
type IngredientResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Unit         string           `json:"unit"`
	CurrentStock decimal.Decimal  `json:"current_stock"`
	MinimumStock *decimal.Decimal `json:"minimum_stock,omitempty"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// StockMovementDTO movimiento de stock expuesto por la API.
type StockMovementDTO struct {
	ID             string          `json:"id"`
	IngredientID   string          `json:"ingredient_id"`
	MovementType   string          `json:"movement_type"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
	StockBefore    decimal.Decimal `json:"stock_before"`
	StockAfter     decimal.Decimal `json:"stock_after"`
	ReferenceType  string          `json:"reference_type,omitempty"`
	ReferenceID    string          `json:"reference_id,omitempty"`
	ReferenceOrder string          `json:"reference_order,omitempty"`
	SyncLogID      string          `json:"sync_log_id,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// RestockSuggestionDTO ingrediente en o bajo su umbral con la cantidad sugerida de pedido.
type RestockSuggestionDTO struct {
	IngredientID      string          `json:"ingredient_id"`
	IngredientName    string          `json:"ingredient_name"`
	Unit              string          `json:"unit"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	MinimumStock      decimal.Decimal `json:"minimum_stock"`
	IdealStock        decimal.Decimal `json:"ideal_stock"`         // MinimumStock * 1.5
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"` // IdealStock - CurrentStock
	Priority          int             `json:"priority"`            // 1 = más urgente
}

// NewIngredientResponse convierte la entidad al DTO.
func NewIngredientResponse(i *entity.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:           i.ID,
		Name:         i.Name,
		Unit:         i.Unit,
		CurrentStock: i.CurrentStock,
		MinimumStock: i.MinimumStock,
		UpdatedAt:    i.UpdatedAt,
	}
}

// NewStockMovementDTO convierte la entidad al DTO.
func NewStockMovementDTO(m *entity.StockMovement) StockMovementDTO {
	return StockMovementDTO{
		ID:             m.ID,
		IngredientID:   m.IngredientID,
		MovementType:   m.MovementType,
		QuantityChange: m.QuantityChange,
		StockBefore:    m.StockBefore,
		StockAfter:     m.StockAfter,
		ReferenceType:  m.ReferenceType,
		ReferenceID:    m.ReferenceID,
		ReferenceOrder: m.ReferenceOrder,
		SyncLogID:      m.SyncLogID,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
	}
}

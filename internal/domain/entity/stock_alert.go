package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de alerta de stock, en orden de severidad creciente.
const (
	AlertTypeLowStock      = "low_stock"
	AlertTypeOutOfStock    = "out_of_stock"
	AlertTypeNegativeStock = "negative_stock"
)

// StockAlert alerta de stock de un ingrediente. Solo se resuelve por acción del usuario.
type StockAlert struct {
	ID           string
	UserID       string
	IngredientID string
	AlertType    string
	CurrentStock decimal.Decimal
	MinimumStock decimal.Decimal
	IsResolved   bool
	ResolvedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeSale             = "sale"
	MovementTypeManualAdjustment = "manual_adjustment"
)

// Tipos de referencia de un movimiento.
const (
	ReferenceLightspeedSale = "lightspeed_sale"
	ReferenceManual         = "manual"
)

// StockMovement registro inmutable de un cambio de stock de un ingrediente.
type StockMovement struct {
	ID             string
	UserID         string
	IngredientID   string
	MovementType   string
	QuantityChange decimal.Decimal // negativo = salida, positivo = entrada
	StockBefore    decimal.Decimal
	StockAfter     decimal.Decimal
	ReferenceType  string
	ReferenceID    string // saleID de Lightspeed
	ReferenceOrder string
	SyncLogID      string // log de sincronización que explica el movimiento
	Notes          string
	CreatedAt      time.Time
}

package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta en el POS. Solo las ventas completadas descuentan stock.
const (
	SaleStatusCompleted = "completed"
	SaleStatusPending   = "pending"
	SaleStatusCancelled = "cancelled"
	SaleStatusReturned  = "returned"
)

// Sale representa una venta recibida del POS (Lightspeed). Es inmutable para este sistema.
type Sale struct {
	ID          string
	OrderNumber string
	Status      string // vacío se interpreta como completed
	CreatedAt   time.Time
	Lines       []SaleLine
	Raw         json.RawMessage // payload original, se guarda en el log de sincronización
}

// SaleLine es una línea de venta: artículo vendido y cantidad.
type SaleLine struct {
	LineID      string
	ItemRef     string // SKU / código del artículo en el POS
	Description string // nombre del artículo
	Quantity    decimal.Decimal
	UnitPrice   *decimal.Decimal
}

// IsCompleted indica si la venta puede descontar stock.
func (s *Sale) IsCompleted() bool {
	return s.Status == "" || s.Status == SaleStatusCompleted
}

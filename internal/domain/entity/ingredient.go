package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuantityScale decimales con que se guardan las cantidades de stock (NUMERIC(14,4)).
const QuantityScale int32 = 4

// RoundQuantity lleva una cantidad a la escala de almacenamiento.
func RoundQuantity(q decimal.Decimal) decimal.Decimal { return q.Round(QuantityScale) }

// Ingredient es un producto en stock de un usuario. CurrentStock es el único estado
// mutable que escribe la sincronización de ventas.
type Ingredient struct {
	ID           string
	UserID       string
	Name         string
	Unit         string
	CurrentStock decimal.Decimal
	MinimumStock *decimal.Decimal // umbral de stock bajo; nil = sin umbral
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Threshold devuelve el umbral de stock bajo (cero si no está definido).
func (i *Ingredient) Threshold() decimal.Decimal {
	if i.MinimumStock == nil {
		return decimal.Zero
	}
	return *i.MinimumStock
}

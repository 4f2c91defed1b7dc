package stock

import (
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// EvaluateAlert decide qué alerta corresponde al nuevo nivel de stock (servicio de dominio).
// Precedencia: negativo > agotado > bajo. Devuelve "" si no hay alerta.
//
//	newQty < 0                  → negative_stock
//	newQty == 0                 → out_of_stock
//	0 < newQty <= threshold     → low_stock
func EvaluateAlert(newQty, threshold decimal.Decimal) string {
	switch {
	case newQty.IsNegative():
		return entity.AlertTypeNegativeStock
	case newQty.IsZero():
		return entity.AlertTypeOutOfStock
	case newQty.LessThanOrEqual(threshold):
		return entity.AlertTypeLowStock
	}
	return ""
}

package stock

import "github.com/shopspring/decimal"

// restockFactor stock ideal = umbral × 1.5
var restockFactor = decimal.NewFromFloat(1.5)

// RestockQuantity cantidad sugerida de pedido para volver al stock ideal.
// SugeridoPedido = (Umbral * 1.5) - StockActual, nunca negativo.
func RestockQuantity(current, threshold decimal.Decimal) (ideal, suggested decimal.Decimal) {
	ideal = threshold.Mul(restockFactor)
	suggested = ideal.Sub(current)
	if suggested.LessThan(decimal.Zero) {
		suggested = decimal.Zero
	}
	return ideal, suggested
}

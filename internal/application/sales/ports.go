package sales

import (
	"context"

	"github.com/jhoicas/yieldfood-api/internal/application/inventory"
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockAdjuster ajuste atómico de stock por ingrediente (lo implementa *inventory.StockLedger).
type StockAdjuster interface {
	Adjust(ctx context.Context, in inventory.AdjustInput) (*inventory.AdjustResult, error)
}

// AlertEvaluator evalúa el stock tras un ajuste (lo implementa *inventory.AlertGenerator).
type AlertEvaluator interface {
	Evaluate(ctx context.Context, ing *entity.Ingredient, newQty decimal.Decimal) (*entity.StockAlert, error)
}

// SaleLocker serializa el procesamiento de una misma venta entre peticiones concurrentes.
// Lock bloquea hasta obtener el candado o hasta que ctx expire; la función devuelta lo libera.
type SaleLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

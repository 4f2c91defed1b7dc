package sales

import (
	"context"

	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/domain/repository"
)

// DeduplicationGuard indica si una venta ya fue procesada para un usuario.
// Cuenta un log success/partial o cualquier movimiento de stock de la venta: un intento en
// error no descontó nada y puede reintentarse, pero si el log no llegó a guardarse los
// movimientos ya confirmados siguen bloqueando el reproceso.
type DeduplicationGuard struct {
	logs      repository.SyncLogRepository
	movements repository.StockMovementRepository
}

// NewDeduplicationGuard construye el guard.
func NewDeduplicationGuard(logs repository.SyncLogRepository, movements repository.StockMovementRepository) *DeduplicationGuard {
	return &DeduplicationGuard{logs: logs, movements: movements}
}

// HasBeenProcessed consulta el historial; no escribe nada.
func (g *DeduplicationGuard) HasBeenProcessed(ctx context.Context, userID, saleID string) (bool, error) {
	existing, err := g.logs.FindProcessed(ctx, userID, saleID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return true, nil
	}
	return g.movements.ExistsForReference(ctx, userID, entity.ReferenceLightspeedSale, saleID)
}

package repository

import (
	"context"

	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
)

// StockMovementFilter filtros de listado de movimientos.
type StockMovementFilter struct {
	IngredientID string
	ReferenceID  string
	Limit        int
	Offset       int
}

// StockMovementRepository define el puerto de persistencia para movimientos de stock (solo inserción).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	List(ctx context.Context, userID string, filter StockMovementFilter) ([]*entity.StockMovement, error)
	// ExistsForReference indica si el usuario ya tiene movimientos con esa referencia.
	ExistsForReference(ctx context.Context, userID, referenceType, referenceID string) (bool, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// IngredientRepository define el puerto para consultar y actualizar el stock por usuario+ingrediente.
// GetForUpdate y UpdateStock se usan dentro de una transacción (ver inventory.TxRunner).
type IngredientRepository interface {
	GetByID(ctx context.Context, userID, ingredientID string) (*entity.Ingredient, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, userID, ingredientID string) (*entity.Ingredient, error)
	UpdateStock(ctx context.Context, userID, ingredientID string, quantity decimal.Decimal) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Ingredient, error)
	// ListAtOrBelowThreshold ingredientes con umbral definido y stock <= umbral, mayor déficit primero.
	ListAtOrBelowThreshold(ctx context.Context, userID string) ([]*entity.Ingredient, error)
}

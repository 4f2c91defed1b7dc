package repository

import (
	"context"

	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
)

// RecipeRepository lectura de recetas activas (con ingredientes) para la descomposición de ventas.
type RecipeRepository interface {
	// GetActiveBySKU devuelve nil, nil si no hay receta activa con ese SKU.
	GetActiveBySKU(ctx context.Context, userID, sku string) (*entity.Recipe, error)
	ListActiveByUser(ctx context.Context, userID string) ([]*entity.Recipe, error)
}

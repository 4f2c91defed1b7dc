package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe es una receta (plato vendible) de un usuario.
// SKU es el mapeo explícito con el artículo del POS; Servings es el número de porciones por tanda.
type Recipe struct {
	ID          string
	UserID      string
	Name        string
	SKU         string
	Servings    decimal.Decimal
	IsActive    bool
	Ingredients []RecipeIngredient
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecipeIngredient cantidad de un ingrediente por tanda de receta.
// IngredientID vacío = ingrediente libre (sin stock asociado).
type RecipeIngredient struct {
	IngredientID   string
	IngredientName string
	Quantity       decimal.Decimal
	Unit           string
}

// PortionFactor devuelve el divisor de porciones (1 si la receta no lo define).
func (r *Recipe) PortionFactor() decimal.Decimal {
	if r.Servings.LessThanOrEqual(decimal.Zero) {
		return decimal.NewFromInt(1)
	}
	return r.Servings
}

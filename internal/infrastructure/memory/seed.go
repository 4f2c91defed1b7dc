package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Seed datos iniciales en JSON para correr el procesador sin base de datos (CLI --memory).
type Seed struct {
	Ingredients []SeedIngredient `json:"ingredients"`
	Recipes     []SeedRecipe     `json:"recipes"`
}

type SeedIngredient struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Unit         string           `json:"unit"`
	CurrentStock decimal.Decimal  `json:"current_stock"`
	MinimumStock *decimal.Decimal `json:"minimum_stock,omitempty"`
}

type SeedRecipe struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	SKU         string                 `json:"sku"`
	Servings    decimal.Decimal        `json:"servings"`
	Inactive    bool                   `json:"inactive,omitempty"`
	Ingredients []SeedRecipeIngredient `json:"ingredients"`
}

type SeedRecipeIngredient struct {
	IngredientID string          `json:"ingredient_id"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
}

// LoadSeed lee el JSON y carga sus filas en el store a nombre de userID.
func (s *Store) LoadSeed(r io.Reader, userID string) error {
	var seed Seed
	if err := json.NewDecoder(r).Decode(&seed); err != nil {
		return fmt.Errorf("seed inválido: %w", err)
	}
	now := time.Now()
	for _, si := range seed.Ingredients {
		s.PutIngredient(&entity.Ingredient{
			ID:           si.ID,
			UserID:       userID,
			Name:         si.Name,
			Unit:         si.Unit,
			CurrentStock: si.CurrentStock,
			MinimumStock: si.MinimumStock,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	for _, sr := range seed.Recipes {
		rec := &entity.Recipe{
			ID:        sr.ID,
			UserID:    userID,
			Name:      sr.Name,
			SKU:       sr.SKU,
			Servings:  sr.Servings,
			IsActive:  !sr.Inactive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		for _, ri := range sr.Ingredients {
			rec.Ingredients = append(rec.Ingredients, entity.RecipeIngredient{
				IngredientID:   ri.IngredientID,
				IngredientName: ri.Name,
				Quantity:       ri.Quantity,
				Unit:           ri.Unit,
			})
		}
		s.PutRecipe(rec)
	}
	return nil
}

package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/yieldfood-api/internal/domain"
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Origen de la resolución de una línea a receta.
const (
	MatchedBySKU  = "sku"
	MatchedByName = "name"
)

// IngredientQuantity cantidad de un ingrediente necesaria para una línea de venta.
type IngredientQuantity struct {
	IngredientID   string
	IngredientName string
	QuantityNeeded decimal.Decimal
	Unit           string
}

// RecipeDecomposition receta resuelta para una línea y sus ingredientes escalados.
type RecipeDecomposition struct {
	LineID       string
	ItemRef      string
	RecipeID     string
	RecipeName   string
	MatchedBy    string
	QuantitySold decimal.Decimal
	Ingredients  []IngredientQuantity
}

// RecipeDecomposer resuelve el artículo vendido a una receta y la expande en ingredientes.
type RecipeDecomposer struct {
	recipes repository.RecipeRepository
}

// NewRecipeDecomposer construye el descomponedor.
func NewRecipeDecomposer(recipes repository.RecipeRepository) *RecipeDecomposer {
	return &RecipeDecomposer{recipes: recipes}
}

// Decompose resuelve la línea (mapeo explícito por SKU, luego nombre normalizado) y devuelve
// Quantity × line.Quantity / Servings por ingrediente, redondeado a entity.QuantityScale.
// Los ingredientes libres (sin ID) se omiten.
// Errores: domain.ErrRecipeNotFound, domain.ErrRecipeAmbiguous o el error del almacén.
func (d *RecipeDecomposer) Decompose(ctx context.Context, userID string, line entity.SaleLine) (*RecipeDecomposition, error) {
	recipe, matchedBy, err := d.resolve(ctx, userID, line)
	if err != nil {
		return nil, err
	}

	servings := recipe.PortionFactor()
	out := &RecipeDecomposition{
		LineID:       line.LineID,
		ItemRef:      line.ItemRef,
		RecipeID:     recipe.ID,
		RecipeName:   recipe.Name,
		MatchedBy:    matchedBy,
		QuantitySold: line.Quantity,
		Ingredients:  make([]IngredientQuantity, 0, len(recipe.Ingredients)),
	}
	for _, ri := range recipe.Ingredients {
		if ri.IngredientID == "" {
			continue
		}
		out.Ingredients = append(out.Ingredients, IngredientQuantity{
			IngredientID:   ri.IngredientID,
			IngredientName: ri.IngredientName,
			QuantityNeeded: ri.Quantity.Mul(line.Quantity).DivRound(servings, entity.QuantityScale),
			Unit:           ri.Unit,
		})
	}
	return out, nil
}

func (d *RecipeDecomposer) resolve(ctx context.Context, userID string, line entity.SaleLine) (*entity.Recipe, string, error) {
	if sku := strings.TrimSpace(line.ItemRef); sku != "" {
		recipe, err := d.recipes.GetActiveBySKU(ctx, userID, sku)
		if err != nil {
			return nil, "", err
		}
		if recipe != nil {
			return recipe, MatchedBySKU, nil
		}
	}

	name := line.Description
	if strings.TrimSpace(name) == "" {
		name = line.ItemRef
	}
	key := NormalizeName(name)
	if key == "" {
		return nil, "", fmt.Errorf("%w: línea sin referencia", domain.ErrRecipeNotFound)
	}
	recipes, err := d.recipes.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	var match *entity.Recipe
	for _, r := range recipes {
		if NormalizeName(r.Name) != key {
			continue
		}
		if match != nil {
			return nil, "", fmt.Errorf("%w: %q", domain.ErrRecipeAmbiguous, name)
		}
		match = r
	}
	if match == nil {
		return nil, "", fmt.Errorf("%w: %q", domain.ErrRecipeNotFound, name)
	}
	return match, MatchedByName, nil
}

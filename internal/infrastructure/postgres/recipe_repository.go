package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo lectura de recetas activas con sus ingredientes.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// GetActiveBySKU devuelve nil, nil si no hay receta activa con ese SKU.
func (r *RecipeRepo) GetActiveBySKU(ctx context.Context, userID, sku string) (*entity.Recipe, error) {
	query := `
		SELECT id, user_id, name, COALESCE(sku, ''), servings, is_active, created_at, updated_at
		FROM recipes
		WHERE user_id = $1 AND btrim(sku) = $2 AND is_active
		ORDER BY updated_at DESC
		LIMIT 1`
	var rec entity.Recipe
	err := r.q.QueryRow(ctx, query, userID, sku).Scan(
		&rec.ID, &rec.UserID, &rec.Name, &rec.SKU, &rec.Servings, &rec.IsActive, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe by sku: %w", err)
	}
	recipes := []*entity.Recipe{&rec}
	if err := r.loadIngredients(ctx, recipes); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecipeRepo) ListActiveByUser(ctx context.Context, userID string) ([]*entity.Recipe, error) {
	query := `
		SELECT id, user_id, name, COALESCE(sku, ''), servings, is_active, created_at, updated_at
		FROM recipes
		WHERE user_id = $1 AND is_active
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Recipe, 0)
	for rows.Next() {
		var rec entity.Recipe
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.SKU, &rec.Servings, &rec.IsActive, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadIngredients(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// loadIngredients carga los ingredientes de todas las recetas en una sola consulta.
func (r *RecipeRepo) loadIngredients(ctx context.Context, recipes []*entity.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}
	ids := make([]string, 0, len(recipes))
	byID := make(map[string]*entity.Recipe, len(recipes))
	for _, rec := range recipes {
		ids = append(ids, rec.ID)
		byID[rec.ID] = rec
	}
	query := `
		SELECT recipe_id, COALESCE(ingredient_id, ''), ingredient_name, quantity, unit
		FROM recipe_ingredients
		WHERE recipe_id = ANY($1)
		ORDER BY recipe_id, position, id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list recipe ingredients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var recipeID string
		var ri entity.RecipeIngredient
		if err := rows.Scan(&recipeID, &ri.IngredientID, &ri.IngredientName, &ri.Quantity, &ri.Unit); err != nil {
			return fmt.Errorf("scan recipe ingredient: %w", err)
		}
		if rec, ok := byID[recipeID]; ok {
			rec.Ingredients = append(rec.Ingredients, ri)
		}
	}
	return rows.Err()
}

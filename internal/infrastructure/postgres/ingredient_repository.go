package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación de IngredientRepository sobre PostgreSQL (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

const ingredientColumns = `id, user_id, name, unit, current_stock, minimum_stock, created_at, updated_at`

func scanIngredient(row pgx.Row) (*entity.Ingredient, error) {
	var i entity.Ingredient
	var minimum decimal.NullDecimal
	if err := row.Scan(&i.ID, &i.UserID, &i.Name, &i.Unit, &i.CurrentStock, &minimum, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	if minimum.Valid {
		m := minimum.Decimal
		i.MinimumStock = &m
	}
	return &i, nil
}

// GetByID devuelve nil, nil si el ingrediente no existe para el usuario.
func (r *IngredientRepo) GetByID(ctx context.Context, userID, ingredientID string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1 AND user_id = $2`
	ing, err := scanIngredient(r.q.QueryRow(ctx, query, ingredientID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return ing, nil
}

// GetForUpdate obtiene el ingrediente y bloquea la fila para update (SELECT FOR UPDATE).
func (r *IngredientRepo) GetForUpdate(ctx context.Context, userID, ingredientID string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1 AND user_id = $2 FOR UPDATE`
	ing, err := scanIngredient(r.q.QueryRow(ctx, query, ingredientID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient for update: %w", err)
	}
	return ing, nil
}

func (r *IngredientRepo) UpdateStock(ctx context.Context, userID, ingredientID string, quantity decimal.Decimal) error {
	query := `UPDATE ingredients SET current_stock = $1, updated_at = now() WHERE id = $2 AND user_id = $3`
	if _, err := r.q.Exec(ctx, query, quantity, ingredientID, userID); err != nil {
		return fmt.Errorf("update ingredient stock: %w", err)
	}
	return nil
}

func (r *IngredientRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE user_id = $1 ORDER BY name`
	return r.list(ctx, query, userID)
}

func (r *IngredientRepo) ListAtOrBelowThreshold(ctx context.Context, userID string) ([]*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients
		WHERE user_id = $1 AND minimum_stock IS NOT NULL AND current_stock <= minimum_stock
		ORDER BY (minimum_stock - current_stock) DESC, name`
	return r.list(ctx, query, userID)
}

func (r *IngredientRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Ingredient, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Ingredient, 0)
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}

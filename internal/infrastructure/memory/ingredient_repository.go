package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// IngredientRepo implementa repository.IngredientRepository sobre Store.
type IngredientRepo struct {
	s *Store
}

// NewIngredientRepo construye el repositorio.
func NewIngredientRepo(s *Store) *IngredientRepo { return &IngredientRepo{s: s} }

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// GetByID devuelve nil, nil si no existe.
func (r *IngredientRepo) GetByID(_ context.Context, userID, ingredientID string) (*entity.Ingredient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ing, ok := r.s.ingredients[ingredientKey(userID, ingredientID)]
	if !ok {
		return nil, nil
	}
	c := cloneIngredient(ing)
	return &c, nil
}

// GetForUpdate fuera de una transacción equivale a GetByID.
func (r *IngredientRepo) GetForUpdate(ctx context.Context, userID, ingredientID string) (*entity.Ingredient, error) {
	return r.GetByID(ctx, userID, ingredientID)
}

func (r *IngredientRepo) UpdateStock(_ context.Context, userID, ingredientID string, quantity decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := ingredientKey(userID, ingredientID)
	ing, ok := r.s.ingredients[key]
	if !ok {
		return nil
	}
	ing.CurrentStock = quantity
	r.s.ingredients[key] = ing
	return nil
}

func (r *IngredientRepo) ListByUser(_ context.Context, userID string) ([]*entity.Ingredient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Ingredient, 0)
	for _, ing := range r.s.ingredients {
		if ing.UserID == userID {
			c := cloneIngredient(ing)
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *IngredientRepo) ListAtOrBelowThreshold(ctx context.Context, userID string) ([]*entity.Ingredient, error) {
	all, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Ingredient, 0)
	for _, ing := range all {
		if ing.MinimumStock != nil && ing.CurrentStock.LessThanOrEqual(*ing.MinimumStock) {
			out = append(out, ing)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di := out[i].MinimumStock.Sub(out[i].CurrentStock)
		dj := out[j].MinimumStock.Sub(out[j].CurrentStock)
		return di.GreaterThan(dj)
	})
	return out, nil
}

package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/domain/repository"
)

// RecipeRepo implementa repository.RecipeRepository sobre Store.
type RecipeRepo struct {
	s *Store
}

// NewRecipeRepo construye el repositorio.
func NewRecipeRepo(s *Store) *RecipeRepo { return &RecipeRepo{s: s} }

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

func (r *RecipeRepo) GetActiveBySKU(_ context.Context, userID, sku string) (*entity.Recipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.recipes {
		if rec.UserID == userID && rec.IsActive && rec.SKU != "" && strings.TrimSpace(rec.SKU) == sku {
			c := cloneRecipe(rec)
			return &c, nil
		}
	}
	return nil, nil
}

func (r *RecipeRepo) ListActiveByUser(_ context.Context, userID string) ([]*entity.Recipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Recipe, 0)
	for _, rec := range r.s.recipes {
		if rec.UserID == userID && rec.IsActive {
			c := cloneRecipe(rec)
			out = append(out, &c)
		}
	}
	return out, nil
}

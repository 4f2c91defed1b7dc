package memory

import (
	"context"

	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/domain/repository"
)

// StockMovementRepo implementa repository.StockMovementRepository sobre Store.
type StockMovementRepo struct {
	s *Store
}

// NewStockMovementRepo construye el repositorio.
func NewStockMovementRepo(s *Store) *StockMovementRepo { return &StockMovementRepo{s: s} }

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *StockMovementRepo) ExistsForReference(_ context.Context, userID, referenceType, referenceID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.movements {
		if m.UserID == userID && m.ReferenceType == referenceType && m.ReferenceID == referenceID {
			return true, nil
		}
	}
	return false, nil
}

// List más recientes primero.
func (r *StockMovementRepo) List(_ context.Context, userID string, f repository.StockMovementFilter) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.StockMovement, 0)
	skipped := 0
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if m.UserID != userID ||
			(f.IngredientID != "" && m.IngredientID != f.IngredientID) ||
			(f.ReferenceID != "" && m.ReferenceID != f.ReferenceID) {
			continue
		}
		if skipped < f.Offset {
			skipped++
			continue
		}
		out = append(out, &m)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}

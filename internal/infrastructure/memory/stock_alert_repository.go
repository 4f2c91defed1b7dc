package memory

import (
	"context"
	"time"

	"github.com/jhoicas/yieldfood-api/internal/domain"
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/domain/repository"
)

// StockAlertRepo implementa repository.StockAlertRepository sobre Store.
type StockAlertRepo struct {
	s   *Store
	now func() time.Time
}

// NewStockAlertRepo construye el repositorio.
func NewStockAlertRepo(s *Store) *StockAlertRepo { return &StockAlertRepo{s: s, now: time.Now} }

var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

func (r *StockAlertRepo) CreateIfAbsent(_ context.Context, a *entity.StockAlert) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.alerts {
		if existing.UserID == a.UserID && existing.IngredientID == a.IngredientID &&
			existing.AlertType == a.AlertType && !existing.IsResolved {
			return false, nil
		}
	}
	r.s.alerts = append(r.s.alerts, *a)
	return true, nil
}

// List más recientes primero.
func (r *StockAlertRepo) List(_ context.Context, userID string, f repository.StockAlertFilter) ([]*entity.StockAlert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.StockAlert, 0)
	for i := len(r.s.alerts) - 1; i >= 0; i-- {
		a := r.s.alerts[i]
		if a.UserID != userID || a.IsResolved != f.Resolved ||
			(f.AlertType != "" && a.AlertType != f.AlertType) {
			continue
		}
		out = append(out, &a)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}

func (r *StockAlertRepo) Resolve(_ context.Context, userID, alertID string) (*entity.StockAlert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.alerts {
		a := &r.s.alerts[i]
		if a.ID != alertID || a.UserID != userID {
			continue
		}
		if !a.IsResolved {
			now := r.now()
			a.IsResolved = true
			a.ResolvedAt = &now
			a.UpdatedAt = now
		}
		c := *a
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

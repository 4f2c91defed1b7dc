package memory

import (
	"context"

	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/domain/repository"
)

// SyncLogRepo implementa repository.SyncLogRepository sobre Store.
type SyncLogRepo struct {
	s *Store
}

// NewSyncLogRepo construye el repositorio.
func NewSyncLogRepo(s *Store) *SyncLogRepo { return &SyncLogRepo{s: s} }

var _ repository.SyncLogRepository = (*SyncLogRepo)(nil)

func (r *SyncLogRepo) Create(_ context.Context, l *entity.SyncLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.syncLogs = append(r.s.syncLogs, cloneSyncLog(*l))
	return nil
}

func (r *SyncLogRepo) FindProcessed(_ context.Context, userID, saleID string) (*entity.SyncLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := len(r.s.syncLogs) - 1; i >= 0; i-- {
		l := r.s.syncLogs[i]
		if l.UserID == userID && l.SaleID == saleID && l.MarksProcessed() {
			c := cloneSyncLog(l)
			return &c, nil
		}
	}
	return nil, nil
}

// List más recientes primero.
func (r *SyncLogRepo) List(_ context.Context, userID string, f repository.SyncLogFilter) ([]*entity.SyncLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.SyncLog, 0)
	for i := len(r.s.syncLogs) - 1; i >= 0; i-- {
		l := r.s.syncLogs[i]
		if l.UserID != userID ||
			(f.Status != "" && l.Status != f.Status) ||
			(f.SaleID != "" && l.SaleID != f.SaleID) {
			continue
		}
		c := cloneSyncLog(l)
		out = append(out, &c)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}

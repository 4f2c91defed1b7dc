package monitoring

import (
	"context"

	"github.com/jhoicas/yieldfood-api/internal/application/dto"
	"github.com/jhoicas/yieldfood-api/internal/domain"
	"github.com/jhoicas/yieldfood-api/internal/domain/repository"
)

const (
	defaultAlertLimit   = 100
	defaultSyncLogLimit = 50
	maxLimit            = 500
)

// UseCase consultas del panel de sincronización: alertas de stock e historial de sync.
type UseCase struct {
	alerts   repository.StockAlertRepository
	syncLogs repository.SyncLogRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(alerts repository.StockAlertRepository, syncLogs repository.SyncLogRepository) *UseCase {
	return &UseCase{alerts: alerts, syncLogs: syncLogs}
}

// ListAlerts alertas del usuario; por defecto solo las no resueltas.
func (uc *UseCase) ListAlerts(ctx context.Context, userID string, q dto.StockAlertQuery) ([]dto.StockAlertResponse, error) {
	list, err := uc.alerts.List(ctx, userID, repository.StockAlertFilter{
		Resolved:  q.Resolved,
		AlertType: q.Type,
		Limit:     clampLimit(q.Limit, defaultAlertLimit),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockAlertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.NewStockAlertResponse(a))
	}
	return out, nil
}

// ResolveAlert marca la alerta como resuelta; resolver dos veces no cambia ResolvedAt.
func (uc *UseCase) ResolveAlert(ctx context.Context, userID, alertID string) (*dto.StockAlertResponse, error) {
	if alertID == "" {
		return nil, domain.ErrInvalidInput
	}
	a, err := uc.alerts.Resolve(ctx, userID, alertID)
	if err != nil {
		return nil, err
	}
	out := dto.NewStockAlertResponse(a)
	return &out, nil
}

// ListSyncLogs historial de sincronización, más recientes primero.
func (uc *UseCase) ListSyncLogs(ctx context.Context, userID string, q dto.SyncLogQuery) ([]dto.SyncLogResponse, error) {
	list, err := uc.syncLogs.List(ctx, userID, repository.SyncLogFilter{
		Status: q.Status,
		SaleID: q.SaleID,
		Limit:  clampLimit(q.Limit, defaultSyncLogLimit),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.SyncLogResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.NewSyncLogResponse(l))
	}
	return out, nil
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

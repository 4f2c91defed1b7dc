package repository

import (
	"context"

	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
)

// SyncLogFilter filtros de listado del historial de sincronización.
type SyncLogFilter struct {
	Status string
	SaleID string
	Limit  int
}

// SyncLogRepository define el puerto de persistencia para los logs de sincronización (solo inserción).
type SyncLogRepository interface {
	Create(ctx context.Context, log *entity.SyncLog) error
	// FindProcessed devuelve el log success/partial de la venta, o nil si no existe.
	FindProcessed(ctx context.Context, userID, saleID string) (*entity.SyncLog, error)
	List(ctx context.Context, userID string, filter SyncLogFilter) ([]*entity.SyncLog, error)
}

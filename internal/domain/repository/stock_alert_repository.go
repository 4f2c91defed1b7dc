package repository

import (
	"context"

	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
)

// StockAlertFilter filtros de listado de alertas.
type StockAlertFilter struct {
	Resolved  bool
	AlertType string
	Limit     int
}

// StockAlertRepository define el puerto de persistencia para alertas de stock.
type StockAlertRepository interface {
	// CreateIfAbsent inserta la alerta salvo que exista una no resuelta del mismo tipo
	// para el mismo ingrediente. created=false indica que se omitió.
	CreateIfAbsent(ctx context.Context, alert *entity.StockAlert) (created bool, err error)
	List(ctx context.Context, userID string, filter StockAlertFilter) ([]*entity.StockAlert, error)
	// Resolve marca la alerta como resuelta. ErrNotFound si no existe para el usuario.
	Resolve(ctx context.Context, userID, alertID string) (*entity.StockAlert, error)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/yieldfood-api/internal/domain"
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/domain/repository"
)

var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

// StockAlertRepo implementación sobre PostgreSQL.
// La unicidad de alertas abiertas la garantiza el índice parcial uq_stock_alerts_open.
type StockAlertRepo struct {
	q Querier
}

// NewStockAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAlertRepository(q Querier) *StockAlertRepo {
	return &StockAlertRepo{q: q}
}

const alertColumns = `id, user_id, ingredient_id, alert_type, current_stock, minimum_stock, is_resolved, resolved_at, created_at, updated_at`

func scanAlert(row pgx.Row) (*entity.StockAlert, error) {
	var a entity.StockAlert
	err := row.Scan(&a.ID, &a.UserID, &a.IngredientID, &a.AlertType, &a.CurrentStock, &a.MinimumStock,
		&a.IsResolved, &a.ResolvedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *StockAlertRepo) CreateIfAbsent(ctx context.Context, a *entity.StockAlert) (bool, error) {
	query := `
		INSERT INTO stock_alerts (id, user_id, ingredient_id, alert_type, current_stock, minimum_stock, is_resolved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, $7, $8)
		ON CONFLICT (user_id, ingredient_id, alert_type) WHERE NOT is_resolved DO NOTHING`
	tag, err := r.q.Exec(ctx, query, a.ID, a.UserID, a.IngredientID, a.AlertType, a.CurrentStock, a.MinimumStock, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("create stock alert: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List más recientes primero.
func (r *StockAlertRepo) List(ctx context.Context, userID string, f repository.StockAlertFilter) ([]*entity.StockAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM stock_alerts
		WHERE user_id = $1 AND is_resolved = $2 AND ($3 = '' OR alert_type = $3)
		ORDER BY created_at DESC, id
		LIMIT $4`
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.q.Query(ctx, query, userID, f.Resolved, f.AlertType, limit)
	if err != nil {
		return nil, fmt.Errorf("list stock alerts: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.StockAlert, 0)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock alert: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Resolve conserva resolved_at si la alerta ya estaba resuelta.
func (r *StockAlertRepo) Resolve(ctx context.Context, userID, alertID string) (*entity.StockAlert, error) {
	query := `
		UPDATE stock_alerts
		SET is_resolved = true,
		    resolved_at = COALESCE(resolved_at, now()),
		    updated_at = CASE WHEN is_resolved THEN updated_at ELSE now() END
		WHERE id = $1 AND user_id = $2
		RETURNING ` + alertColumns
	a, err := scanAlert(r.q.QueryRow(ctx, query, alertID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("resolve stock alert: %w", err)
	}
	return a, nil
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/domain/repository"
)

var _ repository.SyncLogRepository = (*SyncLogRepo)(nil)

// SyncLogRepo implementación sobre PostgreSQL. Errors se guarda como JSONB.
type SyncLogRepo struct {
	q Querier
}

// NewSyncLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSyncLogRepository(q Querier) *SyncLogRepo {
	return &SyncLogRepo{q: q}
}

const syncLogColumns = `id, user_id, sync_type, status, lightspeed_sale_id, lightspeed_order_number, sale_date,
	items_count, ingredients_updated, errors, error_message, created_at`

func scanSyncLog(row pgx.Row) (*entity.SyncLog, error) {
	var l entity.SyncLog
	var orderNumber, errorMessage *string
	var errs []byte
	err := row.Scan(&l.ID, &l.UserID, &l.SyncType, &l.Status, &l.SaleID, &orderNumber, &l.SaleDate,
		&l.ItemsCount, &l.IngredientsUpdated, &errs, &errorMessage, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	l.OrderNumber = derefString(orderNumber)
	l.ErrorMessage = derefString(errorMessage)
	if len(errs) > 0 {
		if err := json.Unmarshal(errs, &l.Errors); err != nil {
			return nil, fmt.Errorf("decode sync log errors: %w", err)
		}
	}
	return &l, nil
}

func (r *SyncLogRepo) Create(ctx context.Context, l *entity.SyncLog) error {
	errs := l.Errors
	if errs == nil {
		errs = []entity.ProcessingError{}
	}
	errsJSON, err := json.Marshal(errs)
	if err != nil {
		return fmt.Errorf("encode sync log errors: %w", err)
	}
	var payload []byte
	if len(l.RequestPayload) > 0 {
		payload = l.RequestPayload
	}
	query := `
		INSERT INTO sync_logs (id, user_id, sync_type, status, lightspeed_sale_id, lightspeed_order_number, sale_date,
			items_count, ingredients_updated, errors, error_message, request_payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.q.Exec(ctx, query,
		l.ID, l.UserID, l.SyncType, l.Status, l.SaleID, nullIfEmpty(l.OrderNumber), l.SaleDate,
		l.ItemsCount, l.IngredientsUpdated, errsJSON, nullIfEmpty(l.ErrorMessage), payload, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create sync log: %w", err)
	}
	return nil
}

func (r *SyncLogRepo) FindProcessed(ctx context.Context, userID, saleID string) (*entity.SyncLog, error) {
	query := `SELECT ` + syncLogColumns + ` FROM sync_logs
		WHERE user_id = $1 AND lightspeed_sale_id = $2 AND status IN ('success', 'partial')
		ORDER BY created_at DESC
		LIMIT 1`
	l, err := scanSyncLog(r.q.QueryRow(ctx, query, userID, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find processed sale: %w", err)
	}
	return l, nil
}

// List más recientes primero.
func (r *SyncLogRepo) List(ctx context.Context, userID string, f repository.SyncLogFilter) ([]*entity.SyncLog, error) {
	query := `SELECT ` + syncLogColumns + ` FROM sync_logs
		WHERE user_id = $1 AND ($2 = '' OR status = $2) AND ($3 = '' OR lightspeed_sale_id = $3)
		ORDER BY created_at DESC, id
		LIMIT $4`
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.q.Query(ctx, query, userID, f.Status, f.SaleID, limit)
	if err != nil {
		return nil, fmt.Errorf("list sync logs: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.SyncLog, 0)
	for rows.Next() {
		l, err := scanSyncLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sync log: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

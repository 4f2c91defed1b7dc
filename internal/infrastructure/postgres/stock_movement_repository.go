package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, user_id, ingredient_id, movement_type, quantity_change, stock_before, stock_after,
			reference_type, reference_id, reference_order, sync_log_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.UserID, m.IngredientID, m.MovementType, m.QuantityChange, m.StockBefore, m.StockAfter,
		nullIfEmpty(m.ReferenceType), nullIfEmpty(m.ReferenceID), nullIfEmpty(m.ReferenceOrder),
		nullIfEmpty(m.SyncLogID), nullIfEmpty(m.Notes), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ExistsForReference consulta por (user_id, reference_id), cubierto por idx_stock_movements_reference.
func (r *StockMovementRepo) ExistsForReference(ctx context.Context, userID, referenceType, referenceID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM stock_movements
			WHERE user_id = $1 AND reference_id = $2 AND reference_type = $3
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, userID, referenceID, referenceType).Scan(&exists); err != nil {
		return false, fmt.Errorf("stock movements by reference: %w", err)
	}
	return exists, nil
}

// List más recientes primero. Filtros vacíos se ignoran.
func (r *StockMovementRepo) List(ctx context.Context, userID string, f repository.StockMovementFilter) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, user_id, ingredient_id, movement_type, quantity_change, stock_before, stock_after,
			reference_type, reference_id, reference_order, sync_log_id, notes, created_at
		FROM stock_movements
		WHERE user_id = $1
		  AND ($2 = '' OR ingredient_id = $2)
		  AND ($3 = '' OR reference_id = $3)
		ORDER BY created_at DESC, id
		LIMIT $4 OFFSET $5`
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.q.Query(ctx, query, userID, f.IngredientID, f.ReferenceID, limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.StockMovement, 0)
	for rows.Next() {
		var m entity.StockMovement
		var refType, refID, refOrder, syncLogID, notes *string
		if err := rows.Scan(&m.ID, &m.UserID, &m.IngredientID, &m.MovementType, &m.QuantityChange, &m.StockBefore, &m.StockAfter,
			&refType, &refID, &refOrder, &syncLogID, &notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.ReferenceType = derefString(refType)
		m.ReferenceID = derefString(refID)
		m.ReferenceOrder = derefString(refOrder)
		m.SyncLogID = derefString(syncLogID)
		m.Notes = derefString(notes)
		out = append(out, &m)
	}
	return out, rows.Err()
}

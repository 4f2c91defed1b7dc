package memory

import (
	"context"

	"github.com/jhoicas/yieldfood-api/internal/application/inventory"
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// TxRunner implementa inventory.TxRunner. Las transacciones se serializan y sus escrituras
// se aplican solo si fn devuelve nil.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

var _ inventory.TxRunner = (*TxRunner)(nil)

func (t *TxRunner) Run(ctx context.Context, fn func(
	ingredientRepo repository.IngredientRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{s: t.s, stock: make(map[string]decimal.Decimal)}
	if err := fn(&txIngredientRepo{IngredientRepo: IngredientRepo{s: t.s}, tx: tx}, &txMovementRepo{StockMovementRepo: StockMovementRepo{s: t.s}, tx: tx}); err != nil {
		return err
	}

	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for key, qty := range tx.stock {
		if ing, ok := t.s.ingredients[key]; ok {
			ing.CurrentStock = qty
			t.s.ingredients[key] = ing
		}
	}
	t.s.movements = append(t.s.movements, tx.movements...)
	return nil
}

// memTx escrituras pendientes de una transacción.
type memTx struct {
	s         *Store
	stock     map[string]decimal.Decimal
	movements []entity.StockMovement
}

type txIngredientRepo struct {
	IngredientRepo
	tx *memTx
}

func (r *txIngredientRepo) GetForUpdate(ctx context.Context, userID, ingredientID string) (*entity.Ingredient, error) {
	ing, err := r.GetByID(ctx, userID, ingredientID)
	if err != nil || ing == nil {
		return ing, err
	}
	if qty, ok := r.tx.stock[ingredientKey(userID, ingredientID)]; ok {
		ing.CurrentStock = qty
	}
	return ing, nil
}

func (r *txIngredientRepo) UpdateStock(_ context.Context, userID, ingredientID string, quantity decimal.Decimal) error {
	r.tx.stock[ingredientKey(userID, ingredientID)] = quantity
	return nil
}

type txMovementRepo struct {
	StockMovementRepo
	tx *memTx
}

func (r *txMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.tx.movements = append(r.tx.movements, *m)
	return nil
}

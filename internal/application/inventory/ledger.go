package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/yieldfood-api/internal/domain"
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// StockLedger aplica ajustes de stock por ingrediente de forma transaccional
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type StockLedger struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewStockLedger construye el ledger.
func NewStockLedger(txRunner TxRunner) *StockLedger {
	return &StockLedger{txRunner: txRunner, now: time.Now}
}

// AdjustInput entrada de un ajuste. Delta negativo = consumo, positivo = reposición.
// Los campos de referencia se copian al movimiento generado.
type AdjustInput struct {
	UserID         string
	IngredientID   string
	Delta          decimal.Decimal
	AllowNegative  bool
	MovementType   string
	ReferenceType  string
	ReferenceID    string
	ReferenceOrder string
	SyncLogID      string
	Notes          string
}

// AdjustResult estado antes/después del ajuste y el movimiento persistido.
type AdjustResult struct {
	Ingredient       *entity.Ingredient
	PreviousQuantity decimal.Decimal
	NewQuantity      decimal.Decimal
	Movement         *entity.StockMovement
}

// Adjust bloquea la fila del ingrediente, aplica la política de piso, actualiza el stock
// y guarda el movimiento en la misma transacción. Dos ajustes concurrentes sobre el mismo
// ingrediente se serializan en el bloqueo de fila.
//
// Delta se redondea a entity.QuantityScale antes de aplicarse.
//
// Errores: domain.ErrInvalidInput, domain.ErrNotFound, domain.ErrInsufficientStock
// (solo con AllowNegative=false; la fila queda intacta) o el error del almacén.
func (l *StockLedger) Adjust(ctx context.Context, in AdjustInput) (*AdjustResult, error) {
	in.Delta = entity.RoundQuantity(in.Delta)
	if in.UserID == "" || in.IngredientID == "" || in.Delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.MovementType == "" {
		in.MovementType = entity.MovementTypeManualAdjustment
	}

	var out *AdjustResult
	err := l.txRunner.Run(ctx, func(
		ingredientRepo repository.IngredientRepository,
		movRepo repository.StockMovementRepository,
	) error {
		ing, err := ingredientRepo.GetForUpdate(ctx, in.UserID, in.IngredientID)
		if err != nil {
			return err
		}
		if ing == nil {
			return domain.ErrNotFound
		}
		previous := ing.CurrentStock
		newQty := previous.Add(in.Delta)
		if !in.AllowNegative && newQty.IsNegative() {
			return domain.ErrInsufficientStock
		}
		if err := ingredientRepo.UpdateStock(ctx, in.UserID, in.IngredientID, newQty); err != nil {
			return err
		}
		now := l.now()
		mov := &entity.StockMovement{
			ID:             uuid.New().String(),
			UserID:         in.UserID,
			IngredientID:   in.IngredientID,
			MovementType:   in.MovementType,
			QuantityChange: in.Delta,
			StockBefore:    previous,
			StockAfter:     newQty,
			ReferenceType:  in.ReferenceType,
			ReferenceID:    in.ReferenceID,
			ReferenceOrder: in.ReferenceOrder,
			SyncLogID:      in.SyncLogID,
			Notes:          in.Notes,
			CreatedAt:      now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		ing.CurrentStock = newQty
		ing.UpdatedAt = now
		out = &AdjustResult{
			Ingredient:       ing,
			PreviousQuantity: previous,
			NewQuantity:      newQty,
			Movement:         mov,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

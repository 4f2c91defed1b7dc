package inventory

import (
	"context"

	"github.com/jhoicas/yieldfood-api/internal/application/dto"
	"github.com/jhoicas/yieldfood-api/internal/domain"
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// StockUseCase consultas de stock y ajustes manuales del usuario.
type StockUseCase struct {
	ledger      *StockLedger
	alerts      *AlertGenerator
	ingredients repository.IngredientRepository
	movements   repository.StockMovementRepository
	log         zerolog.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	ledger *StockLedger,
	alerts *AlertGenerator,
	ingredients repository.IngredientRepository,
	movements repository.StockMovementRepository,
	log zerolog.Logger,
) *StockUseCase {
	return &StockUseCase{
		ledger:      ledger,
		alerts:      alerts,
		ingredients: ingredients,
		movements:   movements,
		log:         log,
	}
}

// AdjustManual aplica un ajuste manual. A diferencia de la sincronización de ventas,
// nunca deja el stock negativo (domain.ErrInsufficientStock).
func (uc *StockUseCase) AdjustManual(ctx context.Context, userID, ingredientID string, quantity decimal.Decimal, notes string) (*dto.AdjustStockResponse, error) {
	if quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if notes == "" {
		notes = "Ajuste manual"
	}
	res, err := uc.ledger.Adjust(ctx, AdjustInput{
		UserID:        userID,
		IngredientID:  ingredientID,
		Delta:         quantity,
		AllowNegative: false,
		MovementType:  entity.MovementTypeManualAdjustment,
		ReferenceType: entity.ReferenceManual,
		Notes:         notes,
	})
	if err != nil {
		return nil, err
	}

	out := &dto.AdjustStockResponse{
		Ingredient:       dto.NewIngredientResponse(res.Ingredient),
		PreviousQuantity: res.PreviousQuantity,
		NewQuantity:      res.NewQuantity,
		Adjustment:       quantity,
		Movement:         dto.NewStockMovementDTO(res.Movement),
	}
	alert, err := uc.alerts.Evaluate(ctx, res.Ingredient, res.NewQuantity)
	if err != nil {
		// El ajuste ya quedó confirmado; la alerta se reintenta en el próximo ajuste.
		uc.log.Warn().Err(err).Str("ingredient_id", ingredientID).Msg("falló la evaluación de alerta tras ajuste manual")
		return out, nil
	}
	if alert != nil {
		a := dto.NewStockAlertResponse(alert)
		out.Alert = &a
	}
	return out, nil
}

// ListIngredients ingredientes del usuario con su stock actual.
func (uc *StockUseCase) ListIngredients(ctx context.Context, userID string) ([]dto.IngredientResponse, error) {
	list, err := uc.ingredients.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IngredientResponse, 0, len(list))
	for _, ing := range list {
		out = append(out, dto.NewIngredientResponse(ing))
	}
	return out, nil
}

// ListMovements historial de movimientos, más recientes primero.
func (uc *StockUseCase) ListMovements(ctx context.Context, userID string, filter repository.StockMovementFilter) ([]dto.StockMovementDTO, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	list, err := uc.movements.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementDTO, 0, len(list))
	for _, m := range list {
		out = append(out, dto.NewStockMovementDTO(m))
	}
	return out, nil
}

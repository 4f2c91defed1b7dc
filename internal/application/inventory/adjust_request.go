package inventory

import (
	"context"

	"github.com/jhoicas/yieldfood-api/internal/application/dto"
)

// AdjustFromRequest adapta el request HTTP de ajuste manual al caso de uso AdjustManual.
func (uc *StockUseCase) AdjustFromRequest(ctx context.Context, userID, ingredientID string, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	return uc.AdjustManual(ctx, userID, ingredientID, in.Quantity, in.Notes)
}

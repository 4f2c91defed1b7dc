package sales

import (
	"github.com/jhoicas/yieldfood-api/internal/application/dto"
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
)

// ToResponse convierte el resultado al DTO de la API.
func (r *SaleProcessingResult) ToResponse() dto.SaleProcessingResponse {
	out := dto.SaleProcessingResponse{
		Success:            r.Success,
		AlreadyProcessed:   r.AlreadyProcessed,
		ValidateOnly:       r.ValidateOnly,
		Status:             r.Status,
		SaleID:             r.SaleID,
		OrderNumber:        r.OrderNumber,
		SyncLogID:          r.SyncLogID,
		RecipesProcessed:   len(r.Recipes),
		IngredientsUpdated: r.IngredientsUpdated(),
		Recipes:            make([]dto.RecipeDecompositionDTO, 0, len(r.Recipes)),
		Impacts:            make([]dto.IngredientImpactDTO, 0, len(r.Impacts)),
		Movements:          make([]dto.StockMovementDTO, 0, len(r.Movements)),
		Alerts:             make([]dto.StockAlertResponse, 0, len(r.Alerts)),
		Errors:             r.Errors,
	}
	for _, d := range r.Recipes {
		rd := dto.RecipeDecompositionDTO{
			LineID:       d.LineID,
			RecipeID:     d.RecipeID,
			RecipeName:   d.RecipeName,
			MatchedBy:    d.MatchedBy,
			QuantitySold: d.QuantitySold,
			Ingredients:  make([]dto.IngredientQuantityDTO, 0, len(d.Ingredients)),
		}
		for _, iq := range d.Ingredients {
			rd.Ingredients = append(rd.Ingredients, dto.IngredientQuantityDTO{
				IngredientID:   iq.IngredientID,
				IngredientName: iq.IngredientName,
				QuantityNeeded: iq.QuantityNeeded,
				Unit:           iq.Unit,
			})
		}
		out.Recipes = append(out.Recipes, rd)
	}
	for _, imp := range r.Impacts {
		out.Impacts = append(out.Impacts, dto.IngredientImpactDTO{
			IngredientID:     imp.IngredientID,
			IngredientName:   imp.IngredientName,
			Unit:             imp.Unit,
			QuantityRequired: imp.QuantityRequired,
			StockBefore:      imp.StockBefore,
			StockAfter:       imp.StockAfter,
			Applied:          imp.Applied,
		})
	}
	for _, m := range r.Movements {
		out.Movements = append(out.Movements, dto.NewStockMovementDTO(m))
	}
	for _, a := range r.Alerts {
		out.Alerts = append(out.Alerts, dto.NewStockAlertResponse(a))
	}
	if out.Errors == nil {
		out.Errors = []entity.ProcessingError{}
	}
	return out
}

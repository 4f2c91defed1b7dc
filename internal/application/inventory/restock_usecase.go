package inventory

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jhoicas/yieldfood-api/internal/application/dto"
	"github.com/jhoicas/yieldfood-api/internal/domain/repository"
	"github.com/jhoicas/yieldfood-api/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// RestockPDFGenerator genera el PDF de la lista de reposición (lo implementa infrastructure/pdf).
type RestockPDFGenerator interface {
	GenerateRestockList(items []dto.RestockSuggestionDTO, generatedAt time.Time) ([]byte, error)
}

// RestockUseCase genera la lista de reposición del usuario: ingredientes en o bajo su umbral
// con la cantidad sugerida para volver al stock ideal.
type RestockUseCase struct {
	ingredients repository.IngredientRepository
	pdf         RestockPDFGenerator
	now         func() time.Time
}

// NewRestockUseCase construye el caso de uso. pdf puede ser nil si no se exporta a PDF.
func NewRestockUseCase(ingredients repository.IngredientRepository, pdf RestockPDFGenerator) *RestockUseCase {
	return &RestockUseCase{ingredients: ingredients, pdf: pdf, now: time.Now}
}

// GenerateRestockList ordena primero el stock negativo o agotado, luego el mayor déficit relativo
// al umbral. Priority 1 = más urgente.
func (uc *RestockUseCase) GenerateRestockList(ctx context.Context, userID string) ([]dto.RestockSuggestionDTO, error) {
	items, err := uc.ingredients.ListAtOrBelowThreshold(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []dto.RestockSuggestionDTO{}, nil
	}

	suggestions := make([]dto.RestockSuggestionDTO, 0, len(items))
	for _, ing := range items {
		threshold := ing.Threshold()
		ideal, suggested := stock.RestockQuantity(ing.CurrentStock, threshold)
		suggestions = append(suggestions, dto.RestockSuggestionDTO{
			IngredientID:      ing.ID,
			IngredientName:    ing.Name,
			Unit:              ing.Unit,
			CurrentStock:      ing.CurrentStock,
			MinimumStock:      threshold,
			IdealStock:        ideal,
			SuggestedOrderQty: suggested,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		ea, eb := !a.CurrentStock.IsPositive(), !b.CurrentStock.IsPositive()
		if ea != eb {
			return ea
		}
		return deficitRatio(a).GreaterThan(deficitRatio(b))
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

// GenerateRestockPDF lista de reposición en PDF.
func (uc *RestockUseCase) GenerateRestockPDF(ctx context.Context, userID string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, errors.New("restock: generador de PDF no configurado")
	}
	items, err := uc.GenerateRestockList(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateRestockList(items, uc.now())
}

// deficitRatio (umbral - stock) / umbral; con umbral cero devuelve el déficit absoluto.
func deficitRatio(s dto.RestockSuggestionDTO) decimal.Decimal {
	deficit := s.MinimumStock.Sub(s.CurrentStock)
	if s.MinimumStock.IsZero() {
		return deficit
	}
	return deficit.Div(s.MinimumStock)
}

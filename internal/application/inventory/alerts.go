package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/domain/repository"
	"github.com/jhoicas/yieldfood-api/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// AlertGenerator evalúa el stock tras un ajuste y crea la alerta correspondiente.
// No duplica una alerta no resuelta del mismo tipo para el mismo ingrediente;
// una caída adicional con la alerta abierta no genera otra.
type AlertGenerator struct {
	repo repository.StockAlertRepository
	now  func() time.Time
}

// NewAlertGenerator construye el generador.
func NewAlertGenerator(repo repository.StockAlertRepository) *AlertGenerator {
	return &AlertGenerator{repo: repo, now: time.Now}
}

// Evaluate devuelve la alerta creada, o nil si no corresponde alerta o ya había una abierta.
func (g *AlertGenerator) Evaluate(ctx context.Context, ing *entity.Ingredient, newQty decimal.Decimal) (*entity.StockAlert, error) {
	alertType := stock.EvaluateAlert(newQty, ing.Threshold())
	if alertType == "" {
		return nil, nil
	}
	now := g.now()
	alert := &entity.StockAlert{
		ID:           uuid.New().String(),
		UserID:       ing.UserID,
		IngredientID: ing.ID,
		AlertType:    alertType,
		CurrentStock: newQty,
		MinimumStock: ing.Threshold(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := g.repo.CreateIfAbsent(ctx, alert)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, nil
	}
	return alert, nil
}

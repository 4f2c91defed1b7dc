package sales

import (
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Options parámetros de una corrida de procesamiento.
type Options struct {
	UserID             string
	SyncType           string // entity.SyncType*; vacío = manual_sync
	ValidateOnly       bool   // simulación: no escribe stock, movimientos, alertas ni log
	AllowNegativeStock bool
	SkipDuplicateCheck bool
}

// IngredientImpact requerimiento agregado de un ingrediente para toda la venta.
// En simulación StockAfter es el valor que quedaría y Applied es false.
type IngredientImpact struct {
	IngredientID     string
	IngredientName   string
	Unit             string
	QuantityRequired decimal.Decimal
	StockBefore      decimal.Decimal
	StockAfter       decimal.Decimal
	Applied          bool
}

// SaleProcessingResult resultado de procesar una venta.
type SaleProcessingResult struct {
	Success          bool
	AlreadyProcessed bool
	ValidateOnly     bool
	Status           string
	SaleID           string
	OrderNumber      string
	SyncLogID        string
	Recipes          []RecipeDecomposition
	Impacts          []IngredientImpact
	Movements        []*entity.StockMovement
	Alerts           []*entity.StockAlert
	Errors           []entity.ProcessingError
}

// IngredientsUpdated ingredientes efectivamente descontados (uno por movimiento).
func (r *SaleProcessingResult) IngredientsUpdated() int { return len(r.Movements) }

func (r *SaleProcessingResult) addError(kind, message string) *entity.ProcessingError {
	r.Errors = append(r.Errors, entity.ProcessingError{Kind: kind, Message: message})
	return &r.Errors[len(r.Errors)-1]
}

// resolveStatus success sin errores, partial con errores y al menos un ingrediente aplicado
// (o aplicable en simulación), error si no se aplicó nada.
func (r *SaleProcessingResult) resolveStatus(applied int) {
	switch {
	case len(r.Errors) == 0:
		r.Status = entity.SyncStatusSuccess
	case applied > 0:
		r.Status = entity.SyncStatusPartial
	default:
		r.Status = entity.SyncStatusError
	}
	r.Success = r.Status != entity.SyncStatusError
}

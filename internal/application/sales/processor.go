package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/yieldfood-api/internal/application/inventory"
	"github.com/jhoicas/yieldfood-api/internal/domain"
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProcessorDeps dependencias del procesador de ventas.
type ProcessorDeps struct {
	Recipes     repository.RecipeRepository
	Ingredients repository.IngredientRepository
	SyncLogs    repository.SyncLogRepository
	Movements   repository.StockMovementRepository
	Ledger      StockAdjuster
	Alerts      AlertEvaluator
	Locker      SaleLocker // nil = sin candado (un solo proceso, sin concurrencia)
	Logger      zerolog.Logger
}

// SaleProcessor orquesta el procesamiento de una venta: duplicados, validación,
// descomposición en ingredientes, ajuste de stock, alertas y log de sincronización.
type SaleProcessor struct {
	decomposer  *RecipeDecomposer
	guard       *DeduplicationGuard
	ingredients repository.IngredientRepository
	ledger      StockAdjuster
	alerts      AlertEvaluator
	logs        *SyncLogWriter
	locker      SaleLocker
	log         zerolog.Logger
	newID       func() string
}

// NewSaleProcessor construye el procesador.
func NewSaleProcessor(deps ProcessorDeps) *SaleProcessor {
	locker := deps.Locker
	if locker == nil {
		locker = noLock{}
	}
	return &SaleProcessor{
		decomposer:  NewRecipeDecomposer(deps.Recipes),
		guard:       NewDeduplicationGuard(deps.SyncLogs, deps.Movements),
		ingredients: deps.Ingredients,
		ledger:      deps.Ledger,
		alerts:      deps.Alerts,
		logs:        NewSyncLogWriter(deps.SyncLogs),
		locker:      locker,
		log:         deps.Logger,
		newID:       func() string { return uuid.New().String() },
	}
}

type noLock struct{}

func (noLock) Lock(context.Context, string) (func(), error) { return func() {}, nil }

// requirement total de un ingrediente para toda la venta.
type requirement struct {
	ingredientID string
	name         string
	unit         string
	quantity     decimal.Decimal
}

// SaleLockKey clave del candado de procesamiento de una venta.
func SaleLockKey(userID, saleID string) string {
	return "yieldfood:sale:" + userID + ":" + saleID
}

// ProcessSale procesa una venta para el usuario de opts.
//
// Los fallos por línea o por ingrediente no abortan la venta: se acumulan en Errors y el
// estado final es success, partial o error. Cada ingrediente se ajusta una sola vez con el
// total agregado de todas las líneas. Solo devuelve error de Go ante entrada inválida
// (domain.ErrInvalidInput) o si no se obtiene el candado de la venta.
func (p *SaleProcessor) ProcessSale(ctx context.Context, sale *entity.Sale, opts Options) (*SaleProcessingResult, error) {
	if sale == nil || strings.TrimSpace(sale.ID) == "" || strings.TrimSpace(opts.UserID) == "" {
		return nil, domain.ErrInvalidInput
	}
	if opts.SyncType == "" {
		opts.SyncType = entity.SyncTypeManualSync
	}
	log := p.log.With().
		Str("user_id", opts.UserID).
		Str("sale_id", sale.ID).
		Bool("validate_only", opts.ValidateOnly).
		Logger()

	unlock, err := p.locker.Lock(ctx, SaleLockKey(opts.UserID, sale.ID))
	if err != nil {
		log.Warn().Err(err).Msg("no se obtuvo el candado de la venta")
		return nil, err
	}
	defer unlock()

	res := &SaleProcessingResult{
		SaleID:       sale.ID,
		OrderNumber:  sale.OrderNumber,
		ValidateOnly: opts.ValidateOnly,
		Recipes:      []RecipeDecomposition{},
		Impacts:      []IngredientImpact{},
		Movements:    []*entity.StockMovement{},
		Alerts:       []*entity.StockAlert{},
		Errors:       []entity.ProcessingError{},
	}

	if !opts.SkipDuplicateCheck {
		done, err := p.guard.HasBeenProcessed(ctx, opts.UserID, sale.ID)
		if err != nil {
			log.Error().Err(err).Msg("no se pudo consultar el historial de sincronización")
			res.addError(entity.ErrKindStoreUnavailable, "no se pudo verificar si la venta ya fue procesada: "+err.Error())
			res.resolveStatus(0)
			return res, nil
		}
		if done {
			res.AlreadyProcessed = true
			res.Success = true
			log.Info().Msg("venta ya procesada, se omite")
			return res, nil
		}
	}

	if msg := validateSale(sale); msg != "" {
		res.addError(entity.ErrKindInvalidSale, msg)
		p.finish(ctx, log, sale, opts, res, 0)
		return res, nil
	}

	reqs := p.decompose(ctx, opts.UserID, sale, res)

	var applied int
	if opts.ValidateOnly {
		applied = p.preview(ctx, opts, reqs, res)
	} else {
		res.SyncLogID = p.newID()
		applied = p.apply(ctx, log, sale, opts, reqs, res)
	}
	p.finish(ctx, log, sale, opts, res, applied)
	return res, nil
}

// validateSale reglas a nivel de venta; devuelve el mensaje de rechazo o vacío.
func validateSale(sale *entity.Sale) string {
	if !sale.IsCompleted() {
		return fmt.Sprintf("la venta no está completada (estado %q)", sale.Status)
	}
	if len(sale.Lines) == 0 {
		return "la venta no tiene líneas"
	}
	return ""
}

// decompose resuelve cada línea y agrega los requerimientos por ingrediente
// conservando el orden de primera aparición.
func (p *SaleProcessor) decompose(ctx context.Context, userID string, sale *entity.Sale, res *SaleProcessingResult) []requirement {
	var reqs []requirement
	index := make(map[string]int)
	for _, line := range sale.Lines {
		if !line.Quantity.IsPositive() {
			pe := res.addError(entity.ErrKindInvalidSale, fmt.Sprintf("cantidad inválida %s", line.Quantity.String()))
			pe.LineID, pe.ItemRef = line.LineID, line.ItemRef
			continue
		}
		if strings.TrimSpace(line.ItemRef) == "" && strings.TrimSpace(line.Description) == "" {
			pe := res.addError(entity.ErrKindInvalidSale, "línea sin SKU ni descripción")
			pe.LineID = line.LineID
			continue
		}

		d, err := p.decomposer.Decompose(ctx, userID, line)
		if err != nil {
			kind := entity.ErrKindRecipeNotFound
			if !errors.Is(err, domain.ErrRecipeNotFound) && !errors.Is(err, domain.ErrRecipeAmbiguous) {
				kind = entity.ErrKindStoreUnavailable
			}
			pe := res.addError(kind, err.Error())
			pe.LineID, pe.ItemRef = line.LineID, line.ItemRef
			continue
		}
		res.Recipes = append(res.Recipes, *d)

		for _, iq := range d.Ingredients {
			i, ok := index[iq.IngredientID]
			if !ok {
				index[iq.IngredientID] = len(reqs)
				reqs = append(reqs, requirement{
					ingredientID: iq.IngredientID,
					name:         iq.IngredientName,
					unit:         iq.Unit,
					quantity:     iq.QuantityNeeded,
				})
				continue
			}
			reqs[i].quantity = reqs[i].quantity.Add(iq.QuantityNeeded)
		}
	}
	return reqs
}

// apply descuenta cada requerimiento en su propia transacción y evalúa alertas.
func (p *SaleProcessor) apply(ctx context.Context, log zerolog.Logger, sale *entity.Sale, opts Options, reqs []requirement, res *SaleProcessingResult) int {
	ref := sale.OrderNumber
	if ref == "" {
		ref = sale.ID
	}
	for _, req := range reqs {
		if req.quantity.IsZero() {
			continue
		}
		adj, err := p.ledger.Adjust(ctx, inventory.AdjustInput{
			UserID:         opts.UserID,
			IngredientID:   req.ingredientID,
			Delta:          req.quantity.Neg(),
			AllowNegative:  opts.AllowNegativeStock,
			MovementType:   entity.MovementTypeSale,
			ReferenceType:  entity.ReferenceLightspeedSale,
			ReferenceID:    sale.ID,
			ReferenceOrder: sale.OrderNumber,
			SyncLogID:      res.SyncLogID,
			Notes:          "Venta Lightspeed " + ref,
		})
		if err != nil {
			kind, msg := classifyAdjustError(err, req)
			pe := res.addError(kind, msg)
			pe.IngredientID = req.ingredientID
			log.Warn().Err(err).Str("ingredient_id", req.ingredientID).Msg("no se pudo descontar el ingrediente")
			continue
		}

		name := req.name
		if adj.Ingredient != nil && adj.Ingredient.Name != "" {
			name = adj.Ingredient.Name
		}
		res.Movements = append(res.Movements, adj.Movement)
		res.Impacts = append(res.Impacts, IngredientImpact{
			IngredientID:     req.ingredientID,
			IngredientName:   name,
			Unit:             req.unit,
			QuantityRequired: req.quantity,
			StockBefore:      adj.PreviousQuantity,
			StockAfter:       adj.NewQuantity,
			Applied:          true,
		})

		alert, err := p.alerts.Evaluate(ctx, adj.Ingredient, adj.NewQuantity)
		if err != nil {
			pe := res.addError(entity.ErrKindStoreUnavailable, "no se pudo registrar la alerta de stock: "+err.Error())
			pe.IngredientID = req.ingredientID
			log.Warn().Err(err).Str("ingredient_id", req.ingredientID).Msg("falló la evaluación de alerta")
			continue
		}
		if alert != nil {
			res.Alerts = append(res.Alerts, alert)
		}
	}
	return len(res.Movements)
}

// preview calcula el impacto sin escribir nada. Devuelve cuántos ingredientes se podrían aplicar.
func (p *SaleProcessor) preview(ctx context.Context, opts Options, reqs []requirement, res *SaleProcessingResult) int {
	applicable := 0
	for _, req := range reqs {
		if req.quantity.IsZero() {
			continue
		}
		ing, err := p.ingredients.GetByID(ctx, opts.UserID, req.ingredientID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			pe := res.addError(entity.ErrKindStoreUnavailable, err.Error())
			pe.IngredientID = req.ingredientID
			continue
		}
		if ing == nil {
			pe := res.addError(entity.ErrKindIngredientNotFound, fmt.Sprintf("ingrediente %s no encontrado", req.ingredientID))
			pe.IngredientID = req.ingredientID
			continue
		}
		after := ing.CurrentStock.Sub(req.quantity)
		res.Impacts = append(res.Impacts, IngredientImpact{
			IngredientID:     ing.ID,
			IngredientName:   ing.Name,
			Unit:             req.unit,
			QuantityRequired: req.quantity,
			StockBefore:      ing.CurrentStock,
			StockAfter:       after,
		})
		if after.IsNegative() && !opts.AllowNegativeStock {
			pe := res.addError(entity.ErrKindInsufficientStock, fmt.Sprintf(
				"stock insuficiente de %s: disponible %s, requerido %s",
				ing.Name, ing.CurrentStock.String(), req.quantity.String()))
			pe.IngredientID = ing.ID
			continue
		}
		applicable++
	}
	return applicable
}

// finish fija el estado y, fuera de simulación, escribe el log de sincronización.
func (p *SaleProcessor) finish(ctx context.Context, log zerolog.Logger, sale *entity.Sale, opts Options, res *SaleProcessingResult, applied int) {
	res.resolveStatus(applied)
	if opts.ValidateOnly {
		log.Info().Str("status", res.Status).Int("errors", len(res.Errors)).Msg("simulación de venta")
		return
	}
	if res.SyncLogID == "" {
		res.SyncLogID = p.newID()
	}
	if _, err := p.logs.Write(ctx, res.SyncLogID, sale, opts, res); err != nil {
		log.Error().Err(err).Str("sync_log_id", res.SyncLogID).Msg("no se pudo guardar el log de sincronización")
		res.addError(entity.ErrKindStoreUnavailable, "no se pudo guardar el log de sincronización: "+err.Error())
		res.resolveStatus(applied)
	}
	log.Info().
		Str("status", res.Status).
		Str("sync_log_id", res.SyncLogID).
		Int("ingredients_updated", res.IngredientsUpdated()).
		Int("alerts", len(res.Alerts)).
		Int("errors", len(res.Errors)).
		Msg("venta procesada")
}

func classifyAdjustError(err error, req requirement) (string, string) {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return entity.ErrKindInsufficientStock, fmt.Sprintf("stock insuficiente de %s para descontar %s %s",
			displayName(req), req.quantity.String(), req.unit)
	case errors.Is(err, domain.ErrNotFound):
		return entity.ErrKindIngredientNotFound, fmt.Sprintf("ingrediente %s no encontrado", displayName(req))
	default:
		return entity.ErrKindStoreUnavailable, err.Error()
	}
}

func displayName(req requirement) string {
	if req.name != "" {
		return req.name
	}
	return req.ingredientID
}

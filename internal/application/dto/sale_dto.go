package dto

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LightspeedSaleLine línea de venta tal como la envía Lightspeed.
type LightspeedSaleLine struct {
	LineID      json.Number      `json:"lineID"`
	ItemID      json.Number      `json:"itemID,omitempty"`
	Description string           `json:"description"`
	SKU         string           `json:"sku"`
	CustomSKU   string           `json:"customSku,omitempty"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unitPrice,omitempty"`
	Total       *decimal.Decimal `json:"total,omitempty"`
}

// LightspeedSaleLines en Lightspeed SaleLine puede ser un objeto o un arreglo.
type LightspeedSaleLines struct {
	SaleLine []LightspeedSaleLine `json:"SaleLine"`
}

// UnmarshalJSON normaliza SaleLine (objeto único o arreglo) a un slice.
func (l *LightspeedSaleLines) UnmarshalJSON(data []byte) error {
	var raw struct {
		SaleLine json.RawMessage `json:"SaleLine"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	trimmed := bytes.TrimSpace(raw.SaleLine)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		l.SaleLine = nil
		return nil
	}
	if trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &l.SaleLine)
	}
	var single LightspeedSaleLine
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return err
	}
	l.SaleLine = []LightspeedSaleLine{single}
	return nil
}

// LightspeedSale venta ya parseada (webhook o exportación de Lightspeed).
type LightspeedSale struct {
	SaleID      json.Number         `json:"saleID"`
	OrderNumber string              `json:"orderNumber"`
	CreateTime  string              `json:"createTime"`
	OrderStatus string              `json:"orderStatus"`
	Total       *decimal.Decimal    `json:"total,omitempty"`
	SaleLines   LightspeedSaleLines `json:"SaleLines"`
}

// ToEntity convierte la venta de Lightspeed a la entidad de dominio.
// El SKU personalizado tiene prioridad sobre el SKU del sistema.
func (s LightspeedSale) ToEntity() *entity.Sale {
	sale := &entity.Sale{
		ID:          s.SaleID.String(),
		OrderNumber: s.OrderNumber,
		Status:      strings.ToLower(strings.TrimSpace(s.OrderStatus)),
		Lines:       make([]entity.SaleLine, 0, len(s.SaleLines.SaleLine)),
	}
	if t, err := time.Parse(time.RFC3339, s.CreateTime); err == nil {
		sale.CreatedAt = t
	}
	for _, l := range s.SaleLines.SaleLine {
		ref := strings.TrimSpace(l.CustomSKU)
		if ref == "" {
			ref = strings.TrimSpace(l.SKU)
		}
		sale.Lines = append(sale.Lines, entity.SaleLine{
			LineID:      l.LineID.String(),
			ItemRef:     ref,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}
	if raw, err := json.Marshal(s); err == nil {
		sale.Raw = raw
	}
	return sale
}

// ManualSyncRequest body para POST /api/lightspeed/manual-sync.
// AllowNegativeStock por defecto es el de la configuración (SYNC_ALLOW_NEGATIVE_STOCK).
type ManualSyncRequest struct {
	Sale               *LightspeedSale `json:"sale" validate:"required"`
	ValidateOnly       bool            `json:"validate_only"`
	AllowNegativeStock *bool           `json:"allow_negative_stock,omitempty"`
	SkipDuplicateCheck bool            `json:"skip_duplicate_check"`
}

// IngredientImpactDTO requerimiento agregado de un ingrediente y su efecto en el stock.
type IngredientImpactDTO struct {
	IngredientID     string          `json:"ingredient_id"`
	IngredientName   string          `json:"ingredient_name"`
	Unit             string          `json:"unit"`
	QuantityRequired decimal.Decimal `json:"quantity_required"`
	StockBefore      decimal.Decimal `json:"stock_before"`
	StockAfter       decimal.Decimal `json:"stock_after"`
	Applied          bool            `json:"applied"`
}

// RecipeDecompositionDTO receta resuelta para una línea de venta.
type RecipeDecompositionDTO struct {
	LineID       string                  `json:"line_id"`
	RecipeID     string                  `json:"recipe_id"`
	RecipeName   string                  `json:"recipe_name"`
	MatchedBy    string                  `json:"matched_by"`
	QuantitySold decimal.Decimal         `json:"quantity_sold"`
	Ingredients  []IngredientQuantityDTO `json:"ingredients"`
}

// IngredientQuantityDTO cantidad necesaria de un ingrediente para una línea.
type IngredientQuantityDTO struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	QuantityNeeded decimal.Decimal `json:"quantity_needed"`
	Unit           string          `json:"unit"`
}

// SaleProcessingResponse resultado del procesamiento de una venta.
type SaleProcessingResponse struct {
	Success            bool                     `json:"success"`
	AlreadyProcessed   bool                     `json:"already_processed"`
	ValidateOnly       bool                     `json:"validate_only"`
	Status             string                   `json:"status,omitempty"`
	SaleID             string                   `json:"sale_id"`
	OrderNumber        string                   `json:"order_number,omitempty"`
	SyncLogID          string                   `json:"sync_log_id,omitempty"`
	RecipesProcessed   int                      `json:"recipes_processed"`
	IngredientsUpdated int                      `json:"ingredients_updated"`
	Recipes            []RecipeDecompositionDTO `json:"recipes"`
	Impacts            []IngredientImpactDTO    `json:"impacts"`
	Movements          []StockMovementDTO       `json:"movements"`
	Alerts             []StockAlertResponse     `json:"alerts"`
	Errors             []entity.ProcessingError `json:"errors"`
}

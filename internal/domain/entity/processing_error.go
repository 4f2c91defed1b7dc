package entity

// Clases de error de procesamiento de una venta. No abortan la venta: se acumulan en el resultado.
const (
	ErrKindInvalidSale        = "InvalidSale"
	ErrKindRecipeNotFound     = "RecipeNotFound"
	ErrKindInsufficientStock  = "InsufficientStock"
	ErrKindIngredientNotFound = "IngredientNotFound"
	ErrKindStoreUnavailable   = "StoreUnavailable"
)

// ProcessingError error por línea o por ingrediente. Se persiste como JSON en el log.
type ProcessingError struct {
	Kind         string `json:"kind"`
	Message      string `json:"message"`
	LineID       string `json:"line_id,omitempty"`
	ItemRef      string `json:"item_ref,omitempty"`
	IngredientID string `json:"ingredient_id,omitempty"`
}

func (e ProcessingError) Error() string { return e.Kind + ": " + e.Message }

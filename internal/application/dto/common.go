package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=500"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage(def int) {
	if p.Limit <= 0 {
		p.Limit = def
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// MovementQuery filtros de GET /api/stock/movements.
type MovementQuery struct {
	PageRequest
	IngredientID string `query:"ingredient_id"`
	SaleID       string `query:"sale_id"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

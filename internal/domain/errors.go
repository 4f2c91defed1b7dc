package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrRecipeNotFound    = errors.New("receta no encontrada para el artículo vendido")
	ErrRecipeAmbiguous   = errors.New("varias recetas coinciden con el artículo vendido")
	ErrSaleLocked        = errors.New("la venta se está procesando en otra petición")
)

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/yieldfood-api/internal/application/dto"
	"github.com/jhoicas/yieldfood-api/internal/application/monitoring"
	"github.com/jhoicas/yieldfood-api/internal/domain"
)

// AlertHandler alertas de stock (protegido).
type AlertHandler struct {
	uc *monitoring.UseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *monitoring.UseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Listar alertas de stock
// @Tags         lightspeed
// @Security     Bearer
// @Produce      json
// @Param        resolved  query  bool    false  "true = resueltas (default false)"
// @Param        type      query  string  false  "low_stock | out_of_stock | negative_stock"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/lightspeed/stock-alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var q dto.StockAlertQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	if err := validate.Struct(q); err != nil {
		return validationError(c, err)
	}
	alerts, err := h.uc.ListAlerts(c.Context(), userID, q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(alerts), "alerts": alerts})
}

// Resolve godoc
// @Summary      Resolver una alerta de stock
// @Tags         lightspeed
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.StockAlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lightspeed/stock-alerts/{id}/resolve [patch]
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	alert, err := h.uc.ResolveAlert(c.Context(), userID, c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "alerta no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(alert)
}

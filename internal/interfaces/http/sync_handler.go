package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/yieldfood-api/internal/application/dto"
	"github.com/jhoicas/yieldfood-api/internal/application/monitoring"
	"github.com/jhoicas/yieldfood-api/internal/application/sales"
	"github.com/jhoicas/yieldfood-api/internal/domain"
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
)

// SyncHandler maneja la sincronización manual de ventas Lightspeed y su historial (protegido).
type SyncHandler struct {
	processor            *sales.SaleProcessor
	monitoring           *monitoring.UseCase
	defaultAllowNegative bool
}

// NewSyncHandler construye el handler. defaultAllowNegative aplica cuando el body no indica la política.
func NewSyncHandler(processor *sales.SaleProcessor, monitoringUC *monitoring.UseCase, defaultAllowNegative bool) *SyncHandler {
	return &SyncHandler{processor: processor, monitoring: monitoringUC, defaultAllowNegative: defaultAllowNegative}
}

// ManualSync godoc
// @Summary      Procesar una venta Lightspeed
// @Description  Descompone la venta en recetas, descuenta el stock de ingredientes, genera alertas
//
//	y registra el log. Una venta ya procesada no vuelve a descontar stock.
//
// @Tags         lightspeed
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ManualSyncRequest  true  "venta Lightspeed y opciones"
// @Success      200   {object}  dto.SaleProcessingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.SaleProcessingResponse
// @Router       /api/lightspeed/manual-sync [post]
func (h *SyncHandler) ManualSync(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.ManualSyncRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido: " + err.Error()})
	}
	if err := validate.Struct(in); err != nil {
		return validationError(c, err)
	}
	sale := in.Sale.ToEntity()
	if strings.TrimSpace(sale.ID) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "saleID requerido"})
	}

	allowNegative := h.defaultAllowNegative
	if in.AllowNegativeStock != nil {
		allowNegative = *in.AllowNegativeStock
	}
	res, err := h.processor.ProcessSale(c.Context(), sale, sales.Options{
		UserID:             userID,
		SyncType:           entity.SyncTypeManualSync,
		ValidateOnly:       in.ValidateOnly,
		AllowNegativeStock: allowNegative,
		SkipDuplicateCheck: in.SkipDuplicateCheck,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		case errors.Is(err, domain.ErrSaleLocked):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SALE_LOCKED", Message: "la venta se está procesando en otra petición"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}

	status := fiber.StatusOK
	if !res.Success {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(res.ToResponse())
}

// ListSyncLogs godoc
// @Summary      Historial de sincronización
// @Tags         lightspeed
// @Security     Bearer
// @Produce      json
// @Param        limit    query  int     false  "máximo de filas (default 50, máx 500)"
// @Param        status   query  string  false  "success | partial | error"
// @Param        sale_id  query  string  false  "ID de venta Lightspeed"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/lightspeed/sync-logs [get]
func (h *SyncHandler) ListSyncLogs(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var q dto.SyncLogQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	if err := validate.Struct(q); err != nil {
		return validationError(c, err)
	}
	logs, err := h.monitoring.ListSyncLogs(c.Context(), userID, q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(logs), "logs": logs})
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/yieldfood-api/internal/application/inventory"
	"github.com/jhoicas/yieldfood-api/internal/application/monitoring"
	"github.com/jhoicas/yieldfood-api/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Processor            *sales.SaleProcessor
	Monitoring           *monitoring.UseCase
	StockUC              *inventory.StockUseCase
	RestockUC            *inventory.RestockUseCase
	DefaultAllowNegative bool
	JWTSecret            string
	AppName              string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	// Todas las rutas /api requieren Bearer Token (sub = usuario)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Lightspeed: sincronización manual, historial y alertas
	lightspeed := api.Group("/lightspeed")
	syncHandler := NewSyncHandler(deps.Processor, deps.Monitoring, deps.DefaultAllowNegative)
	lightspeed.Post("/manual-sync", syncHandler.ManualSync)
	lightspeed.Get("/sync-logs", syncHandler.ListSyncLogs)
	alertHandler := NewAlertHandler(deps.Monitoring)
	lightspeed.Get("/stock-alerts", alertHandler.List)
	lightspeed.Patch("/stock-alerts/:id/resolve", alertHandler.Resolve)

	// Stock de ingredientes
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, deps.RestockUC)
	stock.Get("/", stockHandler.List)
	stock.Get("/movements", stockHandler.Movements)
	stock.Get("/restock-list", stockHandler.RestockList)
	stock.Get("/restock-list/pdf", stockHandler.RestockPDF)
	stock.Patch("/:ingredientId/adjust", stockHandler.Adjust)
}

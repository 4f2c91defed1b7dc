package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/yieldfood-api/internal/application/inventory"
	"github.com/jhoicas/yieldfood-api/internal/application/monitoring"
	"github.com/jhoicas/yieldfood-api/internal/application/sales"
	"github.com/jhoicas/yieldfood-api/internal/infrastructure/lock"
	infrapdf "github.com/jhoicas/yieldfood-api/internal/infrastructure/pdf"
	"github.com/jhoicas/yieldfood-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/yieldfood-api/internal/interfaces/http"
	"github.com/jhoicas/yieldfood-api/pkg/config"
	"github.com/jhoicas/yieldfood-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if cfg.JWT.Secret == "" {
		panic("JWT_SECRET requerido")
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.Sync.AutoMigrate {
		if err := postgres.ApplySchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		log.Info().Msg("esquema aplicado")
	}

	ingredientRepo := postgres.NewIngredientRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	alertRepo := postgres.NewStockAlertRepository(pool)
	syncLogRepo := postgres.NewSyncLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledger := inventory.NewStockLedger(txRunner)
	alerts := inventory.NewAlertGenerator(alertRepo)

	// Candado por venta: Redis si hay varias réplicas, en memoria si no.
	var locker sales.SaleLocker
	if cfg.Redis.Enabled() {
		rdb, err := lock.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, cfg.Sync, log.Component("lock"))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("candado de ventas en Redis")
	} else {
		locker = lock.NewLocalLocker(cfg.Sync.LockWait())
	}

	processor := sales.NewSaleProcessor(sales.ProcessorDeps{
		Recipes:     recipeRepo,
		Ingredients: ingredientRepo,
		SyncLogs:    syncLogRepo,
		Movements:   movementRepo,
		Ledger:      ledger,
		Alerts:      alerts,
		Locker:      locker,
		Logger:      log.Component("sales"),
	})
	monitoringUC := monitoring.NewUseCase(alertRepo, syncLogRepo)
	stockUC := inventory.NewStockUseCase(ledger, alerts, ingredientRepo, movementRepo, log.Component("stock"))
	restockUC := inventory.NewRestockUseCase(ingredientRepo, infrapdf.NewMarotoPDFGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI: http://localhost:<port>/docs (solo si existe el swagger.json generado)
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "YieldFood API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Processor:            processor,
		Monitoring:           monitoringUC,
		StockUC:              stockUC,
		RestockUC:            restockUC,
		DefaultAllowNegative: cfg.Sync.AllowNegativeStock,
		JWTSecret:            cfg.JWT.Secret,
		AppName:              cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

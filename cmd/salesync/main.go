// Command salesync reprocesa ventas Lightspeed guardadas en JSON contra el inventario.
//
//	salesync process --file venta.json --user <id> [--validate-only] [--memory --seed seed.json]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/yieldfood-api/internal/application/dto"
	"github.com/jhoicas/yieldfood-api/internal/application/inventory"
	"github.com/jhoicas/yieldfood-api/internal/application/sales"
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/infrastructure/lock"
	"github.com/jhoicas/yieldfood-api/internal/infrastructure/memory"
	"github.com/jhoicas/yieldfood-api/internal/infrastructure/postgres"
	"github.com/jhoicas/yieldfood-api/pkg/config"
	"github.com/jhoicas/yieldfood-api/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "salesync",
		Usage: "procesa ventas Lightspeed guardadas y descuenta el stock de ingredientes",
		Commands: []*cli.Command{
			{
				Name:   "process",
				Usage:  "procesa una venta (objeto) o varias (arreglo) desde un archivo JSON",
				Flags:  processFlags(),
				Action: processAction,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func processFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "archivo JSON de la venta (- = stdin)", Required: true},
		&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Usage: "ID del usuario dueño del inventario", Required: true},
		&cli.BoolFlag{Name: "validate-only", Usage: "simula sin escribir nada"},
		&cli.BoolFlag{Name: "allow-negative-stock", Usage: "permite dejar stock negativo (default: SYNC_ALLOW_NEGATIVE_STOCK)"},
		&cli.BoolFlag{Name: "skip-duplicate-check", Usage: "reprocesa aunque la venta ya tenga log exitoso"},
		&cli.BoolFlag{Name: "memory", Usage: "usa un almacén en memoria en lugar de PostgreSQL"},
		&cli.StringFlag{Name: "seed", Usage: "JSON de ingredientes y recetas para --memory"},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "logs de depuración en stderr"},
	}
}

func processAction(c *cli.Context) error {
	ctx := c.Context
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}

	level := "warn"
	if c.Bool("verbose") {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: level, App: "salesync", Output: os.Stderr})

	raw, err := readInput(c.String("file"))
	if err != nil {
		return err
	}
	salesIn, err := parseSales(raw)
	if err != nil {
		return err
	}

	userID := c.String("user")
	var deps sales.ProcessorDeps
	if c.Bool("memory") {
		store := memory.NewStore()
		if path := c.String("seed"); path != "" {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("abrir seed: %w", err)
			}
			err = store.LoadSeed(f, userID)
			_ = f.Close()
			if err != nil {
				return err
			}
		}
		deps = sales.ProcessorDeps{
			Recipes:     memory.NewRecipeRepo(store),
			Ingredients: memory.NewIngredientRepo(store),
			SyncLogs:    memory.NewSyncLogRepo(store),
			Movements:   memory.NewStockMovementRepo(store),
			Ledger:      inventory.NewStockLedger(memory.NewTxRunner(store)),
			Alerts:      inventory.NewAlertGenerator(memory.NewStockAlertRepo(store)),
		}
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		defer pool.Close()
		deps = sales.ProcessorDeps{
			Recipes:     postgres.NewRecipeRepository(pool),
			Ingredients: postgres.NewIngredientRepository(pool),
			SyncLogs:    postgres.NewSyncLogRepository(pool),
			Movements:   postgres.NewStockMovementRepository(pool),
			Ledger:      inventory.NewStockLedger(postgres.NewTxRunner(pool)),
			Alerts:      inventory.NewAlertGenerator(postgres.NewStockAlertRepository(pool)),
		}
	}
	deps.Locker = lock.NewLocalLocker(cfg.Sync.LockWait())
	deps.Logger = log.Component("sales")
	processor := sales.NewSaleProcessor(deps)

	allowNegative := cfg.Sync.AllowNegativeStock
	if c.IsSet("allow-negative-stock") {
		allowNegative = c.Bool("allow-negative-stock")
	}
	opts := sales.Options{
		UserID:             userID,
		SyncType:           entity.SyncTypeManualSync,
		ValidateOnly:       c.Bool("validate-only"),
		AllowNegativeStock: allowNegative,
		SkipDuplicateCheck: c.Bool("skip-duplicate-check"),
	}

	results := make([]dto.SaleProcessingResponse, 0, len(salesIn))
	failed := 0
	for _, s := range salesIn {
		res, err := processor.ProcessSale(ctx, s.ToEntity(), opts)
		if err != nil {
			return fmt.Errorf("venta %s: %w", s.SaleID, err)
		}
		if !res.Success {
			failed++
		}
		results = append(results, res.ToResponse())
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return err
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d de %d ventas con errores", failed, len(salesIn)), 1)
	}
	return nil
}

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
	appacc "github.com/jhoicas/stock-ledger-api/internal/application/accounting"
	"github.com/jhoicas/stock-ledger-api/internal/application/auth"
	appso "github.com/jhoicas/stock-ledger-api/internal/application/stockout"
	"github.com/jhoicas/stock-ledger-api/internal/domain/stockout"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stock-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger-api/pkg/config"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Sondeo de arranque: ¿existe la función decrement_inventory en la base?
	// Si no, el decrementer usa el camino manual con SELECT FOR UPDATE.
	procMissing := postgres.DetectDecrementCapability(ctx, pool, log)

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	stockOutRepo := postgres.NewStockOutTransactionRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	glRepo := postgres.NewGLTransactionRepository(pool)
	txRunner := postgres.NewTxRunner(pool, log, procMissing)

	refs := stockout.NewReferenceGenerator()
	actorResolver := appso.NewChainActorResolver(userRepo)
	costResolver := appso.NewCostResolver(movementRepo, productRepo, log)
	accountResolver := appacc.NewAccountResolver(accountRepo)
	journalBuilder := appacc.NewJournalBuilder(accountResolver)
	journalPoster := appacc.NewJournalPoster(journalBuilder, txRunner, refs, log)

	processUC := appso.NewProcessStockOutUseCase(
		txRunner, actorResolver, costResolver, journalPoster, refs,
		inventoryRepo, productRepo, branchRepo, log,
	)
	queryUC := appso.NewQueryUseCase(stockOutRepo, movementRepo, glRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProcessStockOut: processUC,
		StockOutQueries: queryUC,
		AuthUC:          authUC,
		JWTSecret:       cfg.JWT.Secret,
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

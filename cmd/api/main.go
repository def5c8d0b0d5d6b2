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

	"github.com/jhoicas/relojeria-api/internal/application/analytics"
	"github.com/jhoicas/relojeria-api/internal/application/auth"
	appcustomer "github.com/jhoicas/relojeria-api/internal/application/customer"
	"github.com/jhoicas/relojeria-api/internal/application/expense"
	"github.com/jhoicas/relojeria-api/internal/application/inventory"
	"github.com/jhoicas/relojeria-api/internal/application/sales"
	"github.com/jhoicas/relojeria-api/internal/application/serviceorder"
	infracache "github.com/jhoicas/relojeria-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/relojeria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/relojeria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/relojeria-api/internal/interfaces/http"
	"github.com/jhoicas/relojeria-api/pkg/config"
	"github.com/jhoicas/relojeria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
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

	itemRepo := postgres.NewItemRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	serviceRepo := postgres.NewServiceOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := inventory.NewLedgerUseCase(txRunner, itemRepo, movementRepo)
	aggregatorUC := appcustomer.NewAggregatorUseCase(customerRepo)
	customerUC := appcustomer.NewUseCase(customerRepo)
	salesUC := sales.NewUseCase(txRunner, ledgerUC, aggregatorUC, customerRepo, itemRepo, saleRepo)
	serviceUC := serviceorder.NewLifecycleUseCase(txRunner, aggregatorUC, serviceRepo, customerRepo)
	expenseUC := expense.NewUseCase(expenseRepo)

	// Comprobante de venta en PDF con los datos del negocio
	receiptGen := infrapdf.NewMarotoReceiptGenerator(cfg.Shop.Name, cfg.Shop.Address, cfg.Shop.Phone)
	receiptUC := sales.NewReceiptUseCase(salesUC, receiptGen)

	// Caché del dashboard: Redis si está configurado y responde, Noop si no
	var dashboardCache analytics.DashboardCache = analytics.NoopCache{}
	if cfg.Redis.Addr != "" {
		redisCache := infracache.NewRedisDashboardCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, dashboard sin caché")
		} else {
			dashboardCache = redisCache
			defer redisCache.Close()
		}
		cancel()
	}
	dashboardUC := analytics.NewDashboardUseCase(statsRepo, dashboardCache)

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
		Title:    "Relojería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:     ledgerUC,
		CustomerUC:   customerUC,
		AggregatorUC: aggregatorUC,
		SalesUC:      salesUC,
		ReceiptUC:    receiptUC,
		ServiceUC:    serviceUC,
		ExpenseUC:    expenseUC,
		DashboardUC:  dashboardUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
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

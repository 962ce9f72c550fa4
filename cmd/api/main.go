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
	"github.com/shopspring/decimal"

	"github.com/NicolasBroyad/machine-dumping-api/internal/application/auth"
	"github.com/NicolasBroyad/machine-dumping-api/internal/application/usecase"
	infrapdf "github.com/NicolasBroyad/machine-dumping-api/internal/infrastructure/pdf"
	"github.com/NicolasBroyad/machine-dumping-api/internal/infrastructure/postgres"
	httpRouter "github.com/NicolasBroyad/machine-dumping-api/internal/interfaces/http"
	"github.com/NicolasBroyad/machine-dumping-api/pkg/config"
	"github.com/NicolasBroyad/machine-dumping-api/pkg/logger"
)

func main() {
	// Los precios y totales viajan como números JSON, no como strings:
	// la app cliente los consume directo en sus gráficas.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	userRepo := postgres.NewUserRepository(pool)
	envRepo := postgres.NewEnvironmentRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	registerRepo := postgres.NewRegisterRepository(pool)
	statsRepo := postgres.NewStatisticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	environmentUC := usecase.NewEnvironmentUseCase(envRepo)
	productUC := usecase.NewProductUseCase(productRepo, envRepo)
	registerUC := usecase.NewRegisterUseCase(txRunner, registerRepo)

	// PDF: reporte de estadísticas descargable desde el dashboard de la company
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	statisticsUC := usecase.NewStatisticsUseCase(statsRepo, envRepo, userRepo, pdfGenerator)

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
		Title:    "Machine Dumping API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		EnvironmentUC: environmentUC,
		ProductUC:     productUC,
		RegisterUC:    registerUC,
		StatisticsUC:  statisticsUC,
		JWTSecret:     cfg.JWT.Secret,
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

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

	"github.com/jortega/restobar-api/internal/application/auth"
	"github.com/jortega/restobar-api/internal/application/catalog"
	"github.com/jortega/restobar-api/internal/application/inventory"
	infrapdf "github.com/jortega/restobar-api/internal/infrastructure/pdf"
	"github.com/jortega/restobar-api/internal/infrastructure/store"
	httpRouter "github.com/jortega/restobar-api/internal/interfaces/http"
	"github.com/jortega/restobar-api/pkg/config"
	"github.com/jortega/restobar-api/pkg/logger"
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
		Str("store", cfg.Store.Driver).
		Bool("permitir_stock_negativo", cfg.Inventory.AllowNegativeStock).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := store.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar store")
	}
	defer repos.Close()

	ledger := inventory.NewLedger(cfg.Inventory.AllowNegativeStock)
	writer := inventory.NewTransactionWriter(repos.TxRunner, ledger, repos.Articulos, repos.Almacenes, repos.Secuencias)
	reversal := inventory.NewReversalEngine(repos.TxRunner, ledger, repos.Articulos, repos.Secuencias)
	kardexReader := inventory.NewKardexReader(repos.Movimientos, repos.Stocks, repos.Articulos, repos.Almacenes)

	articuloUC := catalog.NewArticuloUseCase(repos.Articulos, repos.Almacenes)
	almacenUC := catalog.NewAlmacenUseCase(repos.Almacenes)
	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	kardexPDF := infrapdf.NewMarotoKardexGenerator()

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
		Title:    "Restobar API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ArticuloUC: articuloUC,
		AlmacenUC:  almacenUC,
		Writer:     writer,
		Reversal:   reversal,
		Kardex:     kardexReader,
		KardexPDF:  kardexPDF,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Farmacia-api/internal/application/analytics"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/flatfile"
	infrapdf "github.com/jhoicas/Farmacia-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/Farmacia-api/internal/interfaces/http"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("data_file", cfg.Data.File).
		Msg("iniciando aplicación")

	medicationRepo := flatfile.NewMedicationRepository(flatfile.Config{
		Path:        cfg.Data.File,
		AtomicWrite: cfg.Data.AtomicWrite,
	}, log)

	// Carga inicial: crea el archivo si no existe y reporta líneas inválidas.
	items, err := medicationRepo.LoadAll()
	if err != nil {
		log.Fatal().Err(err).Msg("abrir archivo de datos")
	}
	log.Info().Int("medications", len(items)).Msg("inventario cargado")

	medicationUC := inventory.NewMedicationUseCase(medicationRepo, log)
	reportUC := analytics.NewReportUseCase(medicationRepo, analytics.ReportConfig{
		ExpiryWindowDays:  cfg.Report.ExpiryWindowDays,
		LowStockThreshold: cfg.Report.LowStockThreshold,
	}, infrapdf.NewMarotoReportGenerator(cfg.Report.Title))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MedicationUC: medicationUC,
		ReportUC:     reportUC,
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

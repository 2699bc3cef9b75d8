package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/vale-consumo/internal/application/usecase"
	"github.com/jhoicas/vale-consumo/internal/application/vale"
	"github.com/jhoicas/vale-consumo/internal/infrastructure/archive"
	"github.com/jhoicas/vale-consumo/internal/infrastructure/excel"
	"github.com/jhoicas/vale-consumo/internal/infrastructure/jsonstore"
	infrapdf "github.com/jhoicas/vale-consumo/internal/infrastructure/pdf"
	"github.com/jhoicas/vale-consumo/internal/infrastructure/printing"
	"github.com/jhoicas/vale-consumo/internal/infrastructure/registry"
	"github.com/jhoicas/vale-consumo/internal/infrastructure/scheduler"
	"github.com/jhoicas/vale-consumo/internal/infrastructure/settings"
	httpRouter "github.com/jhoicas/vale-consumo/internal/interfaces/http"
	"github.com/jhoicas/vale-consumo/pkg/config"
	"github.com/jhoicas/vale-consumo/pkg/logger"
)

func main() {
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
		Str("history_dir", cfg.Vale.HistoryDir).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	reg := registry.New(cfg.Vale.HistoryDir, registry.WithLogger(log.Component("registry")))

	// Impresión: sólo si está habilitada; si no, se registra y se ignora.
	var printer vale.Printer = printing.NewNoopPrinter(log.Component("printing"))
	if cfg.Print.Enabled {
		printer = printing.NewOSPrinter(printing.Options{
			Command:    cfg.Print.Command,
			SumatraPDF: cfg.Print.SumatraPDF,
		}, log.Component("printing"))
	}

	var archiver vale.Archiver = archive.NoopArchiver{}
	if cfg.Archive.Enabled() {
		minioArchiver, err := archive.NewMinioArchiver(
			cfg.Archive.Endpoint, cfg.Archive.AccessKey, cfg.Archive.SecretKey,
			cfg.Archive.Bucket, cfg.Archive.UseSSL, log.Component("archive"),
		)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente de archivo MinIO")
		}
		if err := minioArchiver.EnsureBucket(ctx); err != nil {
			log.Warn().Err(err).Str("bucket", cfg.Archive.Bucket).Msg("no se pudo verificar el bucket de archivo")
		}
		archiver = minioArchiver
	}

	valeSvc := vale.NewValeService(vale.Deps{
		Registry: reg,
		Loader:   excel.NewInventoryLoader(log.Component("excel"), excel.DefaultChunkSize),
		Renderer: infrapdf.NewValeRenderer(cfg.PDF.Margin),
		Merger:   infrapdf.NewMerger(),
		Printer:  printer,
		Archiver: archiver,
		Exporter: excel.NewRegistryExporter(),
		Settings: settings.NewStore(filepath.Join(cfg.Vale.DataDir, cfg.Vale.SettingsFile), log.Component("settings")),
		Logger:   log,
	}, vale.Options{
		Title:           cfg.Vale.Title,
		AreaFilter:      cfg.Vale.AreaFilter,
		InventoryFile:   cfg.Vale.InventoryFile,
		DefaultCopies:   cfg.Print.Copies,
		ExternalTimeout: cfg.Print.Timeout(),
	})
	defer valeSvc.Close()

	peopleUC := usecase.NewPeopleUseCase(jsonstore.NewPeopleStore(cfg.Vale.DataDir))

	// Planilla por defecto: si no existe se arranca con inventario vacío.
	if path := valeSvc.DefaultInventoryPath(); path != "" {
		if _, err := valeSvc.StartLoad(path); err != nil {
			log.Warn().Err(err).Str("file", path).Msg("no se pudo iniciar la carga inicial")
		}
	}

	// Reindexación periódica del historial (documentos copiados a mano, etc.)
	var sched *scheduler.Scheduler
	if interval := cfg.Vale.ReindexInterval(); interval > 0 {
		sched, err = scheduler.New(ctx, log.Component("scheduler"))
		if err != nil {
			log.Fatal().Err(err).Msg("crear planificador")
		}
		err = sched.Every("reindex-historial", interval, false, func(context.Context) {
			valeSvc.Reindex()
		})
		if err != nil {
			log.Fatal().Err(err).Msg("programar reindexación")
		}
		sched.Start()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Vale de consumo API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ValeSvc:  valeSvc,
		PeopleUC: peopleUC,
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

	if sched != nil {
		if err := sched.Shutdown(); err != nil {
			log.Error().Err(err).Msg("apagado del planificador")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

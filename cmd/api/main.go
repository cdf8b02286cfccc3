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
	"github.com/tu-usuario/albaran-pro/internal/application/usecase"
	"github.com/tu-usuario/albaran-pro/internal/domain/repository"
	"github.com/tu-usuario/albaran-pro/internal/infrastructure/airtable"
	"github.com/tu-usuario/albaran-pro/internal/infrastructure/memory"
	infrapdf "github.com/tu-usuario/albaran-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/albaran-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/albaran-pro/internal/interfaces/http"
	"github.com/tu-usuario/albaran-pro/pkg/config"
	"github.com/tu-usuario/albaran-pro/pkg/logger"
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
	store, cerrar := elegirStore(ctx, cfg, log)
	defer cerrar()

	albaranUC := usecase.NewAlbaranUseCase(store)
	dashboardUC := usecase.NewDashboardUseCase(store)
	pdfGenerator := infrapdf.NewMarotoAlbaranGenerator()
	pdfUC := usecase.NewPDFUseCase(store, pdfGenerator)

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
		Title:    "Albaran Pro API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AlbaranUC:   albaranUC,
		DashboardUC: dashboardUC,
		PDFUC:       pdfUC,
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

// elegirStore selecciona el almacén de persistencia según la configuración
// disponible: PostgreSQL si hay base de datos alcanzable, Airtable si hay
// credenciales, y si no, modo degradado en memoria con datos de demostración.
// La aplicación arranca siempre; la falta de backend nunca es fatal.
func elegirStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.AlbaranRepository, func()) {
	if cfg.DB.Configured() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err == nil {
			log.Info().Msg("persistencia: PostgreSQL")
			return postgres.NewAlbaranRepository(pool), pool.Close
		}
		log.Warn().Err(err).Msg("PostgreSQL configurado pero no alcanzable, probando siguiente backend")
	}

	airtableCfg := airtable.Config{
		Token:     cfg.Airtable.Token,
		BaseID:    cfg.Airtable.BaseID,
		TableName: cfg.Airtable.TableName,
		BaseURL:   cfg.Airtable.BaseURL,
	}
	if airtableCfg.Configured() {
		log.Info().Msg("persistencia: Airtable")
		return airtable.NewStore(airtableCfg), func() {}
	}

	log.Warn().Msg("sin backend de persistencia configurado: modo degradado en memoria con datos de demostración")
	return memory.NewStore(memory.SeedAlbaranes()...), func() {}
}

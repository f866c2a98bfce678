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

	_ "github.com/jhoicas/Farmacia-api/docs"
	"github.com/jhoicas/Farmacia-api/internal/application/audit"
	"github.com/jhoicas/Farmacia-api/internal/application/auth"
	"github.com/jhoicas/Farmacia-api/internal/application/category"
	"github.com/jhoicas/Farmacia-api/internal/application/checkout"
	"github.com/jhoicas/Farmacia-api/internal/application/dashboard"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/recommendation"
	"github.com/jhoicas/Farmacia-api/internal/application/remotesync"
	"github.com/jhoicas/Farmacia-api/internal/application/session"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/memstore"
	infrapdf "github.com/jhoicas/Farmacia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/Farmacia-api/internal/interfaces/http"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

// @title        Farmacia API
// @version      1.0
// @description  Inventario, caja y auditoría de una farmacia.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, reports, closeStore := openStore(ctx, cfg, log)
	defer closeStore()

	// Espejo remoto: las mutaciones de inventario y categorías se aplican en memoria y se replican en segundo plano.
	mirror := remotesync.NewMirror(cfg.Sync.QueueSize, log.Component("remotesync"))
	go mirror.Run(ctx)

	auditLog := audit.NewLog(store, cfg.Audit.QueryLimit, log.Component("audit"))

	invStore := inventory.NewStore(store, mirror, log.Component("inventory"))
	if err := invStore.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("cargar inventario")
	}
	registry := category.NewRegistry(store, invStore, mirror, log.Component("category"))
	if err := registry.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("cargar categorías")
	}

	sessions := session.NewManager()
	checkoutSvc := checkout.NewService(invStore, store, auditLog, cfg.Checkout.TaxRate, log.Component("checkout"))
	medicineUC := inventory.NewMedicineUseCase(invStore, auditLog)
	engine := recommendation.NewEngine(cfg.Recommendation.Limit)
	dashboardUC := dashboard.NewUseCase(invStore, registry, reports)

	userUC := usecase.NewUserUseCase(store, auditLog)
	procurementUC := usecase.NewProcurementUseCase(store)
	pharmacyUC := usecase.NewPharmacyUseCase(store, auditLog)
	// PDF: comprobante de venta A5 con QR del id del recibo
	receiptUC := usecase.NewReceiptUseCase(store, pharmacyUC, infrapdf.NewMarotoReceiptGenerator())

	authUC := auth.NewAuthUseCase(store, auditLog, sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))

	if cfg.Bootstrap.AdminPassword == "" {
		log.Warn().Msg("BOOTSTRAP_ADMIN_PASSWORD vacío: no se crea el administrador inicial")
	} else {
		created, err := authUC.Bootstrap(ctx, cfg.Bootstrap.AdminUser, cfg.Bootstrap.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		if created {
			log.Info().Str("username", cfg.Bootstrap.AdminUser).Msg("administrador inicial creado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.App.SwaggerEnabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Farmacia API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		MedicineUC:    medicineUC,
		Inventory:     invStore,
		Categories:    registry,
		Engine:        engine,
		Sessions:      sessions,
		Checkout:      checkoutSvc,
		Audit:         auditLog,
		DashboardUC:   dashboardUC,
		UserUC:        userUC,
		ProcurementUC: procurementUC,
		PharmacyUC:    pharmacyUC,
		ReceiptUC:     receiptUC,
		SyncJournal:   mirror.Journal(),
		JWTSecret:     cfg.JWT.Secret,
		Log:           log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}

	// Esperar a que el espejo remoto vacíe su cola antes de cortar el contexto.
	flushed := make(chan struct{})
	go func() {
		mirror.Flush()
		close(flushed)
	}()
	select {
	case <-flushed:
	case <-shutdownCtx.Done():
		log.Warn().Int("sync_failures", mirror.Journal().Total()).Msg("cola de sincronización sin vaciar al apagar")
	}
	cancel()
}

// openStore abre el almacén de documentos configurado y su repositorio de reportes.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.DocumentStore, repository.ReportRepository, func()) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		docs := postgres.NewDocumentStore(pool)
		if err := docs.EnsureSchema(ctx); err != nil {
			pool.Close()
			log.Fatal().Err(err).Msg("esquema de documentos en PostgreSQL")
		}
		return docs, postgres.NewReportRepository(pool), pool.Close

	case config.StoreSQLite:
		docs, err := sqlite.Open(ctx, cfg.Store.SQLiteDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir SQLite")
		}
		return docs, sqlite.NewReportRepository(docs), func() {
			if err := docs.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar SQLite")
			}
		}

	default:
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		docs := memstore.New()
		return docs, memstore.NewReportRepository(docs), func() {}
	}
}

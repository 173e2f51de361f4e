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

	"github.com/jhoicas/Taller-api/internal/application/auth"
	appledger "github.com/jhoicas/Taller-api/internal/application/ledger"
	apprepair "github.com/jhoicas/Taller-api/internal/application/repair"
	appreport "github.com/jhoicas/Taller-api/internal/application/report"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Taller-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Taller-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Taller-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/Taller-api/internal/interfaces/http"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	partRepo := postgres.NewPartRepository(pool)
	containerRepo := postgres.NewContainerRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	equipmentRepo := postgres.NewEquipmentRepository(pool)
	repairRepo := postgres.NewRepairRepository(pool)
	staffRepo := postgres.NewStaffRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := appledger.NewUseCase(txRunner, partRepo)
	repairUC := apprepair.NewUseCase(txRunner, repairRepo, equipmentRepo, staffRepo)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	partUC := usecase.NewPartUseCase(txRunner, partRepo, containerRepo)
	containerUC := usecase.NewContainerUseCase(containerRepo, partRepo)
	equipmentUC := usecase.NewEquipmentUseCase(equipmentRepo, repairRepo)
	staffUC := usecase.NewStaffUseCase(staffRepo)
	transactionUC := usecase.NewTransactionUseCase(transactionRepo, partRepo, equipmentRepo)

	ledgerExporter := xmlexport.NewLedgerExporter()
	pdfGenerator := infrapdf.NewMarotoRepairGenerator()
	reportUC := appreport.NewUseCase(
		reportRepo, transactionRepo, repairRepo, equipmentRepo, partRepo,
		companyRepo, ledgerExporter, pdfGenerator,
	)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
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
		Title:    "Taller API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:     companyUC,
		PartUC:        partUC,
		ContainerUC:   containerUC,
		EquipmentUC:   equipmentUC,
		StaffUC:       staffUC,
		TransactionUC: transactionUC,
		LedgerUC:      ledgerUC,
		RepairUC:      repairUC,
		ReportUC:      reportUC,
		AuthUC:        authUC,
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

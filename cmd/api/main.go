package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/auth"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/billing"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/catalog"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/closing"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/reporting"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/stock"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/interfaces/http"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/pkg/config"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("charger la configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	receptionRepo := postgres.NewReceptionRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	contractRepo := postgres.NewContractRepository(pool)
	closureRepo := postgres.NewClosureRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportingRepo := postgres.NewReportingRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledger := stock.NewLedger(txRunner)
	receptionUC := stock.NewReceptionUseCase(txRunner)
	productUC := catalog.NewProductUseCase(productRepo)
	clientUC := catalog.NewClientUseCase(clientRepo)
	balanceSvc := billing.NewBalanceService(clientRepo, invoiceRepo, paymentRepo, closureRepo)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, cfg.Gestion.PlafondEspeces)
	paymentUC := billing.NewPaymentUseCase(txRunner, cfg.Gestion.PlafondEspeces)
	closureUC := closing.NewClosureUseCase(txRunner)
	reportingUC := reporting.NewReportingUseCase(reportingRepo, clientRepo, balanceSvc)
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

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		ClientUC:    clientUC,
		Ledger:      ledger,
		ReceptionUC: receptionUC,
		InvoiceUC:   invoiceUC,
		PaymentUC:   paymentUC,
		Balance:     balanceSvc,
		ClosureUC:   closureUC,
		ReportingUC: reportingUC,
		Movements:   movementRepo,
		Receptions:  receptionRepo,
		Invoices:    invoiceRepo,
		Payments:    paymentRepo,
		Contracts:   contractRepo,
		Clients:     clientRepo,
		Closures:    closureRepo,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP terminé")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}

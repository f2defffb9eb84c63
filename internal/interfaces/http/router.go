package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/auth"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/billing"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/catalog"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/closing"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/reporting"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/stock"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

// RouterDeps dépendances du routeur.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProductUC    *catalog.ProductUseCase
	ClientUC     *catalog.ClientUseCase
	Ledger       *stock.Ledger
	ReceptionUC  *stock.ReceptionUseCase
	InvoiceUC    *billing.InvoiceUseCase
	PaymentUC    *billing.PaymentUseCase
	Balance      *billing.BalanceService
	ClosureUC    *closing.ClosureUseCase
	ReportingUC  *reporting.ReportingUseCase
	Movements    repository.MovementRepository
	Receptions   repository.ReceptionRepository
	Invoices     repository.InvoiceRepository
	Payments     repository.PaymentRepository
	Contracts    repository.ContractRepository
	Clients      repository.ClientRepository
	Closures     repository.ClosureRepository
	JWTSecret    string
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Routes protégées (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	gestion := RequireRole(entity.RoleAdmin, entity.RoleGestionnaire)
	admin := RequireRole(entity.RoleAdmin)

	// Catalogue produits
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	stockHandler := NewStockHandler(deps.Ledger, deps.ReceptionUC, deps.Movements, deps.Receptions)
	products.Post("/", gestion, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", gestion, productHandler.Patch)
	products.Delete("/:id", gestion, productHandler.Deactivate)
	products.Get("/:id/movements", stockHandler.ListMovements)
	products.Post("/:id/recalculate", gestion, stockHandler.Recalculate)

	// Clients
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC, deps.Balance)
	paymentHandler := NewPaymentHandler(deps.PaymentUC, deps.Payments)
	contractHandler := NewContractHandler(deps.Contracts, deps.Clients)
	clients.Post("/", gestion, clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Patch("/:id", gestion, clientHandler.Patch)
	clients.Delete("/:id", gestion, clientHandler.Deactivate)
	clients.Get("/:id/balance", clientHandler.Balance)
	clients.Get("/:id/payments", paymentHandler.ListByClient)
	clients.Get("/:id/contracts", contractHandler.ListByClient)

	// Réceptions et livre de stock
	receptions := protected.Group("/receptions")
	receptions.Post("/", gestion, stockHandler.CreateReception)
	receptions.Get("/", stockHandler.ListReceptions)
	receptions.Delete("/:id", gestion, stockHandler.DeleteReception)

	stockGroup := protected.Group("/stock")
	stockGroup.Post("/corrections", gestion, stockHandler.CreateCorrection)
	stockGroup.Post("/replay", admin, stockHandler.Replay)

	// Factures et avoirs
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.Invoices)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id/lines", invoiceHandler.UpdateDraft)
	invoices.Post("/:id/confirm", invoiceHandler.Confirm)
	invoices.Post("/:id/cancel", gestion, invoiceHandler.Cancel)

	// Règlements
	payments := protected.Group("/payments")
	payments.Post("/", paymentHandler.Record)

	bordereaux := protected.Group("/bordereaux")
	bordereaux.Post("/", gestion, paymentHandler.CreateBordereau)

	// Contrats
	contracts := protected.Group("/contracts")
	contracts.Post("/", gestion, contractHandler.Create)

	// Clôture annuelle
	closures := protected.Group("/closures")
	closureHandler := NewClosureHandler(deps.ClosureUC, deps.Closures)
	closures.Post("/", admin, closureHandler.Close)
	closures.Get("/:year", closureHandler.GetByYear)

	// États
	reports := protected.Group("/reports")
	reportingHandler := NewReportingHandler(deps.ReportingUC)
	reports.Get("/daily-sales", reportingHandler.DailySales)
	reports.Get("/product-movements", reportingHandler.ProductMovements)
	reports.Get("/receivables", reportingHandler.Receivables)
}

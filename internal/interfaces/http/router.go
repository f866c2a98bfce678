package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

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
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	MedicineUC    *inventory.MedicineUseCase
	Inventory     *inventory.Store
	Categories    *category.Registry
	Engine        *recommendation.Engine
	Sessions      *session.Manager
	Checkout      *checkout.Service
	Audit         *audit.Log
	DashboardUC   *dashboard.UseCase
	UserUC        *usecase.UserUseCase
	ProcurementUC *usecase.ProcurementUseCase
	PharmacyUC    *usecase.PharmacyUseCase
	ReceiptUC     *usecase.ReceiptUseCase
	SyncJournal   *remotesync.Journal
	JWTSecret     string
	Log           zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	log := deps.Log

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	admins := RequireRole(entity.RoleManager, entity.RoleOwner)

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Medicines
	medicines := protected.Group("/medicines")
	medicineHandler := NewMedicineHandler(deps.MedicineUC, deps.Audit, log)
	medicines.Get("/", medicineHandler.List)
	medicines.Post("/", medicineHandler.Create)
	medicines.Get("/:id", medicineHandler.GetByID)
	medicines.Put("/:id", medicineHandler.Update)
	medicines.Delete("/:id", medicineHandler.Delete)
	medicines.Get("/:id/history", medicineHandler.History)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.Categories, deps.Inventory, log)
	categories.Get("/", categoryHandler.List)
	categories.Get("/stats", categoryHandler.Stats)
	categories.Post("/", categoryHandler.Add)
	categories.Delete("/:name", categoryHandler.Remove)

	// Recommendations
	recommendationHandler := NewRecommendationHandler(deps.Engine, deps.Inventory)
	protected.Get("/recommendations", recommendationHandler.List)

	// Cart / checkout
	cart := protected.Group("/cart")
	cartHandler := NewCartHandler(deps.Sessions, deps.Checkout, deps.Inventory, log)
	cart.Get("/", cartHandler.Get)
	cart.Delete("/", cartHandler.Clear)
	cart.Get("/totals", cartHandler.Totals)
	cart.Post("/lines", cartHandler.AddLine)
	cart.Patch("/lines/:id", cartHandler.AdjustLine)
	cart.Delete("/lines/:id", cartHandler.RemoveLine)
	cart.Post("/checkout", cartHandler.Checkout)

	// Receipts
	receipts := protected.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.ReceiptUC, log)
	receipts.Get("/", receiptHandler.List)
	receipts.Delete("/", admins, receiptHandler.Clear)
	receipts.Get("/:id", receiptHandler.GetByID)
	receipts.Get("/:id/pdf", receiptHandler.DownloadPDF)

	// Audit
	auditGroup := protected.Group("/audit")
	auditHandler := NewAuditHandler(deps.Audit, log)
	auditGroup.Get("/", auditHandler.List)
	auditGroup.Get("/actions", auditHandler.Actions)
	auditGroup.Get("/export", auditHandler.Export)
	auditGroup.Delete("/", admins, auditHandler.Clear)

	// Dashboard
	dash := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
	dash.Get("/summary", dashboardHandler.GetSummary)
	dash.Get("/notifications", dashboardHandler.GetNotifications)
	dash.Get("/sales", dashboardHandler.GetSales)
	dash.Get("/categories", dashboardHandler.GetCategories)

	// Users (manager/owner)
	users := protected.Group("/users", admins)
	userHandler := NewUserHandler(deps.UserUC, log)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", userHandler.Update)
	users.Post("/:id/deactivate", userHandler.Deactivate)
	users.Delete("/:id", userHandler.Delete)

	// Suppliers / orders
	procurementHandler := NewProcurementHandler(deps.ProcurementUC, log)
	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", procurementHandler.ListSuppliers)
	suppliers.Post("/", procurementHandler.CreateSupplier)
	suppliers.Put("/:id", procurementHandler.UpdateSupplier)
	suppliers.Delete("/:id", procurementHandler.DeleteSupplier)
	orders := protected.Group("/orders")
	orders.Get("/", procurementHandler.ListOrders)
	orders.Post("/", procurementHandler.CreateOrder)
	orders.Patch("/:id/status", procurementHandler.SetOrderStatus)
	orders.Delete("/:id", procurementHandler.DeleteOrder)

	// Settings
	settingsHandler := NewSettingsHandler(deps.PharmacyUC, deps.SyncJournal, log)
	protected.Get("/pharmacy", settingsHandler.GetPharmacy)
	protected.Put("/pharmacy", admins, settingsHandler.UpdatePharmacy)
	protected.Get("/sync/failures", settingsHandler.SyncFailures)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/relojeria-api/internal/application/analytics"
	"github.com/jhoicas/relojeria-api/internal/application/auth"
	"github.com/jhoicas/relojeria-api/internal/application/customer"
	"github.com/jhoicas/relojeria-api/internal/application/expense"
	"github.com/jhoicas/relojeria-api/internal/application/inventory"
	"github.com/jhoicas/relojeria-api/internal/application/sales"
	"github.com/jhoicas/relojeria-api/internal/application/serviceorder"
	"github.com/jhoicas/relojeria-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC     *inventory.LedgerUseCase
	CustomerUC   *customer.UseCase
	AggregatorUC *customer.AggregatorUseCase
	SalesUC      *sales.UseCase
	ReceiptUC    *sales.ReceiptUseCase
	ServiceUC    *serviceorder.LifecycleUseCase
	ExpenseUC    *expense.UseCase
	DashboardUC  *analytics.DashboardUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventory (protegido)
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	inv.Post("/", inventoryHandler.Create)
	inv.Get("/", inventoryHandler.List)
	inv.Get("/:id", inventoryHandler.GetByID)
	inv.Put("/:id", inventoryHandler.Update)
	inv.Delete("/:id", RequireRole(entity.RoleAdmin), inventoryHandler.Delete)
	inv.Post("/:id/decrease", inventoryHandler.Decrease)
	inv.Post("/:id/increase", inventoryHandler.Increase)
	inv.Post("/:id/adjust", inventoryHandler.Adjust)
	inv.Post("/:id/move", inventoryHandler.Move)
	inv.Get("/:id/movements", inventoryHandler.Movements)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.AggregatorUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", RequireRole(entity.RoleAdmin), customerHandler.Delete)
	customers.Post("/:id/recompute", customerHandler.Recompute)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC, deps.ReceiptUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id", saleHandler.Update)
	salesGroup.Delete("/:id", RequireRole(entity.RoleAdmin), saleHandler.Delete)
	salesGroup.Get("/:id/receipt.pdf", saleHandler.Receipt)

	// Services (protegido)
	services := protected.Group("/services")
	serviceHandler := NewServiceHandler(deps.ServiceUC)
	services.Post("/", serviceHandler.Create)
	services.Get("/", serviceHandler.List)
	services.Get("/:id", serviceHandler.GetByID)
	services.Patch("/:id/status", serviceHandler.UpdateStatus)
	services.Post("/:id/complete", serviceHandler.Complete)
	services.Post("/:id/notes", serviceHandler.AddNote)
	services.Post("/:id/reassign", serviceHandler.Reassign)
	services.Delete("/:id", RequireRole(entity.RoleAdmin), serviceHandler.Delete)

	// Expenses (protegido)
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/summary", expenseHandler.Summary)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", RequireRole(entity.RoleAdmin), expenseHandler.Delete)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.GetSummary)
}

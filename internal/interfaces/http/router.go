package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/auth"
	appso "github.com/jhoicas/stock-ledger-api/internal/application/stockout"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProcessStockOut *appso.ProcessStockOutUseCase
	StockOutQueries *appso.QueryUseCase
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
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

	// Stock-outs (protegido): el motor de retiros y sus lecturas de conciliación
	stockOuts := protected.Group("/stock-outs")
	stockOutHandler := NewStockOutHandler(deps.ProcessStockOut, deps.StockOutQueries)
	stockOuts.Post("/", RequireRole("admin", "bodeguero"), stockOutHandler.Create)
	stockOuts.Get("/", stockOutHandler.ListByBranch)
	stockOuts.Get("/:reference/movements", stockOutHandler.Movements)
	stockOuts.Get("/:reference/ledger", stockOutHandler.Ledger)
	stockOuts.Get("/:id", stockOutHandler.GetByID)
}

package handler

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/spendwise/spendwise-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, reportLimiter *middleware.RateLimiter, authHandler *AuthHandler, budgetHandler *BudgetHandler, expenseHandler *ExpenseHandler, eventHandler *EventHandler, dashboardHandler *DashboardHandler, calendarHandler *CalendarHandler, exportHandler *ExportHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes (protected)
	auth := api.Group("/auth")
	auth.Use(authMiddleware.Authenticate())
	auth.GET("/me", authHandler.Me)

	// Budget routes (protected)
	budgets := api.Group("/budgets")
	budgets.Use(authMiddleware.Authenticate())
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)
	budgets.GET("/:id/can-delete", budgetHandler.CanDeleteBudget)
	budgets.POST("/:id/icon", budgetHandler.UploadIcon)
	budgets.POST("/:id/expenses", expenseHandler.CreateExpense)
	budgets.GET("/:id/expenses", expenseHandler.GetExpenses)

	// Expense routes (protected)
	expenses := api.Group("/expenses")
	expenses.Use(authMiddleware.Authenticate())
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Event routes (protected)
	events := api.Group("/events")
	events.Use(authMiddleware.Authenticate())
	events.POST("", eventHandler.CreateEvent)
	events.GET("", eventHandler.GetEvents)
	events.DELETE("/:id", eventHandler.DeleteEvent)

	// Dashboard routes (protected)
	dashboard := api.Group("/dashboard")
	dashboard.Use(authMiddleware.Authenticate())
	dashboard.GET("/summary", dashboardHandler.GetSummary)

	// Calendar routes (protected)
	calendarGroup := api.Group("/calendar")
	calendarGroup.Use(authMiddleware.Authenticate())
	calendarGroup.GET("/:year/:month", calendarHandler.GetMonth)

	// Report routes (protected, rate limited per caller)
	reports := api.Group("/reports")
	reports.Use(authMiddleware.Authenticate())
	reports.Use(middleware.RateLimitMiddleware(reportLimiter))
	reports.GET("/expenses", exportHandler.GenerateReport)

	// WebSocket endpoint authenticates via token query parameter
	if wsHandler != nil {
		e.GET("/ws", wsHandler.HandleWS)
	}

	// API documentation
	api.GET("/openapi.json", ServeOpenAPI3Spec)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

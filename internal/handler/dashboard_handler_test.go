package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/spendwise/spendwise-backend/internal/domain"
	"github.com/spendwise/spendwise-backend/internal/service"
	"github.com/spendwise/spendwise-backend/internal/testutil"
)

func newDashboardHandlerForTest() (*DashboardHandler, *testutil.MockBudgetRepository, *testutil.MockExpenseRepository) {
	budgetRepo := testutil.NewMockBudgetRepository()
	expenseRepo := testutil.NewMockExpenseRepository()
	budgetRepo.Expenses = expenseRepo
	budgetService := service.NewBudgetService(budgetRepo, expenseRepo, nil)
	expenseService := service.NewExpenseService(expenseRepo, budgetRepo, nil)
	dashboardService := service.NewDashboardService(budgetService, expenseService)
	return NewDashboardHandler(dashboardService), budgetRepo, expenseRepo
}

func TestGetSummary_Handler_Success(t *testing.T) {
	e := echo.New()
	handler, budgetRepo, expenseRepo := newDashboardHandlerForTest()

	budgetRepo.AddBudget(&domain.Budget{Name: "Food", Amount: 500, CreatedBy: "auth0|test"})
	expenseRepo.AddExpense(&domain.Expense{Name: "Milk", Amount: 40, BudgetID: 1, CreatedBy: "auth0|test", CreatedAt: time.Now(), PaymentMethod: domain.PaymentMethodCash})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response DashboardSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Totals.TotalBudgeted != 500 {
		t.Errorf("Expected total budgeted 500, got %d", response.Totals.TotalBudgeted)
	}
	if response.Totals.TotalSpent != 40 {
		t.Errorf("Expected total spent 40, got %d", response.Totals.TotalSpent)
	}
	if len(response.Latest) != 1 {
		t.Errorf("Expected 1 latest expense, got %d", len(response.Latest))
	}
	if response.Display != nil {
		t.Error("Expected no display block without a currency param")
	}
}

func TestGetSummary_Handler_DisplayCurrency(t *testing.T) {
	e := echo.New()
	handler, budgetRepo, _ := newDashboardHandlerForTest()

	budgetRepo.AddBudget(&domain.Budget{Name: "Food", Amount: 1000, CreatedBy: "auth0|test"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary?currency=USD&locale=en", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response DashboardSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Display == nil {
		t.Fatal("Expected a display block")
	}
	if response.Display.TotalBudgeted != "$1,000" {
		t.Errorf("Expected '$1,000', got %s", response.Display.TotalBudgeted)
	}
}

func TestGetSummary_Handler_InvalidSort(t *testing.T) {
	e := echo.New()
	handler, _, _ := newDashboardHandlerForTest()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary?sort=color", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetSummary_Handler_InvalidCurrency(t *testing.T) {
	e := echo.New()
	handler, _, _ := newDashboardHandlerForTest()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary?currency=XYZ", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetSummary_Handler_Unauthenticated(t *testing.T) {
	e := echo.New()
	handler, _, _ := newDashboardHandlerForTest()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

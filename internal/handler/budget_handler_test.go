package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/spendwise/spendwise-backend/internal/domain"
	"github.com/spendwise/spendwise-backend/internal/service"
	"github.com/spendwise/spendwise-backend/internal/testutil"
)

func newBudgetHandlerForTest() (*BudgetHandler, *testutil.MockBudgetRepository, *testutil.MockExpenseRepository) {
	budgetRepo := testutil.NewMockBudgetRepository()
	expenseRepo := testutil.NewMockExpenseRepository()
	budgetRepo.Expenses = expenseRepo
	budgetService := service.NewBudgetService(budgetRepo, expenseRepo, nil)
	iconService := service.NewIconService(budgetRepo, testutil.NewMockObjectRepository())
	return NewBudgetHandler(budgetService, iconService), budgetRepo, expenseRepo
}

func TestCreateBudget_Handler_Success(t *testing.T) {
	e := echo.New()
	handler, _, _ := newBudgetHandlerForTest()

	body := `{"name":"Groceries","amount":"500","currency":"USD","icon":"cart"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var budget domain.Budget
	if err := json.Unmarshal(rec.Body.Bytes(), &budget); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if budget.Name != "Groceries" {
		t.Errorf("Expected name 'Groceries', got %s", budget.Name)
	}
	if budget.Amount != 500 {
		t.Errorf("Expected amount 500, got %d", budget.Amount)
	}
}

func TestCreateBudget_Handler_InvalidAmount(t *testing.T) {
	e := echo.New()
	handler, _, _ := newBudgetHandlerForTest()

	body := `{"name":"Groceries","amount":"abc"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateBudget_Handler_UnsupportedCurrency(t *testing.T) {
	e := echo.New()
	handler, _, _ := newBudgetHandlerForTest()

	body := `{"name":"Groceries","amount":"500","currency":"XYZ"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetBudgets_Handler(t *testing.T) {
	e := echo.New()
	handler, budgetRepo, expenseRepo := newBudgetHandlerForTest()

	budgetRepo.AddBudget(&domain.Budget{Name: "Food", Amount: 500, CreatedBy: "auth0|test"})
	budgetRepo.AddBudget(&domain.Budget{Name: "Other", Amount: 100, CreatedBy: "auth0|other"})
	expenseRepo.AddExpense(&domain.Expense{Name: "Milk", Amount: 40, BudgetID: 1, CreatedBy: "auth0|test", PaymentMethod: domain.PaymentMethodCash})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.GetBudgets(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var budgets []domain.BudgetWithTotals
	if err := json.Unmarshal(rec.Body.Bytes(), &budgets); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("Expected 1 budget, got %d", len(budgets))
	}
	if budgets[0].TotalSpend != 40 {
		t.Errorf("Expected total spend 40, got %d", budgets[0].TotalSpend)
	}
	if budgets[0].ItemCount != 1 {
		t.Errorf("Expected item count 1, got %d", budgets[0].ItemCount)
	}
}

func TestDeleteBudget_Handler_Conflict(t *testing.T) {
	e := echo.New()
	handler, budgetRepo, expenseRepo := newBudgetHandlerForTest()

	budgetRepo.AddBudget(&domain.Budget{Name: "Food", Amount: 500, CreatedBy: "auth0|test"})
	expenseRepo.AddExpense(&domain.Expense{Name: "Milk", Amount: 40, BudgetID: 1, CreatedBy: "auth0|test", PaymentMethod: domain.PaymentMethodCash})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/budgets/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.DeleteBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

func TestDeleteBudget_Handler_NotFound(t *testing.T) {
	e := echo.New()
	handler, _, _ := newBudgetHandlerForTest()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/budgets/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.DeleteBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestCanDeleteBudget_Handler(t *testing.T) {
	e := echo.New()
	handler, budgetRepo, _ := newBudgetHandlerForTest()

	budgetRepo.AddBudget(&domain.Budget{Name: "Food", Amount: 500, CreatedBy: "auth0|test"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets/1/can-delete", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.CanDeleteBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response CanDeleteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !response.CanDelete {
		t.Error("Expected canDelete true for empty budget")
	}
}

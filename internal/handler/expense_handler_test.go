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

func newExpenseHandlerForTest() (*ExpenseHandler, *testutil.MockBudgetRepository, *testutil.MockExpenseRepository) {
	budgetRepo := testutil.NewMockBudgetRepository()
	expenseRepo := testutil.NewMockExpenseRepository()
	budgetRepo.Expenses = expenseRepo
	expenseService := service.NewExpenseService(expenseRepo, budgetRepo, nil)
	return NewExpenseHandler(expenseService), budgetRepo, expenseRepo
}

func TestCreateExpense_Handler_Success(t *testing.T) {
	e := echo.New()
	handler, budgetRepo, _ := newExpenseHandlerForTest()

	budgetRepo.AddBudget(&domain.Budget{Name: "Food", Amount: 500, CreatedBy: "auth0|test"})

	body := `{"name":"Milk","amount":"40","paymentMethod":"Cash"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets/1/expenses", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var expense domain.Expense
	if err := json.Unmarshal(rec.Body.Bytes(), &expense); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if expense.Amount != 40 {
		t.Errorf("Expected amount 40, got %d", expense.Amount)
	}
	if expense.PaymentMethod != domain.PaymentMethodCash {
		t.Errorf("Expected payment method Cash, got %s", expense.PaymentMethod)
	}
}

func TestCreateExpense_Handler_InvalidPaymentMethod(t *testing.T) {
	e := echo.New()
	handler, budgetRepo, _ := newExpenseHandlerForTest()

	budgetRepo.AddBudget(&domain.Budget{Name: "Food", Amount: 500, CreatedBy: "auth0|test"})

	body := `{"name":"Milk","amount":"40","paymentMethod":"Barter"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets/1/expenses", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateExpense_Handler_BudgetNotFound(t *testing.T) {
	e := echo.New()
	handler, _, _ := newExpenseHandlerForTest()

	body := `{"name":"Milk","amount":"40","paymentMethod":"Cash"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets/99/expenses", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetExpenses_Handler_WithLimit(t *testing.T) {
	e := echo.New()
	handler, budgetRepo, expenseRepo := newExpenseHandlerForTest()

	budgetRepo.AddBudget(&domain.Budget{Name: "Food", Amount: 500, CreatedBy: "auth0|test"})
	for i := 0; i < 5; i++ {
		expenseRepo.AddExpense(&domain.Expense{Name: "Item", Amount: 10, BudgetID: 1, CreatedBy: "auth0|test", PaymentMethod: domain.PaymentMethodCash})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets/1/expenses?limit=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.GetExpenses(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var expenses []domain.Expense
	if err := json.Unmarshal(rec.Body.Bytes(), &expenses); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(expenses) != 2 {
		t.Errorf("Expected 2 expenses, got %d", len(expenses))
	}
}

func TestGetExpenses_Handler_NoLimitReturnsAll(t *testing.T) {
	e := echo.New()
	handler, budgetRepo, expenseRepo := newExpenseHandlerForTest()

	budgetRepo.AddBudget(&domain.Budget{Name: "Food", Amount: 500, CreatedBy: "auth0|test"})
	for i := 0; i < 5; i++ {
		expenseRepo.AddExpense(&domain.Expense{Name: "Item", Amount: 10, BudgetID: 1, CreatedBy: "auth0|test", PaymentMethod: domain.PaymentMethodCash})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets/1/expenses", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.GetExpenses(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var expenses []domain.Expense
	if err := json.Unmarshal(rec.Body.Bytes(), &expenses); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(expenses) != 5 {
		t.Errorf("Expected all 5 expenses without a limit, got %d", len(expenses))
	}
}

func TestDeleteExpense_Handler(t *testing.T) {
	e := echo.New()
	handler, _, expenseRepo := newExpenseHandlerForTest()

	expenseRepo.AddExpense(&domain.Expense{Name: "Milk", Amount: 40, BudgetID: 1, CreatedBy: "auth0|test", PaymentMethod: domain.PaymentMethodCash})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/expenses/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.DeleteExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
}

func TestDeleteExpense_Handler_ForeignOwner(t *testing.T) {
	e := echo.New()
	handler, _, expenseRepo := newExpenseHandlerForTest()

	expenseRepo.AddExpense(&domain.Expense{Name: "Milk", Amount: 40, BudgetID: 1, CreatedBy: "auth0|other", PaymentMethod: domain.PaymentMethodCash})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/expenses/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.DeleteExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

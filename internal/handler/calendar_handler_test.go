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

func newCalendarHandlerForTest() (*CalendarHandler, *testutil.MockEventRepository) {
	eventRepo := testutil.NewMockEventRepository()
	eventService := service.NewEventService(eventRepo, nil)
	return NewCalendarHandler(eventService), eventRepo
}

func TestGetMonth_Handler(t *testing.T) {
	e := echo.New()
	handler, eventRepo := newCalendarHandlerForTest()

	eventRepo.AddEvent(&domain.Event{Name: "Rent due", Type: "bill", Date: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), CreatedBy: "auth0|test"})
	eventRepo.AddEvent(&domain.Event{Name: "Next month", Type: "bill", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), CreatedBy: "auth0|test"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/calendar/2024/2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("year", "month")
	c.SetParamValues("2024", "2")

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.GetMonth(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response CalendarMonthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	// Feb 2024 starts on a Thursday: 4 placeholders plus 29 days
	if len(response.Days) != 33 {
		t.Errorf("Expected 33 grid cells, got %d", len(response.Days))
	}
	for i := 0; i < 4; i++ {
		if response.Days[i] != nil {
			t.Errorf("Expected placeholder at cell %d, got %v", i, *response.Days[i])
		}
	}
	if response.Days[4] == nil || *response.Days[4] != "2024-02-01" {
		t.Error("Expected first day cell to be 2024-02-01")
	}

	// Only this month's events are included
	if len(response.Events) != 1 {
		t.Fatalf("Expected events on 1 day, got %d", len(response.Events))
	}
	if len(response.Events["2024-02-15"]) != 1 {
		t.Error("Expected the rent event on 2024-02-15")
	}

	if response.Prev.Year != 2024 || response.Prev.Month != 1 {
		t.Errorf("Expected prev Jan 2024, got %d-%d", response.Prev.Year, response.Prev.Month)
	}
	if response.Next.Year != 2024 || response.Next.Month != 3 {
		t.Errorf("Expected next Mar 2024, got %d-%d", response.Next.Year, response.Next.Month)
	}
}

func TestGetMonth_Handler_YearWrap(t *testing.T) {
	e := echo.New()
	handler, _ := newCalendarHandlerForTest()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/calendar/2026/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("year", "month")
	c.SetParamValues("2026", "1")

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.GetMonth(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response CalendarMonthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Prev.Year != 2025 || response.Prev.Month != 12 {
		t.Errorf("Expected prev Dec 2025, got %d-%d", response.Prev.Year, response.Prev.Month)
	}
}

func TestGetMonth_Handler_InvalidMonth(t *testing.T) {
	e := echo.New()
	handler, _ := newCalendarHandlerForTest()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/calendar/2024/13", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("year", "month")
	c.SetParamValues("2024", "13")

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.GetMonth(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

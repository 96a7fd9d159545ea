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

func newEventHandlerForTest() (*EventHandler, *testutil.MockEventRepository) {
	eventRepo := testutil.NewMockEventRepository()
	eventService := service.NewEventService(eventRepo, nil)
	return NewEventHandler(eventService), eventRepo
}

func TestCreateEvent_Handler_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newEventHandlerForTest()

	body := `{"name":"Rent due","type":"bill","date":"2026-06-15"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.CreateEvent(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var event domain.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &event); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if event.Name != "Rent due" {
		t.Errorf("Expected name 'Rent due', got %s", event.Name)
	}
	if event.Date.Format("2006-01-02") != "2026-06-15" {
		t.Errorf("Expected date 2026-06-15, got %v", event.Date)
	}
}

func TestCreateEvent_Handler_BadDate(t *testing.T) {
	e := echo.New()
	handler, _ := newEventHandlerForTest()

	body := `{"name":"Rent due","type":"bill","date":"15/06/2026"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.CreateEvent(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateEvent_Handler_MissingType(t *testing.T) {
	e := echo.New()
	handler, _ := newEventHandlerForTest()

	body := `{"name":"Rent due","type":"","date":"2026-06-15"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.CreateEvent(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetEvents_Handler(t *testing.T) {
	e := echo.New()
	handler, eventRepo := newEventHandlerForTest()

	eventRepo.AddEvent(&domain.Event{Name: "Rent due", Type: "bill", CreatedBy: "auth0|test"})
	eventRepo.AddEvent(&domain.Event{Name: "Foreign", Type: "bill", CreatedBy: "auth0|other"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.GetEvents(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var events []domain.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("Expected 1 event, got %d", len(events))
	}
}

func TestDeleteEvent_Handler_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newEventHandlerForTest()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/events/9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")

	setupAuthContext(c, "auth0|test", "test@example.com", "Test User", "")

	if err := handler.DeleteEvent(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/spendwise/spendwise-backend/internal/domain"
	"github.com/spendwise/spendwise-backend/internal/middleware"
	"github.com/spendwise/spendwise-backend/internal/service"
)

// EventHandler handles calendar event HTTP requests
type EventHandler struct {
	eventService *service.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// CreateEventRequest represents the create event request body
type CreateEventRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Date string `json:"date"`
}

// CreateEvent godoc
// @Summary Create a calendar event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEventRequest true "Event creation request"
// @Success 201 {object} domain.Event
// @Failure 400 {object} ProblemDetails
// @Router /events [post]
func (h *EventHandler) CreateEvent(c echo.Context) error {
	owner := middleware.GetOwner(c)
	if owner == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	event, err := h.eventService.CreateEvent(owner, service.CreateEventInput{
		Name: req.Name,
		Type: req.Type,
		Date: date,
	})
	if err != nil {
		return mapEventError(c, err)
	}

	return c.JSON(http.StatusCreated, event)
}

// GetEvents godoc
// @Summary List calendar events
// @Description List the caller's events ordered by date. Events falling on the current day raise reminders on the notification channel.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Event
// @Failure 401 {object} ProblemDetails
// @Router /events [get]
func (h *EventHandler) GetEvents(c echo.Context) error {
	owner := middleware.GetOwner(c)
	if owner == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	events, err := h.eventService.ListEvents(owner)
	if err != nil {
		log.Error().Err(err).Str("owner", owner).Msg("Failed to list events")
		return NewInternalError(c, "Failed to list events")
	}

	return c.JSON(http.StatusOK, events)
}

// DeleteEvent godoc
// @Summary Delete a calendar event
// @Tags events
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	owner := middleware.GetOwner(c)
	if owner == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid event ID", nil)
	}

	if err := h.eventService.DeleteEvent(owner, id); err != nil {
		return mapEventError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// mapEventError maps event domain errors to problem responses
func mapEventError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		return NewNotFoundError(c, "Event not found")
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name exceeds maximum length"},
		})
	case errors.Is(err, domain.ErrTypeRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Type is required"},
		})
	default:
		log.Error().Err(err).Msg("Event operation failed")
		return NewInternalError(c, "Internal server error")
	}
}

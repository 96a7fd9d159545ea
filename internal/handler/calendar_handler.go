package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/spendwise/spendwise-backend/internal/calendar"
	"github.com/spendwise/spendwise-backend/internal/domain"
	"github.com/spendwise/spendwise-backend/internal/middleware"
	"github.com/spendwise/spendwise-backend/internal/service"
)

// CalendarHandler handles calendar view HTTP requests
type CalendarHandler struct {
	eventService *service.EventService
}

// NewCalendarHandler creates a new CalendarHandler
func NewCalendarHandler(eventService *service.EventService) *CalendarHandler {
	return &CalendarHandler{
		eventService: eventService,
	}
}

// MonthRef identifies a month for navigation
type MonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// CalendarMonthResponse is the month grid with the owner's events
type CalendarMonthResponse struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	// Days is the Sunday-first grid. Leading placeholders before the
	// first of the month are null.
	Days   []*string                  `json:"days"`
	Events map[string][]*domain.Event `json:"events"`
	Prev   MonthRef                   `json:"prev"`
	Next   MonthRef                   `json:"next"`
}

// GetMonth godoc
// @Summary Get a calendar month
// @Description The month grid (Sunday-first, with leading null placeholders) plus the caller's events keyed by day
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} CalendarMonthResponse
// @Failure 400 {object} ProblemDetails
// @Router /calendar/{year}/{month} [get]
func (h *CalendarHandler) GetMonth(c echo.Context) error {
	owner := middleware.GetOwner(c)
	if owner == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1970 || year > 9999 {
		return NewValidationError(c, "Invalid year", []ValidationError{
			{Field: "year", Message: "Must be a four digit year"},
		})
	}

	monthNum, err := strconv.Atoi(c.Param("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		return NewValidationError(c, "Invalid month", []ValidationError{
			{Field: "month", Message: "Must be between 1 and 12"},
		})
	}
	month := time.Month(monthNum)

	events, err := h.eventService.ListEvents(owner)
	if err != nil {
		log.Error().Err(err).Str("owner", owner).Msg("Failed to list events for calendar")
		return NewInternalError(c, "Failed to load calendar")
	}

	cells := calendar.MonthDays(year, month)
	days := make([]*string, len(cells))
	for i, cell := range cells {
		if cell == nil {
			continue
		}
		formatted := cell.Format("2006-01-02")
		days[i] = &formatted
	}

	byDay := make(map[string][]*domain.Event)
	for _, e := range events {
		if e.Date.Year() != year || e.Date.Month() != month {
			continue
		}
		key := e.Date.Format("2006-01-02")
		byDay[key] = append(byDay[key], e)
	}

	prevYear, prevMonth := calendar.AddMonths(year, month, -1)
	nextYear, nextMonth := calendar.AddMonths(year, month, 1)

	return c.JSON(http.StatusOK, CalendarMonthResponse{
		Year:   year,
		Month:  monthNum,
		Days:   days,
		Events: byDay,
		Prev:   MonthRef{Year: prevYear, Month: int(prevMonth)},
		Next:   MonthRef{Year: nextYear, Month: int(nextMonth)},
	})
}

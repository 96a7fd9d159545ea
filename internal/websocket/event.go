package websocket

import (
	"encoding/json"
	"time"
)

// Event types pushed over the notification channel
const (
	EventBudgetCreated   = "budget.created"
	EventBudgetDeleted   = "budget.deleted"
	EventExpenseCreated  = "expense.created"
	EventExpenseDeleted  = "expense.deleted"
	EventExpenseHigh     = "expense.high"
	EventCalendarCreated = "event.created"
	EventCalendarDeleted = "event.deleted"
	EventReminder        = "event.reminder"
)

// Event represents a notification message sent over WebSocket
type Event struct {
	Type      string      `json:"type"`
	Entity    string      `json:"entity"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// NewBudgetCreatedEvent creates an event for a new budget
func NewBudgetCreatedEvent(payload interface{}) Event {
	return Event{
		Type:      EventBudgetCreated,
		Entity:    "budget",
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// NewBudgetDeletedEvent creates an event for a deleted budget
func NewBudgetDeletedEvent(budgetID int32) Event {
	return Event{
		Type:      EventBudgetDeleted,
		Entity:    "budget",
		Payload:   map[string]int32{"id": budgetID},
		Timestamp: time.Now().UTC(),
	}
}

// NewExpenseCreatedEvent creates an event for a new expense
func NewExpenseCreatedEvent(payload interface{}) Event {
	return Event{
		Type:      EventExpenseCreated,
		Entity:    "expense",
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// NewExpenseDeletedEvent creates an event for a deleted expense
func NewExpenseDeletedEvent(expenseID int32) Event {
	return Event{
		Type:      EventExpenseDeleted,
		Entity:    "expense",
		Payload:   map[string]int32{"id": expenseID},
		Timestamp: time.Now().UTC(),
	}
}

// NewHighExpenseEvent creates an alert for an expense exceeding the
// high-spend threshold.
func NewHighExpenseEvent(payload interface{}) Event {
	return Event{
		Type:      EventExpenseHigh,
		Entity:    "expense",
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// NewCalendarEventCreatedEvent creates an event for a new calendar entry
func NewCalendarEventCreatedEvent(payload interface{}) Event {
	return Event{
		Type:      EventCalendarCreated,
		Entity:    "event",
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// NewCalendarEventDeletedEvent creates an event for a deleted calendar entry
func NewCalendarEventDeletedEvent(eventID int32) Event {
	return Event{
		Type:      EventCalendarDeleted,
		Entity:    "event",
		Payload:   map[string]int32{"id": eventID},
		Timestamp: time.Now().UTC(),
	}
}

// NewReminderEvent creates a reminder for a calendar entry occurring today
func NewReminderEvent(payload interface{}) Event {
	return Event{
		Type:      EventReminder,
		Entity:    "event",
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventConstructors(t *testing.T) {
	tests := []struct {
		name       string
		event      Event
		wantType   string
		wantEntity string
	}{
		{"budget created", NewBudgetCreatedEvent(nil), "budget.created", "budget"},
		{"budget deleted", NewBudgetDeletedEvent(1), "budget.deleted", "budget"},
		{"expense created", NewExpenseCreatedEvent(nil), "expense.created", "expense"},
		{"expense deleted", NewExpenseDeletedEvent(1), "expense.deleted", "expense"},
		{"high expense", NewHighExpenseEvent(nil), "expense.high", "expense"},
		{"calendar created", NewCalendarEventCreatedEvent(nil), "event.created", "event"},
		{"calendar deleted", NewCalendarEventDeletedEvent(1), "event.deleted", "event"},
		{"reminder", NewReminderEvent(nil), "event.reminder", "event"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.event.Type)
			assert.Equal(t, tt.wantEntity, tt.event.Entity)
			assert.False(t, tt.event.Timestamp.IsZero())
		})
	}
}

func TestEvent_TimestampIsUTC(t *testing.T) {
	before := time.Now().UTC()
	evt := NewExpenseCreatedEvent(map[string]interface{}{"id": 1})
	after := time.Now().UTC()

	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
	assert.Equal(t, time.UTC, evt.Timestamp.Location())
}

func TestEvent_ToJSON(t *testing.T) {
	fixedTime := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	payload := map[string]interface{}{
		"id":     float64(7),
		"name":   "Groceries",
		"amount": float64(120),
	}

	evt := Event{
		Type:      EventExpenseCreated,
		Entity:    "expense",
		Payload:   payload,
		Timestamp: fixedTime,
	}

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, EventExpenseCreated, decoded.Type)
	assert.Equal(t, "expense", decoded.Entity)
	assert.Equal(t, payload, decoded.Payload)
	assert.True(t, fixedTime.Equal(decoded.Timestamp))
}

func TestEvent_DeletedPayloadCarriesID(t *testing.T) {
	evt := NewBudgetDeletedEvent(42)

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded struct {
		Payload struct {
			ID int32 `json:"id"`
		} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, int32(42), decoded.Payload.ID)
}

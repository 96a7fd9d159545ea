package domain

import "time"

// Event is a calendar entry (bill due date, reminder) pinned to a single
// calendar day. Only the date component of Date is meaningful.
type Event struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Date      time.Time `json:"date"`
	CreatedBy string    `json:"createdBy"`
}

type EventRepository interface {
	Create(event *Event) (*Event, error)
	ListByOwner(owner string) ([]*Event, error)
	Delete(owner string, id int32) (*Event, error)
}

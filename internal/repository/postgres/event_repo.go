package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spendwise/spendwise-backend/internal/domain"
)

// EventRepository implements domain.EventRepository using PostgreSQL
type EventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

// Create inserts a new calendar event
func (r *EventRepository) Create(event *domain.Event) (*domain.Event, error) {
	ctx := context.Background()

	var date pgtype.Date
	date.Time = event.Date
	date.Valid = true

	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (name, type, date, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, type, date, created_by`,
		event.Name, event.Type, date, event.CreatedBy,
	)
	return scanEvent(row)
}

// ListByOwner returns all events created by the owner, ordered by date
func (r *EventRepository) ListByOwner(owner string) ([]*domain.Event, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, type, date, created_by
		FROM events
		WHERE created_by = $1
		ORDER BY date, id`,
		owner,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Event
	for rows.Next() {
		var e domain.Event
		var date pgtype.Date
		if err := rows.Scan(&e.ID, &e.Name, &e.Type, &date, &e.CreatedBy); err != nil {
			return nil, err
		}
		e.Date = date.Time
		result = append(result, &e)
	}
	return result, rows.Err()
}

// Delete removes an event and returns the deleted record, or
// domain.ErrEventNotFound when no row matches.
func (r *EventRepository) Delete(owner string, id int32) (*domain.Event, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		DELETE FROM events
		WHERE created_by = $1 AND id = $2
		RETURNING id, name, type, date, created_by`,
		owner, id,
	)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// Helper functions

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	var date pgtype.Date
	if err := row.Scan(&e.ID, &e.Name, &e.Type, &date, &e.CreatedBy); err != nil {
		return nil, err
	}
	e.Date = date.Time
	return &e, nil
}

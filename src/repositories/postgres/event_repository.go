package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubcal/calendar-admin-server/src/models"
	"github.com/clubcal/calendar-admin-server/src/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EventRepository is the pgx implementation of repositories.EventRepository
type EventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository creates a new event repository
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (id, date, created_at, name, editor, detail, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		event.ID, event.Date, event.CreatedAt, event.Name, event.Editor, event.Detail, event.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, eventID uuid.UUID) (*models.Event, error) {
	query := `
		SELECT id, date, created_at, name, editor, detail, category
		FROM events
		WHERE id = $1
	`

	event := &models.Event{}
	err := r.pool.QueryRow(ctx, query, eventID).Scan(
		&event.ID, &event.Date, &event.CreatedAt, &event.Name, &event.Editor, &event.Detail, &event.Category,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) GetByMonth(ctx context.Context, year, month int) ([]models.Event, error) {
	query := `
		SELECT id, date, created_at, name, editor, detail, category
		FROM events
		WHERE EXTRACT(YEAR FROM date) = $1 AND EXTRACT(MONTH FROM date) = $2
		ORDER BY date, created_at
	`

	rows, err := r.pool.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query events by month: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(
			&event.ID, &event.Date, &event.CreatedAt, &event.Name, &event.Editor, &event.Detail, &event.Category,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate event rows: %w", err)
	}
	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET date = $2, name = $3, editor = $4, detail = $5, category = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		event.ID, event.Date, event.Name, event.Editor, event.Detail, event.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, eventID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Ensure EventRepository implements the interface
var _ repositories.EventRepository = (*EventRepository)(nil)

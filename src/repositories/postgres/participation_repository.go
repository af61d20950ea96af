package postgres

import (
	"context"
	"fmt"

	"github.com/clubcal/calendar-admin-server/src/models"
	"github.com/clubcal/calendar-admin-server/src/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ParticipationRepository is the pgx implementation of repositories.ParticipationRepository
type ParticipationRepository struct {
	pool *pgxpool.Pool
}

// NewParticipationRepository creates a new participation repository
func NewParticipationRepository(pool *pgxpool.Pool) *ParticipationRepository {
	return &ParticipationRepository{pool: pool}
}

func (r *ParticipationRepository) Create(ctx context.Context, participation *models.Participation) error {
	query := `
		INSERT INTO participations (id, event_id, participant_name, email, phone_number, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		participation.ID, participation.EventID, participation.ParticipantName,
		participation.Email, participation.PhoneNumber, participation.Comment, participation.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repositories.ErrDuplicate
		}
		return fmt.Errorf("failed to insert participation: %w", err)
	}
	return nil
}

func (r *ParticipationRepository) GetByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Participation, error) {
	query := `
		SELECT id, event_id, participant_name, email, phone_number, comment, created_at
		FROM participations
		WHERE event_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participations: %w", err)
	}
	defer rows.Close()

	participations := []models.Participation{}
	for rows.Next() {
		var p models.Participation
		if err := rows.Scan(
			&p.ID, &p.EventID, &p.ParticipantName, &p.Email, &p.PhoneNumber, &p.Comment, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan participation row: %w", err)
		}
		participations = append(participations, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participation rows: %w", err)
	}
	return participations, nil
}

func (r *ParticipationRepository) Delete(ctx context.Context, participationID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM participations WHERE id = $1`, participationID)
	if err != nil {
		return fmt.Errorf("failed to delete participation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *ParticipationRepository) DeleteByEvent(ctx context.Context, eventID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM participations WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("failed to delete participations for event: %w", err)
	}
	return nil
}

// Ensure ParticipationRepository implements the interface
var _ repositories.ParticipationRepository = (*ParticipationRepository)(nil)

package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCommitmentRepository implements domain.CommitmentRepository
// using PostgreSQL.
type PostgresCommitmentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCommitmentRepository creates a new PostgreSQL commitment repository.
func NewPostgresCommitmentRepository(pool *pgxpool.Pool) *PostgresCommitmentRepository {
	return &PostgresCommitmentRepository{pool: pool}
}

// Save inserts or replaces a commitment.
func (r *PostgresCommitmentRepository) Save(ctx context.Context, c *domain.Commitment) error {
	query := `
		INSERT INTO commitments (id, title, date, start_minutes, end_minutes, fixed, priority, completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			date = EXCLUDED.date,
			start_minutes = EXCLUDED.start_minutes,
			end_minutes = EXCLUDED.end_minutes,
			fixed = EXCLUDED.fixed,
			priority = EXCLUDED.priority,
			completed = EXCLUDED.completed
	`
	_, err := r.pool.Exec(ctx, query,
		c.ID,
		c.Title,
		c.Date,
		minutesOrNil(c.StartTime),
		minutesOrNil(c.EndTime),
		c.Fixed,
		c.Priority,
		c.Completed,
	)
	return err
}

// FindByID retrieves a commitment by its ID.
func (r *PostgresCommitmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Commitment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, date, start_minutes, end_minutes, fixed, priority, completed
		FROM commitments WHERE id = $1
	`, id)

	c, err := scanPostgresCommitment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCommitmentNotFound
	}
	return c, err
}

// FindByDateRange retrieves commitments in the inclusive range in
// deterministic calendar order.
func (r *PostgresCommitmentRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Commitment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, date, start_minutes, end_minutes, fixed, priority, completed
		FROM commitments
		WHERE date >= $1 AND date <= $2
		ORDER BY date, COALESCE(start_minutes, 540), id
	`, domain.Midnight(start), domain.Midnight(end))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	commitments := make([]*domain.Commitment, 0)
	for rows.Next() {
		c, err := scanPostgresCommitment(rows)
		if err != nil {
			return nil, err
		}
		commitments = append(commitments, c)
	}
	return commitments, rows.Err()
}

// Delete removes a commitment.
func (r *PostgresCommitmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM commitments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCommitmentNotFound
	}
	return nil
}

func scanPostgresCommitment(row pgx.Row) (*domain.Commitment, error) {
	var (
		c         domain.Commitment
		startMins *int32
		endMins   *int32
	)
	if err := row.Scan(&c.ID, &c.Title, &c.Date, &startMins, &endMins, &c.Fixed, &c.Priority, &c.Completed); err != nil {
		return nil, err
	}
	if startMins != nil {
		d := time.Duration(*startMins) * time.Minute
		c.StartTime = &d
	}
	if endMins != nil {
		d := time.Duration(*endMins) * time.Minute
		c.EndTime = &d
	}
	if c.Date.IsZero() {
		return nil, fmt.Errorf("invalid commitment date for %s", c.ID)
	}
	return &c, nil
}

func minutesOrNil(d *time.Duration) *int32 {
	if d == nil {
		return nil
	}
	m := int32(d.Minutes())
	return &m
}

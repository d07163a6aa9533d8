package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// SQLiteCommitmentRepository implements domain.CommitmentRepository
// using SQLite.
type SQLiteCommitmentRepository struct {
	db *sql.DB
}

// NewSQLiteCommitmentRepository creates a new SQLite commitment repository.
func NewSQLiteCommitmentRepository(db *sql.DB) *SQLiteCommitmentRepository {
	return &SQLiteCommitmentRepository{db: db}
}

// Save inserts or replaces a commitment.
func (r *SQLiteCommitmentRepository) Save(ctx context.Context, c *domain.Commitment) error {
	query := `
		INSERT INTO commitments (id, title, date, start_minutes, end_minutes, fixed, priority, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			date = excluded.date,
			start_minutes = excluded.start_minutes,
			end_minutes = excluded.end_minutes,
			fixed = excluded.fixed,
			priority = excluded.priority,
			completed = excluded.completed
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID.String(),
		c.Title,
		c.Date.Format(dateLayout),
		minutesOrNull(c.StartTime),
		minutesOrNull(c.EndTime),
		boolToInt(c.Fixed),
		c.Priority,
		boolToInt(c.Completed),
	)
	return err
}

// FindByID retrieves a commitment by its ID.
func (r *SQLiteCommitmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Commitment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, date, start_minutes, end_minutes, fixed, priority, completed
		FROM commitments WHERE id = ?
	`, id.String())

	c, err := scanCommitment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCommitmentNotFound
	}
	return c, err
}

// FindByDateRange retrieves commitments in the inclusive range, ordered
// by date then start time (unset starts sort at the 09:00 default).
func (r *SQLiteCommitmentRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Commitment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, date, start_minutes, end_minutes, fixed, priority, completed
		FROM commitments
		WHERE date >= ? AND date <= ?
		ORDER BY date, COALESCE(start_minutes, 540), id
	`, domain.Midnight(start).Format(dateLayout), domain.Midnight(end).Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	commitments := make([]*domain.Commitment, 0)
	for rows.Next() {
		c, err := scanCommitment(rows)
		if err != nil {
			return nil, err
		}
		commitments = append(commitments, c)
	}
	return commitments, rows.Err()
}

// Delete removes a commitment.
func (r *SQLiteCommitmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM commitments WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCommitmentNotFound
	}
	return nil
}

func scanCommitment(row rowScanner) (*domain.Commitment, error) {
	var (
		idStr     string
		title     string
		dateStr   string
		startMins sql.NullInt64
		endMins   sql.NullInt64
		fixed     int64
		priority  int64
		completed int64
	)
	if err := row.Scan(&idStr, &title, &dateStr, &startMins, &endMins, &fixed, &priority, &completed); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid commitment id: %w", err)
	}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid commitment date: %w", err)
	}

	c := &domain.Commitment{
		ID:        id,
		Title:     title,
		Date:      date,
		Fixed:     fixed != 0,
		Priority:  int(priority),
		Completed: completed != 0,
	}
	if startMins.Valid {
		d := time.Duration(startMins.Int64) * time.Minute
		c.StartTime = &d
	}
	if endMins.Valid {
		d := time.Duration(endMins.Int64) * time.Minute
		c.EndTime = &d
	}
	return c, nil
}

func minutesOrNull(d *time.Duration) sql.NullInt64 {
	if d == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(d.Minutes()), Valid: true}
}

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

// SQLiteTaskRepository implements domain.TaskRepository using SQLite.
type SQLiteTaskRepository struct {
	db *sql.DB
}

// NewSQLiteTaskRepository creates a new SQLite task repository.
func NewSQLiteTaskRepository(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db}
}

// Save inserts or replaces a task.
func (r *SQLiteTaskRepository) Save(ctx context.Context, t *domain.Task) error {
	query := `
		INSERT INTO tasks (id, title, estimated_minutes, priority, deadline, divisible, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			estimated_minutes = excluded.estimated_minutes,
			priority = excluded.priority,
			deadline = excluded.deadline,
			divisible = excluded.divisible
	`

	var deadline sql.NullString
	if t.Deadline != nil {
		deadline = sql.NullString{String: t.Deadline.Format(time.RFC3339), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		t.ID.String(),
		t.Title,
		int64(t.EstimatedTime.Minutes()),
		t.Priority.String(),
		deadline,
		boolToInt(t.Divisible),
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// FindByID retrieves a task by its ID.
func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, estimated_minutes, priority, deadline, divisible, created_at
		FROM tasks WHERE id = ?
	`, id.String())

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	return t, err
}

// FindAll retrieves every task, ordered by created_at then id so that
// planning runs over unchanged data stay deterministic.
func (r *SQLiteTaskRepository) FindAll(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, estimated_minutes, priority, deadline, divisible, created_at
		FROM tasks ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Delete removes a task.
func (r *SQLiteTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		idStr      string
		title      string
		estMinutes int64
		priority   string
		deadline   sql.NullString
		divisible  int64
		createdAt  string
	)
	if err := row.Scan(&idStr, &title, &estMinutes, &priority, &deadline, &divisible, &createdAt); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid task id: %w", err)
	}

	p, err := domain.ParsePriority(priority)
	if err != nil {
		return nil, fmt.Errorf("invalid priority in database: %w", err)
	}

	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at: %w", err)
	}

	t := &domain.Task{
		ID:            id,
		Title:         title,
		EstimatedTime: time.Duration(estMinutes) * time.Minute,
		Priority:      p,
		Divisible:     divisible != 0,
		CreatedAt:     created,
	}

	if deadline.Valid {
		d, err := time.Parse(time.RFC3339, deadline.String)
		if err != nil {
			return nil, fmt.Errorf("invalid deadline format: %w", err)
		}
		t.Deadline = &d
	}

	return t, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

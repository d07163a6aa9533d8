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

const postgresSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	estimated_minutes INTEGER NOT NULL,
	priority TEXT NOT NULL,
	deadline TIMESTAMPTZ,
	divisible BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS commitments (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	date DATE NOT NULL,
	start_minutes INTEGER,
	end_minutes INTEGER,
	fixed BOOLEAN NOT NULL DEFAULT TRUE,
	priority INTEGER NOT NULL DEFAULT 3,
	completed BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_commitments_date ON commitments(date);
`

// OpenPostgres connects a pgx pool and applies the schema.
func OpenPostgres(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply postgres schema: %w", err)
	}
	return pool, nil
}

// PostgresTaskRepository implements domain.TaskRepository using PostgreSQL.
type PostgresTaskRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTaskRepository creates a new PostgreSQL task repository.
func NewPostgresTaskRepository(pool *pgxpool.Pool) *PostgresTaskRepository {
	return &PostgresTaskRepository{pool: pool}
}

// Save inserts or replaces a task.
func (r *PostgresTaskRepository) Save(ctx context.Context, t *domain.Task) error {
	query := `
		INSERT INTO tasks (id, title, estimated_minutes, priority, deadline, divisible, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			estimated_minutes = EXCLUDED.estimated_minutes,
			priority = EXCLUDED.priority,
			deadline = EXCLUDED.deadline,
			divisible = EXCLUDED.divisible
	`
	_, err := r.pool.Exec(ctx, query,
		t.ID,
		t.Title,
		int32(t.EstimatedTime.Minutes()),
		t.Priority.String(),
		t.Deadline,
		t.Divisible,
		t.CreatedAt.UTC(),
	)
	return err
}

// FindByID retrieves a task by its ID.
func (r *PostgresTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, estimated_minutes, priority, deadline, divisible, created_at
		FROM tasks WHERE id = $1
	`, id)

	t, err := scanPostgresTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	return t, err
}

// FindAll retrieves every task in deterministic order.
func (r *PostgresTaskRepository) FindAll(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, estimated_minutes, priority, deadline, divisible, created_at
		FROM tasks ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		t, err := scanPostgresTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Delete removes a task.
func (r *PostgresTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func scanPostgresTask(row pgx.Row) (*domain.Task, error) {
	var (
		t          domain.Task
		estMinutes int32
		priority   string
		deadline   *time.Time
	)
	if err := row.Scan(&t.ID, &t.Title, &estMinutes, &priority, &deadline, &t.Divisible, &t.CreatedAt); err != nil {
		return nil, err
	}

	p, err := domain.ParsePriority(priority)
	if err != nil {
		return nil, fmt.Errorf("invalid priority in database: %w", err)
	}
	t.Priority = p
	t.EstimatedTime = time.Duration(estMinutes) * time.Minute
	t.Deadline = deadline
	return &t, nil
}

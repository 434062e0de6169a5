package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kunal-41/task-manager-fullstack/internal/domain"
	"github.com/Kunal-41/task-manager-fullstack/internal/repository"
)

const createTasksTable = `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id),
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	priority TEXT NOT NULL DEFAULT 'medium',
	completed INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id);
`

const taskColumns = `id, user_id, title, description, priority, completed, created_at, updated_at`

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) repository.TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTasksTable); err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}
	return nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	now := time.Now().UTC()
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO tasks (id, user_id, title, description, priority, completed, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		string(task.Priority),
		task.Completed,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetOwned(ctx context.Context, id, userID string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+taskColumns+`
FROM tasks
WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	return scanTask(row)
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID string, filter repository.TaskFilter) ([]domain.Task, error) {
	query := `
SELECT ` + taskColumns + `
FROM tasks
WHERE user_id = ?`
	args := []any{userID}

	if filter.Completed != nil {
		query += ` AND completed = ?`
		args = append(args, *filter.Completed)
	}
	if filter.Priority != nil {
		query += ` AND priority = ?`
		args = append(args, string(*filter.Priority))
	}

	switch filter.Sort {
	case domain.SortOldest:
		query += ` ORDER BY created_at ASC`
	case domain.SortPriority:
		query += ` ORDER BY CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC, created_at DESC`
	default:
		query += ` ORDER BY created_at DESC`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	return tasks, rows.Err()
}

// PatchOwned applies only the patch's non-nil fields in a single
// statement scoped by id and owner, so the ownership check and the
// mutation cannot be split by a concurrent delete, and untouched columns
// are never overwritten from a stale snapshot.
func (r *TaskRepository) PatchOwned(ctx context.Context, id, userID string, patch repository.TaskPatch) error {
	set := []string{"updated_at=?"}
	args := []any{time.Now().UTC()}

	if patch.Title != nil {
		set = append(set, "title=?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		set = append(set, "description=?")
		args = append(args, *patch.Description)
	}
	if patch.Completed != nil {
		set = append(set, "completed=?")
		args = append(args, *patch.Completed)
	}
	if patch.Priority != nil {
		set = append(set, "priority=?")
		args = append(args, string(*patch.Priority))
	}
	args = append(args, id, userID)

	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id=? AND user_id=?`, strings.Join(set, ", "))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("task update rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("task delete rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanTask(scanner interface {
	Scan(dest ...any) error
}) (*domain.Task, error) {
	var (
		task      domain.Task
		priority  string
		createdAt time.Time
		updatedAt time.Time
	)

	if err := scanner.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&priority,
		&task.Completed,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}

	task.Priority = domain.Priority(priority)
	task.CreatedAt = createdAt.Local()
	task.UpdatedAt = updatedAt.Local()

	return &task, nil
}

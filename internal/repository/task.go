package repository

import (
	"context"

	"github.com/Kunal-41/task-manager-fullstack/internal/domain"
)

// TaskFilter narrows and orders ListByUser results. Nil fields are not
// applied.
type TaskFilter struct {
	Completed *bool
	Priority  *domain.Priority
	Sort      domain.TaskSort
}

// TaskPatch carries the fields of a partial update. Nil fields are left
// untouched by PatchOwned.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *domain.Priority
}

// TaskRepository exposes persistence operations for Task records. Every
// read and mutation is scoped by the owning user id in the query itself;
// PatchOwned and DeleteOwned are single atomic lookup-and-act statements
// and report ErrNotFound when no owned record matched.
type TaskRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, task *domain.Task) error
	GetOwned(ctx context.Context, id, userID string) (*domain.Task, error)
	ListByUser(ctx context.Context, userID string, filter TaskFilter) ([]domain.Task, error)
	PatchOwned(ctx context.Context, id, userID string, patch TaskPatch) error
	DeleteOwned(ctx context.Context, id, userID string) error
}

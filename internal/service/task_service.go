package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/Kunal-41/task-manager-fullstack/internal/domain"
	"github.com/Kunal-41/task-manager-fullstack/internal/repository"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 500
)

// CreateTaskInput carries the user-supplied fields for a new task.
// Description and Priority are optional.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    string
}

// TaskPatch is a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *string
}

// TaskService coordinates task operations on behalf of an authenticated
// user. Every operation is scoped to tasks owned by userID; the scoping
// happens in the repository queries, never by filtering results here.
type TaskService interface {
	Create(ctx context.Context, userID string, in CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, userID string, filter repository.TaskFilter) ([]domain.Task, error)
	Update(ctx context.Context, userID, taskID string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}

type taskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) Create(ctx context.Context, userID string, in CreateTaskInput) (*domain.Task, error) {
	title, err := validateTitle(in.Title)
	if err != nil {
		return nil, err
	}
	description, err := validateDescription(in.Description)
	if err != nil {
		return nil, err
	}

	priority := domain.PriorityMedium
	if in.Priority != "" {
		priority = domain.Priority(in.Priority)
		if !priority.Valid() {
			return nil, invalid("priority", "Priority must be low, medium, or high")
		}
	}

	task := &domain.Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		Priority:    priority,
		Completed:   false,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, userID string, filter repository.TaskFilter) ([]domain.Task, error) {
	// invalid priority filters are dropped rather than rejected
	if filter.Priority != nil && !filter.Priority.Valid() {
		filter.Priority = nil
	}
	return s.tasks.ListByUser(ctx, userID, filter)
}

// Update applies a partial patch to an owned task. Only the patched
// columns are written, in one owner-scoped statement, so concurrent
// patches to different fields never clobber each other and a task
// deleted concurrently (or owned by someone else) surfaces as
// ErrTaskNotFound.
func (s *taskService) Update(ctx context.Context, userID, taskID string, patch TaskPatch) (*domain.Task, error) {
	var repoPatch repository.TaskPatch

	if patch.Title != nil {
		title, err := validateTitle(*patch.Title)
		if err != nil {
			return nil, err
		}
		repoPatch.Title = &title
	}
	if patch.Description != nil {
		description, err := validateDescription(*patch.Description)
		if err != nil {
			return nil, err
		}
		repoPatch.Description = &description
	}
	if patch.Completed != nil {
		repoPatch.Completed = patch.Completed
	}
	if patch.Priority != nil {
		priority := domain.Priority(*patch.Priority)
		if !priority.Valid() {
			return nil, invalid("priority", "Priority must be low, medium, or high")
		}
		repoPatch.Priority = &priority
	}

	if err := s.tasks.PatchOwned(ctx, taskID, userID, repoPatch); err != nil {
		return nil, mapTaskErr(err)
	}

	task, err := s.tasks.GetOwned(ctx, taskID, userID)
	if err != nil {
		return nil, mapTaskErr(err)
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, userID, taskID string) error {
	if err := s.tasks.DeleteOwned(ctx, taskID, userID); err != nil {
		return mapTaskErr(err)
	}
	return nil
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", invalid("title", "Task title is required")
	}
	// characters, not bytes: multibyte titles count by rune
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "", invalid("title", "Task title must be less than 100 characters")
	}
	return title, nil
}

func validateDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "", invalid("description", "Task description must be less than 500 characters")
	}
	return description, nil
}

func mapTaskErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTaskNotFound
	}
	return err
}

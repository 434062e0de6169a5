package domain

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Weight defines the total order over priorities used for sorting:
// high > medium > low.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

type TaskSort string

const (
	SortNewest   TaskSort = "newest"
	SortOldest   TaskSort = "oldest"
	SortPriority TaskSort = "priority"
)

// ParseTaskSort maps a query-string sort value to a TaskSort. Unknown
// values fall back to newest-first.
func ParseTaskSort(s string) TaskSort {
	switch TaskSort(s) {
	case SortOldest:
		return SortOldest
	case SortPriority:
		return SortPriority
	}
	return SortNewest
}

// Task is a to-do item owned by exactly one user. UserID is assigned at
// creation and never changes afterwards.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Priority    Priority
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package domain

import "time"

// User represents a registered account. Email is stored lowercased so
// uniqueness is case-insensitive.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package accounts

import "time"

// User represents a registered account. Email is the unique natural key and
// is never mutated after registration.
type User struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Admin        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package models

import "time"

// User is an account. Rows are never updated or deleted.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

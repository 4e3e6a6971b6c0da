package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a registered account. PasswordHash is
// never serialized; handlers expose only the public projection.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Username     string
	Phone        string
	Age          int
	Gender       string
	Address      string
	CreatedAt    time.Time
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleBusiness = "business"
	RoleKOL      = "kol"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"` // business / kol
	DisplayName  *string   `json:"display_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}

func IsValidRole(r string) bool {
	return r == RoleBusiness || r == RoleKOL
}

package entity

import (
	"strings"
	"time"
)

// Roles conocidos. Role es texto libre; solo RoleAdmin tiene privilegios.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User representa una cuenta. AssignedShopID vacío = sin acceso a ningún local.
type User struct {
	ID             string
	Username       string
	PasswordHash   string // bcrypt hash
	Role           string
	AssignedShopID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsAdmin indica si el rol es administrador.
func (u *User) IsAdmin() bool {
	return strings.EqualFold(u.Role, RoleAdmin)
}

package dto

import "time"

// RegisterRequest entrada para registro: el rol siempre es USER.
type RegisterRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=20"`
	Password       string `json:"password" validate:"required,min=6"`
	AssignedShopID string `json:"assigned_shop_id" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Role           string    `json:"role"`
	AssignedShopID string    `json:"assigned_shop_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

package dto

import "time"

// LoginRequest entrada del login del administrador.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de sesión.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

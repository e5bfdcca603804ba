package api

import (
	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Token  string    `json:"token"`
}

// ResetSessionRequest defines the payload for the session reset endpoint.
// Script selects which deck to study: "hiragana", "katakana" or "all".
type ResetSessionRequest struct {
	Script string `json:"script" validate:"required"`
}

// SetModeRequest defines the payload for the study-mode endpoint.
type SetModeRequest struct {
	Mode string `json:"mode" validate:"required"`
}

// GradeRequest defines the payload for the grade submission endpoint.
// Grade is a pointer so a missing field is distinguishable from grade 0.
type GradeRequest struct {
	Grade *int `json:"grade" validate:"required"`
}

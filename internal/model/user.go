package model

import "time"

// User represents a user in the database.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// SignupRequest represents a user registration request.
// ConfirmPassword is only compared by the client; the server accepts and ignores it.
type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the session token issued on a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// MessageResponse is a plain acknowledgment.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse represents user data safe for API responses (no sensitive fields).
type UserResponse struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

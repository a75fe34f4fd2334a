package models

import "time"

// User represents an account that can log in and publish events.
type User struct {
	ID           string    `json:"id" db:"id" bson:"-"`
	Email        string    `json:"email" db:"email" bson:"email"`
	Name         string    `json:"name" db:"name" bson:"name"`
	PasswordHash string    `json:"-" db:"password_hash" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" bson:"created_at"`
}

// RegisterRequest is the request body for creating an account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255" example:"john@example.com"`
	Name     string `json:"name" binding:"required,max=255" example:"John Doe"`
	Password string `json:"password" binding:"required,min=6,max=72" example:"secret123"`
}

// LoginRequest is the request body for starting a session.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255" example:"john@example.com"`
	Password string `json:"password" binding:"required,max=72" example:"secret123"`
}

// LoginResponse carries the session token handed to the client.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

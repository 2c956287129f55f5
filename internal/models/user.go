package models

import (
	"fmt"
	"math/rand"

	"github.com/golang-jwt/jwt/v4"
)

// User represents an account in the user directory (PostgreSQL)
type User struct {
	ID       string `json:"id" gorm:"primaryKey;size:36"`
	Username string `json:"username" gorm:"uniqueIndex;size:60"`
	Password string `json:"-"` // bcrypt hash, never serialized
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

// UserCompact is the profile snapshot embedded in enriched responses
type UserCompact struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

// ToCompact strips credentials from a user for embedding in responses
func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Username: u.Username, Name: u.Name, Avatar: u.Avatar}
}

// PlaceholderUser stands in for profiles that no longer resolve. Reads
// degrade to it instead of failing.
func PlaceholderUser(id string) UserCompact {
	return UserCompact{ID: id, Name: "Unknown_Unit", Avatar: RandomPicsumURL(50, 50)}
}

// RandomPicsumURL returns a random placeholder image URL
func RandomPicsumURL(width, height int) string {
	return fmt.Sprintf("https://picsum.photos/id/%d/%d/%d", rand.Intn(1000)+1, width, height)
}

// RegisterRequest defines the request body for account registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=30"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
}

// LoginRequest defines the request body for login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile updates
type UpdateProfileRequest struct {
	UserID string `json:"userId" validate:"required"`
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

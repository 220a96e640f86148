package model

import "time"

// User represents a registered account. The password hash is never
// serialized; API responses use UserResponse.
type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:191;not null" json:"username"`
	PasswordHash string    `gorm:"size:191;not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Declared from the owning side so AutoMigrate creates the foreign key
	// without task writes touching the association.
	Tasks []Task `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents an authentication response with a JWT token and user info.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse represents user data safe for API responses (no sensitive fields).
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

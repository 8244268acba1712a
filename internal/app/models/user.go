package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID         int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email      string    `json:"email" db:"email" example:"guardian@example.com"`          // User's email address
	Password   string    `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	FirstName  string    `json:"firstName" db:"first_name" example:"John"`                 // User's first name
	MiddleName *string   `json:"middleName,omitempty" db:"middle_name"`                    // User's middle name (nullable)
	LastName   string    `json:"lastName" db:"last_name" example:"Doe"`                    // User's last name
	RoleID     int       `json:"roleId" db:"role_id" example:"5"`                          // Role rank (1=Principal ... 5=User)
	RoleName   string    `json:"roleName,omitempty"`                                       // Role name, populated by joins
	CreatedAt  time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
}

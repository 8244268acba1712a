package dto

import "time"

// UserResponse represents a directory row joining a user with its role name
type UserResponse struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"fn"`
	MiddleName *string   `json:"mn,omitempty"`
	LastName   string    `json:"sn"`
	Role       string    `json:"role"`
	RoleID     int       `json:"roleId"`
	CreatedAt  time.Time `json:"created"`
}

// EditRoleRequest represents a role change for a target user
type EditRoleRequest struct {
	RoleID int `json:"newRole" binding:"required,min=1,max=5"`
}

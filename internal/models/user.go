package models

// User is a marketplace account as the user collaborator reports it.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Status string `json:"status"`
}

// User status constants, as reported by the user collaborator.
const (
	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
)

// UpdateUserStatusRequest is the admin user-management payload.
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active blocked"`
}

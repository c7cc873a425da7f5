package dto

// CreateUserRequest is the admin payload for creating an account.
// Accounts created this way are pre-verified.
type CreateUserRequest struct {
	Name     string  `json:"name" binding:"required,min=2"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	Role     string  `json:"role" binding:"required,oneof=admin student"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	RoomID   *int64  `json:"roomId"`
}

// UpdateUserRequest is the admin payload for partially updating an account.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin student"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	RoomID   *int64  `json:"roomId"`
}

// UpdateProfileRequest is the self-service payload for a student's own
// profile. Room assignment is never mutable through this endpoint.
type UpdateProfileRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=2"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// ChangePasswordRequest is the self-service payload for changing a password
type ChangePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword" binding:"required"`
	NewPassword        string `json:"newPassword" binding:"required,min=6"`
	ConfirmNewPassword string `json:"confirmNewPassword" binding:"required"`
}

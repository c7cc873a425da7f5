package models

import "time"

// User represents an account in the system, either an admin or a student.
// The password hash and token fields are never serialized.
type User struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"-"`
	Role     RoleType `json:"role"`
	Phone    *string  `json:"phone,omitempty"`
	Address  *string  `json:"address,omitempty"`
	RoomID   *int64   `json:"roomId,omitempty"`

	EmailVerifiedAt *time.Time `json:"emailVerifiedAt,omitempty"`

	VerificationToken       *string    `json:"-"`
	VerificationTokenExpiry *time.Time `json:"-"`
	ResetPasswordToken      *string    `json:"-"`
	ResetPasswordExpiry     *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsEmailVerified reports whether the user has completed email verification
func (u *User) IsEmailVerified() bool {
	return u.EmailVerifiedAt != nil
}

// Summary returns the embedded representation used on related resources
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

package models

// RoleType represents a user role
type RoleType string

const (
	// RoleAdmin is the hostel administrator role
	RoleAdmin RoleType = "admin"
	// RoleStudent is the resident student role
	RoleStudent RoleType = "student"
)

// IsValid reports whether the role is one of the known roles
func (r RoleType) IsValid() bool {
	return r == RoleAdmin || r == RoleStudent
}

// RoomType represents the kind of room
type RoomType string

const (
	// RoomTypeAC is an air-conditioned room
	RoomTypeAC RoomType = "AC"
	// RoomTypeNonAC is a non-air-conditioned room
	RoomTypeNonAC RoomType = "Non-AC"
)

// IsValid reports whether the room type is one of the known types
func (t RoomType) IsValid() bool {
	return t == RoomTypeAC || t == RoomTypeNonAC
}

// LeaveStatus represents the review state of a leave request
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

// IsValid reports whether the status is one of the known states
func (s LeaveStatus) IsValid() bool {
	return s == LeaveStatusPending || s == LeaveStatusApproved || s == LeaveStatusRejected
}

// IsTerminal reports whether the status is a final review state
func (s LeaveStatus) IsTerminal() bool {
	return s == LeaveStatusApproved || s == LeaveStatusRejected
}

// PaymentStatus represents the settlement state of a payment
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// IsValid reports whether the status is one of the known states
func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusPending || s == PaymentStatusPaid || s == PaymentStatusOverdue
}

// UserSummary is the embedded representation of a user on related resources
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

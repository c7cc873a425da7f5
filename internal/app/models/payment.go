package models

import "time"

// Payment represents a hostel fee entry for a student
type Payment struct {
	ID        int64        `json:"id"`
	StudentID int64        `json:"studentId"`
	Student   *UserSummary `json:"student,omitempty"`

	Amount  float64       `json:"amount"`
	Month   string        `json:"month"`
	Year    int           `json:"year"`
	DueDate time.Time     `json:"dueDate"`
	Status  PaymentStatus `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

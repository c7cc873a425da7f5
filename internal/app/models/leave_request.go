package models

import "time"

// LeaveRequest represents a student's request to be away from the hostel.
// Status transitions are pending -> approved or pending -> rejected; both
// outcomes are terminal and reviewed_at is stamped exactly once.
type LeaveRequest struct {
	ID        int64        `json:"id"`
	StudentID int64        `json:"studentId"`
	Student   *UserSummary `json:"student,omitempty"`

	FromDate time.Time   `json:"fromDate"`
	ToDate   time.Time   `json:"toDate"`
	Reason   string      `json:"reason"`
	Status   LeaveStatus `json:"status"`

	SubmittedAt time.Time  `json:"submittedAt"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
}

package dto

// CreateLeaveRequestRequest is the student payload for submitting a leave
// request. The student is always the caller; status always starts pending.
type CreateLeaveRequestRequest struct {
	FromDate string `json:"fromDate" binding:"required"`
	ToDate   string `json:"toDate" binding:"required"`
	Reason   string `json:"reason" binding:"required,min=10"`
}

// UpdateLeaveRequestRequest is the admin payload for reviewing a leave
// request. Approving or rejecting stamps reviewedAt; both are terminal.
type UpdateLeaveRequestRequest struct {
	Status *string `json:"status" binding:"omitempty,oneof=pending approved rejected"`
	Reason *string `json:"reason" binding:"omitempty,min=10"`
}

package dto

// CreatePaymentRequest is the admin payload for recording a fee entry
type CreatePaymentRequest struct {
	StudentID int64   `json:"studentId" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Month     string  `json:"month" binding:"required"`
	Year      int     `json:"year" binding:"required,gt=0"`
	DueDate   string  `json:"dueDate" binding:"required"`
	Status    string  `json:"status" binding:"omitempty,oneof=pending paid overdue"`
}

// UpdatePaymentRequest is the admin payload for updating a fee entry
type UpdatePaymentRequest struct {
	Amount  *float64 `json:"amount" binding:"omitempty,gt=0"`
	Month   *string  `json:"month"`
	Year    *int     `json:"year" binding:"omitempty,gt=0"`
	DueDate *string  `json:"dueDate"`
	Status  *string  `json:"status" binding:"omitempty,oneof=pending paid overdue"`
}

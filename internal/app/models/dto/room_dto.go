package dto

// CreateRoomRequest is the admin payload for creating a room
type CreateRoomRequest struct {
	RoomNumber string `json:"roomNumber" binding:"required"`
	Type       string `json:"type" binding:"required,oneof=AC Non-AC"`
	Capacity   int    `json:"capacity" binding:"required,gt=0"`
}

// UpdateRoomRequest is the admin payload for updating a room.
// RoomNumber is immutable; requests that include it are rejected.
type UpdateRoomRequest struct {
	RoomNumber *string `json:"roomNumber"`
	Type       *string `json:"type" binding:"omitempty,oneof=AC Non-AC"`
	Capacity   *int    `json:"capacity" binding:"omitempty,gt=0"`
}

// AssignOccupantRequest is the admin payload for assigning a student to a room
type AssignOccupantRequest struct {
	StudentID int64 `json:"studentId" binding:"required"`
}

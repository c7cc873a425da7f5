package models

import "time"

// Room represents a hostel room. Occupancy is derived from users.room_id:
// the room row itself never stores who lives in it, so the two sides of the
// relation cannot drift apart.
type Room struct {
	ID         int64    `json:"id"`
	RoomNumber string   `json:"roomNumber"`
	Type       RoomType `json:"type"`
	Capacity   int      `json:"capacity"`

	// Occupants is resolved on read from users with room_id = ID
	Occupants []UserSummary `json:"occupants"`
	// IsAvailable is computed as occupant count < capacity
	IsAvailable bool `json:"isAvailable"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

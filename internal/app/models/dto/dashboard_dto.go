package dto

import "github.com/yigit/hostelms/internal/app/models"

// AdminDashboardResponse aggregates counts and recent activity for admins
type AdminDashboardResponse struct {
	TotalStudents  int64 `json:"totalStudents"`
	TotalRooms     int64 `json:"totalRooms"`
	AvailableRooms int64 `json:"availableRooms"`
	PendingLeaves  int64 `json:"pendingLeaves"`
	PendingDues    int64 `json:"pendingDues"`

	RecentLeaveRequests []models.LeaveRequest `json:"recentLeaveRequests"`
	RecentPayments      []models.Payment      `json:"recentPayments"`
}

// StudentDashboardResponse aggregates a student's own hostel state
type StudentDashboardResponse struct {
	Profile       *models.User          `json:"profile"`
	Room          *models.Room          `json:"room,omitempty"`
	LeaveRequests []models.LeaveRequest `json:"leaveRequests"`
	Payments      []models.Payment      `json:"payments"`
}

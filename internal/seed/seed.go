package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/hostelms/internal/app/models"
	"github.com/yigit/hostelms/internal/app/repositories"
	"github.com/yigit/hostelms/internal/pkg/auth"
	"github.com/yigit/hostelms/internal/pkg/logger"
)

// CreateDefaultData seeds a development dataset: an admin, a few rooms,
// students with assignments, and sample leave requests and payments.
// Runs only against an empty users table.
func CreateDefaultData(ctx context.Context, pool *pgxpool.Pool) error {
	var userCount int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&userCount); err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if userCount > 0 {
		logger.Debug().Msg("Seed skipped, users already present")
		return nil
	}

	userRepo := repositories.NewUserRepository(pool)
	roomRepo := repositories.NewRoomRepository(pool)
	leaveRepo := repositories.NewLeaveRequestRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)

	now := time.Now()

	adminHash, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}
	admin := &models.User{
		Name:            "Hostel Admin",
		Email:           "admin@hostel.local",
		Password:        adminHash,
		Role:            models.RoleAdmin,
		EmailVerifiedAt: &now,
	}
	if _, err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	rooms := []*models.Room{
		{RoomNumber: "101", Type: models.RoomTypeAC, Capacity: 2},
		{RoomNumber: "102", Type: models.RoomTypeAC, Capacity: 3},
		{RoomNumber: "201", Type: models.RoomTypeNonAC, Capacity: 4},
		{RoomNumber: "202", Type: models.RoomTypeNonAC, Capacity: 4},
	}
	for _, room := range rooms {
		if _, err := roomRepo.Create(ctx, room); err != nil {
			return fmt.Errorf("failed to seed room %s: %w", room.RoomNumber, err)
		}
	}

	studentHash, err := auth.HashPassword("student123")
	if err != nil {
		return err
	}
	studentNames := []struct {
		name  string
		email string
	}{
		{"Arjun Mehta", "arjun@hostel.local"},
		{"Priya Sharma", "priya@hostel.local"},
		{"Rahul Verma", "rahul@hostel.local"},
	}
	students := make([]*models.User, 0, len(studentNames))
	for i, s := range studentNames {
		roomID := rooms[i%len(rooms)].ID
		student := &models.User{
			Name:            s.name,
			Email:           s.email,
			Password:        studentHash,
			Role:            models.RoleStudent,
			RoomID:          &roomID,
			EmailVerifiedAt: &now,
		}
		if _, err := userRepo.Create(ctx, student); err != nil {
			return fmt.Errorf("failed to seed student %s: %w", s.email, err)
		}
		students = append(students, student)
	}

	leaves := []*models.LeaveRequest{
		{
			StudentID: students[0].ID,
			FromDate:  now.AddDate(0, 0, 7),
			ToDate:    now.AddDate(0, 0, 10),
			Reason:    "Family function at home town",
			Status:    models.LeaveStatusPending,
		},
		{
			StudentID: students[1].ID,
			FromDate:  now.AddDate(0, 0, -14),
			ToDate:    now.AddDate(0, 0, -10),
			Reason:    "Medical appointment and recovery",
			Status:    models.LeaveStatusApproved,
		},
	}
	for _, leave := range leaves {
		if _, err := leaveRepo.Create(ctx, leave); err != nil {
			return fmt.Errorf("failed to seed leave request: %w", err)
		}
	}
	if leaves[1].Status.IsTerminal() {
		reviewedAt := now.AddDate(0, 0, -15)
		err := leaveRepo.Update(ctx, leaves[1].ID, map[string]interface{}{
			"status":      leaves[1].Status,
			"reviewed_at": reviewedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to mark seeded leave reviewed: %w", err)
		}
	}

	month := now.Month().String()
	for i, student := range students {
		payment := &models.Payment{
			StudentID: student.ID,
			Amount:    4500,
			Month:     month,
			Year:      now.Year(),
			DueDate:   time.Date(now.Year(), now.Month(), 10, 0, 0, 0, 0, time.UTC),
			Status:    models.PaymentStatusPending,
		}
		if i == 0 {
			payment.Status = models.PaymentStatusPaid
		}
		if _, err := paymentRepo.Create(ctx, payment); err != nil {
			return fmt.Errorf("failed to seed payment: %w", err)
		}
	}

	logger.Info().
		Int("rooms", len(rooms)).
		Int("students", len(students)).
		Msg("Seeded default data")
	return nil
}

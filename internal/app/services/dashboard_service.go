package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	appauth "github.com/yigit/hostelms/internal/app/auth"
	"github.com/yigit/hostelms/internal/app/models"
	"github.com/yigit/hostelms/internal/app/models/dto"
	"github.com/yigit/hostelms/internal/pkg/apperrors"
)

const recentActivityLimit = 5

// DashboardService aggregates hostel state for the two dashboard views
type DashboardService interface {
	AdminDashboard(ctx context.Context, actor *appauth.Actor) (*dto.AdminDashboardResponse, error)
	StudentDashboard(ctx context.Context, actor *appauth.Actor) (*dto.StudentDashboardResponse, error)
}

type dashboardService struct {
	users    UserStore
	rooms    RoomStore
	leaves   LeaveStore
	payments PaymentStore
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(users UserStore, rooms RoomStore, leaves LeaveStore, payments PaymentStore) DashboardService {
	return &dashboardService{
		users:    users,
		rooms:    rooms,
		leaves:   leaves,
		payments: payments,
	}
}

// AdminDashboard gathers the admin overview. The reads are independent, so
// they run concurrently.
func (s *dashboardService) AdminDashboard(ctx context.Context, actor *appauth.Actor) (*dto.AdminDashboardResponse, error) {
	if err := appauth.Authorize(actor, appauth.ActionDashboardAdmin, 0); err != nil {
		return nil, err
	}

	var resp dto.AdminDashboardResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.users.CountByRole(gctx, models.RoleStudent)
		resp.TotalStudents = count
		return err
	})
	g.Go(func() error {
		count, err := s.rooms.CountAll(gctx)
		resp.TotalRooms = count
		return err
	})
	g.Go(func() error {
		count, err := s.rooms.CountAvailable(gctx)
		resp.AvailableRooms = count
		return err
	})
	g.Go(func() error {
		count, err := s.leaves.CountByStatus(gctx, models.LeaveStatusPending)
		resp.PendingLeaves = count
		return err
	})
	g.Go(func() error {
		count, err := s.payments.CountByStatus(gctx, models.PaymentStatusPending)
		resp.PendingDues = count
		return err
	})
	g.Go(func() error {
		leaves, err := s.leaves.ListRecent(gctx, recentActivityLimit)
		resp.RecentLeaveRequests = leaves
		return err
	})
	g.Go(func() error {
		payments, err := s.payments.ListRecent(gctx, recentActivityLimit)
		resp.RecentPayments = payments
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &resp, nil
}

// StudentDashboard gathers a student's own room, leave and payment state
func (s *dashboardService) StudentDashboard(ctx context.Context, actor *appauth.Actor) (*dto.StudentDashboardResponse, error) {
	if err := appauth.Authorize(actor, appauth.ActionDashboardStudent, 0); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.StudentDashboardResponse{Profile: user}
	studentID := actor.ID

	g, gctx := errgroup.WithContext(ctx)
	if user.RoomID != nil {
		roomID := *user.RoomID
		g.Go(func() error {
			room, err := s.rooms.GetByID(gctx, roomID)
			if err != nil {
				// A dangling assignment should not break the dashboard
				if errors.Is(err, apperrors.ErrRoomNotFound) {
					return nil
				}
				return err
			}
			resp.Room = room
			return nil
		})
	}
	g.Go(func() error {
		leaves, err := s.leaves.List(gctx, &studentID)
		resp.LeaveRequests = leaves
		return err
	})
	g.Go(func() error {
		payments, err := s.payments.List(gctx, &studentID)
		resp.Payments = payments
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resp, nil
}

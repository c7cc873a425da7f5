package services

import (
	"context"
	"errors"

	appauth "github.com/yigit/hostelms/internal/app/auth"
	"github.com/yigit/hostelms/internal/app/models"
	"github.com/yigit/hostelms/internal/app/models/dto"
	"github.com/yigit/hostelms/internal/pkg/apperrors"
)

// LeaveStore is the leave request persistence surface
type LeaveStore interface {
	Create(ctx context.Context, leave *models.LeaveRequest) (*models.LeaveRequest, error)
	GetByID(ctx context.Context, id int64) (*models.LeaveRequest, error)
	List(ctx context.Context, studentID *int64) ([]models.LeaveRequest, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context, status models.LeaveStatus) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]models.LeaveRequest, error)
}

// LeaveRequestService handles submission and review of leave requests
type LeaveRequestService interface {
	Create(ctx context.Context, actor *appauth.Actor, req dto.CreateLeaveRequestRequest) (*models.LeaveRequest, error)
	List(ctx context.Context, actor *appauth.Actor) ([]models.LeaveRequest, error)
	GetByID(ctx context.Context, actor *appauth.Actor, id int64) (*models.LeaveRequest, error)
	Update(ctx context.Context, actor *appauth.Actor, id int64, req dto.UpdateLeaveRequestRequest) (*models.LeaveRequest, error)
	Delete(ctx context.Context, actor *appauth.Actor, id int64) error
}

type leaveRequestService struct {
	leaves LeaveStore
}

// NewLeaveRequestService creates a new LeaveRequestService
func NewLeaveRequestService(leaves LeaveStore) LeaveRequestService {
	return &leaveRequestService{leaves: leaves}
}

// Create submits a leave request for the calling student. The student id is
// always the caller's and the status always starts pending, regardless of
// what the request body claims.
func (s *leaveRequestService) Create(ctx context.Context, actor *appauth.Actor, req dto.CreateLeaveRequestRequest) (*models.LeaveRequest, error) {
	if err := appauth.Authorize(actor, appauth.ActionLeaveCreate, 0); err != nil {
		return nil, err
	}

	fromDate, err := parseDate("fromDate", req.FromDate)
	if err != nil {
		return nil, err
	}
	toDate, err := parseDate("toDate", req.ToDate)
	if err != nil {
		return nil, err
	}
	if toDate.Before(fromDate) {
		return nil, apperrors.NewFieldError("toDate", "must not be before fromDate")
	}

	leave := &models.LeaveRequest{
		StudentID: actor.ID,
		FromDate:  fromDate,
		ToDate:    toDate,
		Reason:    req.Reason,
		Status:    models.LeaveStatusPending,
	}

	return s.leaves.Create(ctx, leave)
}

// List returns leave requests scoped to the caller's role
func (s *leaveRequestService) List(ctx context.Context, actor *appauth.Actor) ([]models.LeaveRequest, error) {
	scope, err := appauth.ListScope(actor)
	if err != nil {
		return nil, err
	}

	if scope.All {
		return s.leaves.List(ctx, nil)
	}
	return s.leaves.List(ctx, &scope.StudentID)
}

// GetByID retrieves a single leave request. A student asking for a missing
// request and a student asking for somebody else's request get the same
// denial, so ids cannot be probed for existence.
func (s *leaveRequestService) GetByID(ctx context.Context, actor *appauth.Actor, id int64) (*models.LeaveRequest, error) {
	leave, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		return nil, s.maskNotFound(actor, err)
	}

	if err := appauth.Authorize(actor, appauth.ActionLeaveRead, leave.StudentID); err != nil {
		return nil, err
	}

	return leave, nil
}

// Update reviews a leave request. Approval and rejection stamp reviewed_at
// and are terminal; a second review attempt is a conflict.
func (s *leaveRequestService) Update(ctx context.Context, actor *appauth.Actor, id int64, req dto.UpdateLeaveRequestRequest) (*models.LeaveRequest, error) {
	if err := appauth.Authorize(actor, appauth.ActionLeaveReview, 0); err != nil {
		return nil, err
	}

	leave, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Reason != nil {
		fields["reason"] = *req.Reason
	}
	if req.Status != nil {
		newStatus := models.LeaveStatus(*req.Status)
		if newStatus != leave.Status {
			if leave.Status.IsTerminal() {
				return nil, apperrors.ErrLeaveAlreadyReviewed
			}
			fields["status"] = newStatus
			if newStatus.IsTerminal() {
				fields["reviewed_at"] = timeNow()
			}
		}
	}

	if err := s.leaves.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	return s.leaves.GetByID(ctx, id)
}

// Delete removes a leave request, admin or owner only
func (s *leaveRequestService) Delete(ctx context.Context, actor *appauth.Actor, id int64) error {
	leave, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		return s.maskNotFound(actor, err)
	}

	if err := appauth.Authorize(actor, appauth.ActionLeaveDelete, leave.StudentID); err != nil {
		return err
	}

	return s.leaves.Delete(ctx, id)
}

// maskNotFound converts not-found into permission-denied for non-admins
func (s *leaveRequestService) maskNotFound(actor *appauth.Actor, err error) error {
	if actor != nil && actor.Role == models.RoleAdmin {
		return err
	}
	if errors.Is(err, apperrors.ErrLeaveRequestNotFound) {
		return apperrors.ErrPermissionDenied
	}
	return err
}

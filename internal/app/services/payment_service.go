package services

import (
	"context"
	"errors"

	appauth "github.com/yigit/hostelms/internal/app/auth"
	"github.com/yigit/hostelms/internal/app/models"
	"github.com/yigit/hostelms/internal/app/models/dto"
	"github.com/yigit/hostelms/internal/pkg/apperrors"
)

// PaymentStore is the payment persistence surface
type PaymentStore interface {
	Create(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	GetByID(ctx context.Context, id int64) (*models.Payment, error)
	List(ctx context.Context, studentID *int64) ([]models.Payment, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context, status models.PaymentStatus) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]models.Payment, error)
}

// PaymentService handles hostel fee entries
type PaymentService interface {
	Create(ctx context.Context, actor *appauth.Actor, req dto.CreatePaymentRequest) (*models.Payment, error)
	List(ctx context.Context, actor *appauth.Actor) ([]models.Payment, error)
	GetByID(ctx context.Context, actor *appauth.Actor, id int64) (*models.Payment, error)
	Update(ctx context.Context, actor *appauth.Actor, id int64, req dto.UpdatePaymentRequest) (*models.Payment, error)
	Delete(ctx context.Context, actor *appauth.Actor, id int64) error
}

type paymentService struct {
	payments PaymentStore
	students StudentLookup
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(payments PaymentStore, students StudentLookup) PaymentService {
	return &paymentService{payments: payments, students: students}
}

// Create records a fee entry for a student
func (s *paymentService) Create(ctx context.Context, actor *appauth.Actor, req dto.CreatePaymentRequest) (*models.Payment, error) {
	if err := appauth.Authorize(actor, appauth.ActionPaymentCreate, 0); err != nil {
		return nil, err
	}

	student, err := s.students.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if student.Role != models.RoleStudent {
		return nil, apperrors.NewBadRequestError("payments can only be recorded for students")
	}

	dueDate, err := parseDate("dueDate", req.DueDate)
	if err != nil {
		return nil, err
	}

	status := models.PaymentStatusPending
	if req.Status != "" {
		status = models.PaymentStatus(req.Status)
	}

	payment := &models.Payment{
		StudentID: req.StudentID,
		Amount:    req.Amount,
		Month:     req.Month,
		Year:      req.Year,
		DueDate:   dueDate,
		Status:    status,
	}

	return s.payments.Create(ctx, payment)
}

// List returns payments scoped to the caller's role
func (s *paymentService) List(ctx context.Context, actor *appauth.Actor) ([]models.Payment, error) {
	scope, err := appauth.ListScope(actor)
	if err != nil {
		return nil, err
	}

	if scope.All {
		return s.payments.List(ctx, nil)
	}
	return s.payments.List(ctx, &scope.StudentID)
}

// GetByID retrieves a single payment. Missing and foreign payments are
// denied identically to students.
func (s *paymentService) GetByID(ctx context.Context, actor *appauth.Actor, id int64) (*models.Payment, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, s.maskNotFound(actor, err)
	}

	if err := appauth.Authorize(actor, appauth.ActionPaymentRead, payment.StudentID); err != nil {
		return nil, err
	}

	return payment, nil
}

// Update applies a partial update to a fee entry
func (s *paymentService) Update(ctx context.Context, actor *appauth.Actor, id int64, req dto.UpdatePaymentRequest) (*models.Payment, error) {
	if err := appauth.Authorize(actor, appauth.ActionPaymentUpdate, 0); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Amount != nil {
		fields["amount"] = *req.Amount
	}
	if req.Month != nil {
		fields["month"] = *req.Month
	}
	if req.Year != nil {
		fields["year"] = *req.Year
	}
	if req.DueDate != nil {
		dueDate, err := parseDate("dueDate", *req.DueDate)
		if err != nil {
			return nil, err
		}
		fields["due_date"] = dueDate
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	if err := s.payments.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	return s.payments.GetByID(ctx, id)
}

// Delete removes a fee entry
func (s *paymentService) Delete(ctx context.Context, actor *appauth.Actor, id int64) error {
	if err := appauth.Authorize(actor, appauth.ActionPaymentDelete, 0); err != nil {
		return err
	}
	return s.payments.Delete(ctx, id)
}

// maskNotFound converts not-found into permission-denied for non-admins
func (s *paymentService) maskNotFound(actor *appauth.Actor, err error) error {
	if actor != nil && actor.Role == models.RoleAdmin {
		return err
	}
	if errors.Is(err, apperrors.ErrPaymentNotFound) {
		return apperrors.ErrPermissionDenied
	}
	return err
}

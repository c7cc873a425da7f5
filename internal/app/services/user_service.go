package services

import (
	"context"

	appauth "github.com/yigit/hostelms/internal/app/auth"
	"github.com/yigit/hostelms/internal/app/models"
	"github.com/yigit/hostelms/internal/app/models/dto"
	"github.com/yigit/hostelms/internal/pkg/apperrors"
	"github.com/yigit/hostelms/internal/pkg/auth"
	"github.com/yigit/hostelms/internal/pkg/validation"
)

// UserStore is the user persistence surface the user service depends on
type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetAll(ctx context.Context, role *models.RoleType) ([]models.User, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	CountByRole(ctx context.Context, role models.RoleType) (int64, error)
}

// UserService handles admin account management and self-service profiles
type UserService interface {
	Create(ctx context.Context, actor *appauth.Actor, req dto.CreateUserRequest) (*models.User, error)
	GetAll(ctx context.Context, actor *appauth.Actor, role *models.RoleType) ([]models.User, error)
	GetByID(ctx context.Context, actor *appauth.Actor, id int64) (*models.User, error)
	Update(ctx context.Context, actor *appauth.Actor, id int64, req dto.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, actor *appauth.Actor, id int64) error

	GetProfile(ctx context.Context, actor *appauth.Actor) (*models.User, error)
	UpdateProfile(ctx context.Context, actor *appauth.Actor, req dto.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, actor *appauth.Actor, req dto.ChangePasswordRequest) error
}

type userService struct {
	users UserStore
}

// NewUserService creates a new UserService
func NewUserService(users UserStore) UserService {
	return &userService{users: users}
}

// Create adds an account on behalf of an admin. Accounts created this way
// skip email verification.
func (s *userService) Create(ctx context.Context, actor *appauth.Actor, req dto.CreateUserRequest) (*models.User, error) {
	if err := appauth.Authorize(actor, appauth.ActionUserManage, 0); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	user := &models.User{
		Name:            req.Name,
		Email:           validation.NormalizeEmail(req.Email),
		Password:        hash,
		Role:            models.RoleType(req.Role),
		Phone:           req.Phone,
		Address:         req.Address,
		RoomID:          req.RoomID,
		EmailVerifiedAt: &now,
	}

	return s.users.Create(ctx, user)
}

// GetAll lists accounts, optionally filtered by role
func (s *userService) GetAll(ctx context.Context, actor *appauth.Actor, role *models.RoleType) ([]models.User, error) {
	if err := appauth.Authorize(actor, appauth.ActionUserManage, 0); err != nil {
		return nil, err
	}
	return s.users.GetAll(ctx, role)
}

// GetByID retrieves an account
func (s *userService) GetByID(ctx context.Context, actor *appauth.Actor, id int64) (*models.User, error) {
	if err := appauth.Authorize(actor, appauth.ActionUserManage, 0); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

// Update applies a partial update to an account
func (s *userService) Update(ctx context.Context, actor *appauth.Actor, id int64, req dto.UpdateUserRequest) (*models.User, error) {
	if err := appauth.Authorize(actor, appauth.ActionUserManage, 0); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = validation.NormalizeEmail(*req.Email)
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		fields["password"] = hash
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.RoomID != nil {
		fields["room_id"] = *req.RoomID
	}

	if err := s.users.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	return s.users.GetByID(ctx, id)
}

// Delete removes an account. Leave and payment history cascades with it.
func (s *userService) Delete(ctx context.Context, actor *appauth.Actor, id int64) error {
	if err := appauth.Authorize(actor, appauth.ActionUserManage, 0); err != nil {
		return err
	}

	if actor.ID == id {
		return apperrors.NewBadRequestError("you cannot delete your own account")
	}

	return s.users.Delete(ctx, id)
}

// GetProfile retrieves the calling student's own account
func (s *userService) GetProfile(ctx context.Context, actor *appauth.Actor) (*models.User, error) {
	if err := appauth.Authorize(actor, appauth.ActionProfileSelf, actorOwner(actor)); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, actor.ID)
}

// UpdateProfile lets a student change their name, phone and address. Role
// and room assignment are not reachable through this path; admins edit
// accounts through Update instead.
func (s *userService) UpdateProfile(ctx context.Context, actor *appauth.Actor, req dto.UpdateProfileRequest) (*models.User, error) {
	if err := appauth.Authorize(actor, appauth.ActionProfileSelf, actorOwner(actor)); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}

	if err := s.users.Update(ctx, actor.ID, fields); err != nil {
		return nil, err
	}

	return s.users.GetByID(ctx, actor.ID)
}

// ChangePassword verifies the current password and stores the new one
func (s *userService) ChangePassword(ctx context.Context, actor *appauth.Actor, req dto.ChangePasswordRequest) error {
	if err := appauth.Authorize(actor, appauth.ActionProfileSelf, actorOwner(actor)); err != nil {
		return err
	}

	if req.NewPassword != req.ConfirmNewPassword {
		return apperrors.NewFieldError("confirmNewPassword", "passwords do not match")
	}

	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.NewFieldError("currentPassword", "current password is incorrect")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.users.Update(ctx, actor.ID, map[string]interface{}{"password": hash})
}

// actorOwner returns the owner id a self-scoped action is evaluated against
func actorOwner(actor *appauth.Actor) int64 {
	if actor == nil {
		return 0
	}
	return actor.ID
}

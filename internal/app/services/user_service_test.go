package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/yigit/hostelms/internal/app/auth"
	"github.com/yigit/hostelms/internal/app/models"
	"github.com/yigit/hostelms/internal/app/models/dto"
	"github.com/yigit/hostelms/internal/pkg/apperrors"
	"github.com/yigit/hostelms/internal/pkg/auth"
)

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	admin := &appauth.Actor{ID: 1, Role: models.RoleAdmin}

	t.Run("admin-created accounts are pre-verified", func(t *testing.T) {
		pinned := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
		origNow := timeNow
		timeNow = func() time.Time { return pinned }
		defer func() { timeNow = origNow }()

		var created *models.User
		users := &mockUserStore{
			CreateFn: func(_ context.Context, user *models.User) (*models.User, error) {
				created = user
				user.ID = 7
				return user, nil
			},
		}
		svc := NewUserService(users)

		user, err := svc.Create(ctx, admin, dto.CreateUserRequest{
			Name:     "Priya Sharma",
			Email:    "Priya@Hostel.Local",
			Password: "secret1",
			Role:     "student",
		})
		require.NoError(t, err)
		assert.Equal(t, "priya@hostel.local", created.Email)
		require.NotNil(t, created.EmailVerifiedAt)
		assert.Equal(t, pinned, *created.EmailVerifiedAt)
		assert.True(t, user.IsEmailVerified())
		assert.True(t, auth.CheckPassword(created.Password, "secret1"))
	})

	t.Run("student cannot create accounts", func(t *testing.T) {
		svc := NewUserService(&mockUserStore{})
		_, err := svc.Create(ctx, &appauth.Actor{ID: 7, Role: models.RoleStudent}, dto.CreateUserRequest{
			Name: "X Y", Email: "x@hostel.local", Password: "secret1", Role: "student",
		})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("an admin cannot delete their own account", func(t *testing.T) {
		svc := NewUserService(&mockUserStore{})
		err := svc.Delete(ctx, &appauth.Actor{ID: 1, Role: models.RoleAdmin}, 1)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("an admin deletes another account", func(t *testing.T) {
		deleted := false
		users := &mockUserStore{
			DeleteFn: func(_ context.Context, id int64) error {
				assert.Equal(t, int64(7), id)
				deleted = true
				return nil
			},
		}
		svc := NewUserService(users)
		require.NoError(t, svc.Delete(ctx, &appauth.Actor{ID: 1, Role: models.RoleAdmin}, 7))
		assert.True(t, deleted)
	})

	t.Run("students cannot delete accounts", func(t *testing.T) {
		svc := NewUserService(&mockUserStore{})
		err := svc.Delete(ctx, &appauth.Actor{ID: 7, Role: models.RoleStudent}, 8)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	student := &appauth.Actor{ID: 7, Role: models.RoleStudent}

	t.Run("only name, phone and address are touched", func(t *testing.T) {
		var gotID int64
		var gotFields map[string]interface{}
		users := &mockUserStore{
			UpdateFn: func(_ context.Context, id int64, fields map[string]interface{}) error {
				gotID = id
				gotFields = fields
				return nil
			},
			GetByIDFn: func(_ context.Context, id int64) (*models.User, error) {
				return &models.User{ID: id}, nil
			},
		}
		svc := NewUserService(users)

		name := "Priya S"
		phone := "9876543210"
		_, err := svc.UpdateProfile(ctx, student, dto.UpdateProfileRequest{Name: &name, Phone: &phone})
		require.NoError(t, err)
		assert.Equal(t, int64(7), gotID)
		assert.Equal(t, map[string]interface{}{"name": "Priya S", "phone": "9876543210"}, gotFields)
	})

	t.Run("missing actor is unauthenticated", func(t *testing.T) {
		svc := NewUserService(&mockUserStore{})
		_, err := svc.UpdateProfile(ctx, nil, dto.UpdateProfileRequest{})
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})
}

func TestUserService_SelfServiceIsStudentOnly(t *testing.T) {
	ctx := context.Background()
	admin := &appauth.Actor{ID: 1, Role: models.RoleAdmin}
	svc := NewUserService(&mockUserStore{})

	_, err := svc.GetProfile(ctx, admin)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.UpdateProfile(ctx, admin, dto.UpdateProfileRequest{})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = svc.ChangePassword(ctx, admin, dto.ChangePasswordRequest{
		CurrentPassword:    "oldsecret",
		NewPassword:        "newsecret",
		ConfirmNewPassword: "newsecret",
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	student := &appauth.Actor{ID: 7, Role: models.RoleStudent}

	currentHash, err := auth.HashPassword("oldsecret")
	require.NoError(t, err)

	usersWith := func(onUpdate func(fields map[string]interface{})) *mockUserStore {
		return &mockUserStore{
			GetByIDFn: func(_ context.Context, id int64) (*models.User, error) {
				return &models.User{ID: id, Password: currentHash}, nil
			},
			UpdateFn: func(_ context.Context, id int64, fields map[string]interface{}) error {
				if onUpdate != nil {
					onUpdate(fields)
				}
				return nil
			},
		}
	}

	t.Run("stores the new hash when the current password checks out", func(t *testing.T) {
		var newHash string
		svc := NewUserService(usersWith(func(fields map[string]interface{}) {
			newHash = fields["password"].(string)
		}))

		err := svc.ChangePassword(ctx, student, dto.ChangePasswordRequest{
			CurrentPassword:    "oldsecret",
			NewPassword:        "newsecret",
			ConfirmNewPassword: "newsecret",
		})
		require.NoError(t, err)
		assert.True(t, auth.CheckPassword(newHash, "newsecret"))
	})

	t.Run("mismatched confirmation is a field error", func(t *testing.T) {
		svc := NewUserService(&mockUserStore{})
		err := svc.ChangePassword(ctx, student, dto.ChangePasswordRequest{
			CurrentPassword:    "oldsecret",
			NewPassword:        "newsecret",
			ConfirmNewPassword: "different",
		})
		require.Error(t, err)

		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "confirmNewPassword")
	})

	t.Run("wrong current password is a field error", func(t *testing.T) {
		svc := NewUserService(usersWith(nil))
		err := svc.ChangePassword(ctx, student, dto.ChangePasswordRequest{
			CurrentPassword:    "wrong",
			NewPassword:        "newsecret",
			ConfirmNewPassword: "newsecret",
		})
		require.Error(t, err)

		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "currentPassword")
	})
}

func TestUserService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("role filter is passed through", func(t *testing.T) {
		var gotRole *models.RoleType
		users := &mockUserStore{
			GetAllFn: func(_ context.Context, role *models.RoleType) ([]models.User, error) {
				gotRole = role
				return []models.User{}, nil
			},
		}
		svc := NewUserService(users)

		studentRole := models.RoleStudent
		_, err := svc.GetAll(ctx, &appauth.Actor{ID: 1, Role: models.RoleAdmin}, &studentRole)
		require.NoError(t, err)
		require.NotNil(t, gotRole)
		assert.Equal(t, models.RoleStudent, *gotRole)
	})

	t.Run("students cannot list accounts", func(t *testing.T) {
		svc := NewUserService(&mockUserStore{})
		_, err := svc.GetAll(ctx, &appauth.Actor{ID: 7, Role: models.RoleStudent}, nil)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

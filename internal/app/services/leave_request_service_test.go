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
)

func TestLeaveRequestService_Create(t *testing.T) {
	ctx := context.Background()
	student := &appauth.Actor{ID: 7, Role: models.RoleStudent}

	t.Run("student id and status come from the caller, not the payload", func(t *testing.T) {
		var created *models.LeaveRequest
		store := &mockLeaveStore{
			CreateFn: func(_ context.Context, leave *models.LeaveRequest) (*models.LeaveRequest, error) {
				created = leave
				leave.ID = 1
				return leave, nil
			},
		}
		svc := NewLeaveRequestService(store)

		leave, err := svc.Create(ctx, student, dto.CreateLeaveRequestRequest{
			FromDate: "2026-09-10",
			ToDate:   "2026-09-12",
			Reason:   "going home for the festival",
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, int64(7), created.StudentID)
		assert.Equal(t, models.LeaveStatusPending, created.Status)
		assert.Equal(t, int64(1), leave.ID)
	})

	t.Run("admin cannot submit a leave request", func(t *testing.T) {
		svc := NewLeaveRequestService(&mockLeaveStore{})
		admin := &appauth.Actor{ID: 1, Role: models.RoleAdmin}

		_, err := svc.Create(ctx, admin, dto.CreateLeaveRequestRequest{
			FromDate: "2026-09-10",
			ToDate:   "2026-09-12",
			Reason:   "should never get this far",
		})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("unparseable date yields a field error", func(t *testing.T) {
		svc := NewLeaveRequestService(&mockLeaveStore{})

		_, err := svc.Create(ctx, student, dto.CreateLeaveRequestRequest{
			FromDate: "next tuesday",
			ToDate:   "2026-09-12",
			Reason:   "going home for the festival",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "fromDate")
	})

	t.Run("toDate before fromDate is rejected", func(t *testing.T) {
		svc := NewLeaveRequestService(&mockLeaveStore{})

		_, err := svc.Create(ctx, student, dto.CreateLeaveRequestRequest{
			FromDate: "2026-09-12",
			ToDate:   "2026-09-10",
			Reason:   "going home for the festival",
		})
		require.Error(t, err)

		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "toDate")
	})
}

func TestLeaveRequestService_List_Scoping(t *testing.T) {
	ctx := context.Background()

	t.Run("admin sees every request", func(t *testing.T) {
		var gotFilter *int64 = new(int64)
		store := &mockLeaveStore{
			ListFn: func(_ context.Context, studentID *int64) ([]models.LeaveRequest, error) {
				gotFilter = studentID
				return []models.LeaveRequest{}, nil
			},
		}
		svc := NewLeaveRequestService(store)

		_, err := svc.List(ctx, &appauth.Actor{ID: 1, Role: models.RoleAdmin})
		require.NoError(t, err)
		assert.Nil(t, gotFilter)
	})

	t.Run("student list is filtered to their own id", func(t *testing.T) {
		var gotFilter *int64
		store := &mockLeaveStore{
			ListFn: func(_ context.Context, studentID *int64) ([]models.LeaveRequest, error) {
				gotFilter = studentID
				return []models.LeaveRequest{}, nil
			},
		}
		svc := NewLeaveRequestService(store)

		_, err := svc.List(ctx, &appauth.Actor{ID: 7, Role: models.RoleStudent})
		require.NoError(t, err)
		require.NotNil(t, gotFilter)
		assert.Equal(t, int64(7), *gotFilter)
	})

	t.Run("missing actor is unauthenticated", func(t *testing.T) {
		svc := NewLeaveRequestService(&mockLeaveStore{})
		_, err := svc.List(ctx, nil)
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})
}

func TestLeaveRequestService_GetByID(t *testing.T) {
	ctx := context.Background()
	owned := &models.LeaveRequest{ID: 10, StudentID: 7, Status: models.LeaveStatusPending}

	storeWith := func(leave *models.LeaveRequest) *mockLeaveStore {
		return &mockLeaveStore{
			GetByIDFn: func(_ context.Context, id int64) (*models.LeaveRequest, error) {
				if leave != nil && id == leave.ID {
					return leave, nil
				}
				return nil, apperrors.ErrLeaveRequestNotFound
			},
		}
	}

	t.Run("owner reads their own request", func(t *testing.T) {
		svc := NewLeaveRequestService(storeWith(owned))
		leave, err := svc.GetByID(ctx, &appauth.Actor{ID: 7, Role: models.RoleStudent}, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(10), leave.ID)
	})

	t.Run("admin reads any request", func(t *testing.T) {
		svc := NewLeaveRequestService(storeWith(owned))
		_, err := svc.GetByID(ctx, &appauth.Actor{ID: 1, Role: models.RoleAdmin}, 10)
		assert.NoError(t, err)
	})

	t.Run("foreign and missing requests are indistinguishable to a student", func(t *testing.T) {
		svc := NewLeaveRequestService(storeWith(owned))
		other := &appauth.Actor{ID: 8, Role: models.RoleStudent}

		_, errForeign := svc.GetByID(ctx, other, 10)
		_, errMissing := svc.GetByID(ctx, other, 999)

		assert.ErrorIs(t, errForeign, apperrors.ErrPermissionDenied)
		assert.ErrorIs(t, errMissing, apperrors.ErrPermissionDenied)
	})

	t.Run("admin gets not-found for a missing request", func(t *testing.T) {
		svc := NewLeaveRequestService(storeWith(owned))
		_, err := svc.GetByID(ctx, &appauth.Actor{ID: 1, Role: models.RoleAdmin}, 999)
		assert.ErrorIs(t, err, apperrors.ErrLeaveRequestNotFound)
	})
}

func TestLeaveRequestService_Update(t *testing.T) {
	ctx := context.Background()
	admin := &appauth.Actor{ID: 1, Role: models.RoleAdmin}

	t.Run("approving a pending request stamps reviewed_at", func(t *testing.T) {
		pinned := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
		origNow := timeNow
		timeNow = func() time.Time { return pinned }
		defer func() { timeNow = origNow }()

		pending := &models.LeaveRequest{ID: 10, StudentID: 7, Status: models.LeaveStatusPending}
		var gotFields map[string]interface{}
		store := &mockLeaveStore{
			GetByIDFn: func(_ context.Context, id int64) (*models.LeaveRequest, error) {
				return pending, nil
			},
			UpdateFn: func(_ context.Context, id int64, fields map[string]interface{}) error {
				gotFields = fields
				return nil
			},
		}
		svc := NewLeaveRequestService(store)

		status := "approved"
		_, err := svc.Update(ctx, admin, 10, dto.UpdateLeaveRequestRequest{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, models.LeaveStatus("approved"), gotFields["status"])
		assert.Equal(t, pinned, gotFields["reviewed_at"])
	})

	t.Run("reviewing an already reviewed request is a conflict", func(t *testing.T) {
		approved := &models.LeaveRequest{ID: 10, StudentID: 7, Status: models.LeaveStatusApproved}
		store := &mockLeaveStore{
			GetByIDFn: func(_ context.Context, id int64) (*models.LeaveRequest, error) {
				return approved, nil
			},
		}
		svc := NewLeaveRequestService(store)

		status := "rejected"
		_, err := svc.Update(ctx, admin, 10, dto.UpdateLeaveRequestRequest{Status: &status})
		assert.ErrorIs(t, err, apperrors.ErrLeaveAlreadyReviewed)
	})

	t.Run("resubmitting the current status is a no-op, not a conflict", func(t *testing.T) {
		approved := &models.LeaveRequest{ID: 10, StudentID: 7, Status: models.LeaveStatusApproved}
		var gotFields map[string]interface{}
		store := &mockLeaveStore{
			GetByIDFn: func(_ context.Context, id int64) (*models.LeaveRequest, error) {
				return approved, nil
			},
			UpdateFn: func(_ context.Context, id int64, fields map[string]interface{}) error {
				gotFields = fields
				return nil
			},
		}
		svc := NewLeaveRequestService(store)

		status := "approved"
		_, err := svc.Update(ctx, admin, 10, dto.UpdateLeaveRequestRequest{Status: &status})
		require.NoError(t, err)
		assert.Empty(t, gotFields)
	})

	t.Run("students cannot review", func(t *testing.T) {
		svc := NewLeaveRequestService(&mockLeaveStore{})
		status := "approved"
		_, err := svc.Update(ctx, &appauth.Actor{ID: 7, Role: models.RoleStudent}, 10,
			dto.UpdateLeaveRequestRequest{Status: &status})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestLeaveRequestService_Delete(t *testing.T) {
	ctx := context.Background()
	owned := &models.LeaveRequest{ID: 10, StudentID: 7, Status: models.LeaveStatusPending}

	store := func() *mockLeaveStore {
		return &mockLeaveStore{
			GetByIDFn: func(_ context.Context, id int64) (*models.LeaveRequest, error) {
				if id == owned.ID {
					return owned, nil
				}
				return nil, apperrors.ErrLeaveRequestNotFound
			},
			DeleteFn: func(_ context.Context, id int64) error { return nil },
		}
	}

	t.Run("owner deletes their own request", func(t *testing.T) {
		svc := NewLeaveRequestService(store())
		err := svc.Delete(ctx, &appauth.Actor{ID: 7, Role: models.RoleStudent}, 10)
		assert.NoError(t, err)
	})

	t.Run("another student is denied", func(t *testing.T) {
		svc := NewLeaveRequestService(store())
		err := svc.Delete(ctx, &appauth.Actor{ID: 8, Role: models.RoleStudent}, 10)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("admin deletes any request", func(t *testing.T) {
		svc := NewLeaveRequestService(store())
		err := svc.Delete(ctx, &appauth.Actor{ID: 1, Role: models.RoleAdmin}, 10)
		assert.NoError(t, err)
	})
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/yigit/hostelms/internal/app/auth"
	"github.com/yigit/hostelms/internal/app/models"
	"github.com/yigit/hostelms/internal/app/models/dto"
	"github.com/yigit/hostelms/internal/pkg/apperrors"
)

func TestRoomService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("admin creates a room", func(t *testing.T) {
		var created *models.Room
		rooms := &mockRoomStore{
			CreateFn: func(_ context.Context, room *models.Room) (*models.Room, error) {
				created = room
				room.ID = 1
				return room, nil
			},
		}
		svc := NewRoomService(rooms, &mockUserStore{})

		room, err := svc.Create(ctx, &appauth.Actor{ID: 1, Role: models.RoleAdmin}, dto.CreateRoomRequest{
			RoomNumber: "101",
			Type:       "AC",
			Capacity:   2,
		})
		require.NoError(t, err)
		assert.Equal(t, "101", created.RoomNumber)
		assert.Equal(t, models.RoomTypeAC, created.Type)
		assert.Equal(t, int64(1), room.ID)
	})

	t.Run("student cannot create a room", func(t *testing.T) {
		svc := NewRoomService(&mockRoomStore{}, &mockUserStore{})
		_, err := svc.Create(ctx, &appauth.Actor{ID: 7, Role: models.RoleStudent}, dto.CreateRoomRequest{
			RoomNumber: "101", Type: "AC", Capacity: 2,
		})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("duplicate room number surfaces the conflict", func(t *testing.T) {
		rooms := &mockRoomStore{
			CreateFn: func(_ context.Context, room *models.Room) (*models.Room, error) {
				return nil, apperrors.ErrRoomNumberExists
			},
		}
		svc := NewRoomService(rooms, &mockUserStore{})
		_, err := svc.Create(ctx, &appauth.Actor{ID: 1, Role: models.RoleAdmin}, dto.CreateRoomRequest{
			RoomNumber: "101", Type: "AC", Capacity: 2,
		})
		assert.ErrorIs(t, err, apperrors.ErrRoomNumberExists)
	})
}

func TestRoomService_Update(t *testing.T) {
	ctx := context.Background()
	admin := &appauth.Actor{ID: 1, Role: models.RoleAdmin}

	t.Run("room number cannot be changed", func(t *testing.T) {
		svc := NewRoomService(&mockRoomStore{}, &mockUserStore{})
		number := "999"
		_, err := svc.Update(ctx, admin, 1, dto.UpdateRoomRequest{RoomNumber: &number})
		assert.ErrorIs(t, err, apperrors.ErrRoomNumberImmutable)
	})

	t.Run("type and capacity are updatable", func(t *testing.T) {
		var gotFields map[string]interface{}
		rooms := &mockRoomStore{
			UpdateFn: func(_ context.Context, id int64, fields map[string]interface{}) error {
				gotFields = fields
				return nil
			},
			GetByIDFn: func(_ context.Context, id int64) (*models.Room, error) {
				return &models.Room{ID: id, RoomNumber: "101"}, nil
			},
		}
		svc := NewRoomService(rooms, &mockUserStore{})

		roomType := "Non-AC"
		capacity := 4
		_, err := svc.Update(ctx, admin, 1, dto.UpdateRoomRequest{Type: &roomType, Capacity: &capacity})
		require.NoError(t, err)
		assert.Equal(t, "Non-AC", gotFields["type"])
		assert.Equal(t, 4, gotFields["capacity"])
	})

	t.Run("capacity below the occupant count is a conflict", func(t *testing.T) {
		rooms := &mockRoomStore{
			UpdateFn: func(_ context.Context, id int64, fields map[string]interface{}) error {
				assert.Equal(t, 1, fields["capacity"])
				return apperrors.NewConflictError("capacity cannot be reduced below the current occupant count")
			},
		}
		svc := NewRoomService(rooms, &mockUserStore{})

		capacity := 1
		_, err := svc.Update(ctx, admin, 1, dto.UpdateRoomRequest{Capacity: &capacity})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("student cannot update", func(t *testing.T) {
		svc := NewRoomService(&mockRoomStore{}, &mockUserStore{})
		_, err := svc.Update(ctx, &appauth.Actor{ID: 7, Role: models.RoleStudent}, 1, dto.UpdateRoomRequest{})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestRoomService_GetAll_AnyAuthenticatedRole(t *testing.T) {
	ctx := context.Background()
	rooms := &mockRoomStore{
		GetAllFn: func(_ context.Context) ([]models.Room, error) {
			return []models.Room{{ID: 1, RoomNumber: "101"}}, nil
		},
	}
	svc := NewRoomService(rooms, &mockUserStore{})

	for _, role := range []models.RoleType{models.RoleAdmin, models.RoleStudent} {
		list, err := svc.GetAll(ctx, &appauth.Actor{ID: 1, Role: role})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	}

	_, err := svc.GetAll(ctx, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestRoomService_AssignOccupant(t *testing.T) {
	ctx := context.Background()
	admin := &appauth.Actor{ID: 1, Role: models.RoleAdmin}

	studentLookup := func(role models.RoleType) *mockUserStore {
		return &mockUserStore{
			GetByIDFn: func(_ context.Context, id int64) (*models.User, error) {
				return &models.User{ID: id, Role: role}, nil
			},
		}
	}

	t.Run("assigning a student returns the refreshed room", func(t *testing.T) {
		rooms := &mockRoomStore{
			AssignOccupantFn: func(_ context.Context, roomID, studentID int64) error {
				assert.Equal(t, int64(3), roomID)
				assert.Equal(t, int64(7), studentID)
				return nil
			},
			GetByIDFn: func(_ context.Context, id int64) (*models.Room, error) {
				return &models.Room{ID: id, Occupants: []models.UserSummary{{ID: 7}}}, nil
			},
		}
		svc := NewRoomService(rooms, studentLookup(models.RoleStudent))

		room, err := svc.AssignOccupant(ctx, admin, 3, 7)
		require.NoError(t, err)
		require.Len(t, room.Occupants, 1)
		assert.Equal(t, int64(7), room.Occupants[0].ID)
	})

	t.Run("an admin account cannot be placed in a room", func(t *testing.T) {
		svc := NewRoomService(&mockRoomStore{}, studentLookup(models.RoleAdmin))
		_, err := svc.AssignOccupant(ctx, admin, 3, 2)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("a full room rejects the assignment", func(t *testing.T) {
		rooms := &mockRoomStore{
			AssignOccupantFn: func(_ context.Context, roomID, studentID int64) error {
				return apperrors.ErrRoomFull
			},
		}
		svc := NewRoomService(rooms, studentLookup(models.RoleStudent))
		_, err := svc.AssignOccupant(ctx, admin, 3, 7)
		assert.ErrorIs(t, err, apperrors.ErrRoomFull)
	})

	t.Run("unknown student surfaces not-found", func(t *testing.T) {
		users := &mockUserStore{
			GetByIDFn: func(_ context.Context, id int64) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		svc := NewRoomService(&mockRoomStore{}, users)
		_, err := svc.AssignOccupant(ctx, admin, 3, 999)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("student cannot assign", func(t *testing.T) {
		svc := NewRoomService(&mockRoomStore{}, &mockUserStore{})
		_, err := svc.AssignOccupant(ctx, &appauth.Actor{ID: 7, Role: models.RoleStudent}, 3, 7)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestRoomService_RemoveOccupant(t *testing.T) {
	ctx := context.Background()
	admin := &appauth.Actor{ID: 1, Role: models.RoleAdmin}

	t.Run("removing a student not in the room fails", func(t *testing.T) {
		rooms := &mockRoomStore{
			RemoveOccupantFn: func(_ context.Context, roomID, studentID int64) error {
				return apperrors.ErrStudentNotInRoom
			},
		}
		svc := NewRoomService(rooms, &mockUserStore{})
		_, err := svc.RemoveOccupant(ctx, admin, 3, 7)
		assert.ErrorIs(t, err, apperrors.ErrStudentNotInRoom)
	})

	t.Run("successful removal returns the refreshed room", func(t *testing.T) {
		rooms := &mockRoomStore{
			RemoveOccupantFn: func(_ context.Context, roomID, studentID int64) error { return nil },
			GetByIDFn: func(_ context.Context, id int64) (*models.Room, error) {
				return &models.Room{ID: id, Occupants: []models.UserSummary{}}, nil
			},
		}
		svc := NewRoomService(rooms, &mockUserStore{})
		room, err := svc.RemoveOccupant(ctx, admin, 3, 7)
		require.NoError(t, err)
		assert.Empty(t, room.Occupants)
	})
}

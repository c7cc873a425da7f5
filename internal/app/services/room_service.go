package services

import (
	"context"

	appauth "github.com/yigit/hostelms/internal/app/auth"
	"github.com/yigit/hostelms/internal/app/models"
	"github.com/yigit/hostelms/internal/app/models/dto"
	"github.com/yigit/hostelms/internal/pkg/apperrors"
)

// RoomStore is the room persistence surface the room service depends on
type RoomStore interface {
	Create(ctx context.Context, room *models.Room) (*models.Room, error)
	GetByID(ctx context.Context, id int64) (*models.Room, error)
	GetAll(ctx context.Context) ([]models.Room, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	AssignOccupant(ctx context.Context, roomID, studentID int64) error
	RemoveOccupant(ctx context.Context, roomID, studentID int64) error
	CountAll(ctx context.Context) (int64, error)
	CountAvailable(ctx context.Context) (int64, error)
}

// StudentLookup resolves users when a service needs to validate a student id
type StudentLookup interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// RoomService handles room CRUD and occupancy management
type RoomService interface {
	Create(ctx context.Context, actor *appauth.Actor, req dto.CreateRoomRequest) (*models.Room, error)
	GetAll(ctx context.Context, actor *appauth.Actor) ([]models.Room, error)
	GetByID(ctx context.Context, actor *appauth.Actor, id int64) (*models.Room, error)
	Update(ctx context.Context, actor *appauth.Actor, id int64, req dto.UpdateRoomRequest) (*models.Room, error)
	Delete(ctx context.Context, actor *appauth.Actor, id int64) error
	AssignOccupant(ctx context.Context, actor *appauth.Actor, roomID, studentID int64) (*models.Room, error)
	RemoveOccupant(ctx context.Context, actor *appauth.Actor, roomID, studentID int64) (*models.Room, error)
}

type roomService struct {
	rooms    RoomStore
	students StudentLookup
}

// NewRoomService creates a new RoomService
func NewRoomService(rooms RoomStore, students StudentLookup) RoomService {
	return &roomService{rooms: rooms, students: students}
}

// Create adds a room
func (s *roomService) Create(ctx context.Context, actor *appauth.Actor, req dto.CreateRoomRequest) (*models.Room, error) {
	if err := appauth.Authorize(actor, appauth.ActionRoomCreate, 0); err != nil {
		return nil, err
	}

	room := &models.Room{
		RoomNumber: req.RoomNumber,
		Type:       models.RoomType(req.Type),
		Capacity:   req.Capacity,
	}

	return s.rooms.Create(ctx, room)
}

// GetAll lists rooms with occupants resolved
func (s *roomService) GetAll(ctx context.Context, actor *appauth.Actor) ([]models.Room, error) {
	if err := appauth.Authorize(actor, appauth.ActionRoomRead, 0); err != nil {
		return nil, err
	}
	return s.rooms.GetAll(ctx)
}

// GetByID retrieves a room with occupants resolved
func (s *roomService) GetByID(ctx context.Context, actor *appauth.Actor, id int64) (*models.Room, error) {
	if err := appauth.Authorize(actor, appauth.ActionRoomRead, 0); err != nil {
		return nil, err
	}
	return s.rooms.GetByID(ctx, id)
}

// Update applies a partial update. The room number identifies the room for
// its lifetime and is rejected outright if the request carries one.
func (s *roomService) Update(ctx context.Context, actor *appauth.Actor, id int64, req dto.UpdateRoomRequest) (*models.Room, error) {
	if err := appauth.Authorize(actor, appauth.ActionRoomUpdate, 0); err != nil {
		return nil, err
	}

	if req.RoomNumber != nil {
		return nil, apperrors.ErrRoomNumberImmutable
	}

	fields := map[string]interface{}{}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.Capacity != nil {
		fields["capacity"] = *req.Capacity
	}

	if err := s.rooms.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	return s.rooms.GetByID(ctx, id)
}

// Delete removes a room. Occupants keep their accounts; their assignment is
// cleared by the schema.
func (s *roomService) Delete(ctx context.Context, actor *appauth.Actor, id int64) error {
	if err := appauth.Authorize(actor, appauth.ActionRoomDelete, 0); err != nil {
		return err
	}
	return s.rooms.Delete(ctx, id)
}

// AssignOccupant places a student in a room, enforcing capacity
func (s *roomService) AssignOccupant(ctx context.Context, actor *appauth.Actor, roomID, studentID int64) (*models.Room, error) {
	if err := appauth.Authorize(actor, appauth.ActionRoomAssign, 0); err != nil {
		return nil, err
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.Role != models.RoleStudent {
		return nil, apperrors.NewBadRequestError("only students can be assigned to rooms")
	}

	if err := s.rooms.AssignOccupant(ctx, roomID, studentID); err != nil {
		return nil, err
	}

	return s.rooms.GetByID(ctx, roomID)
}

// RemoveOccupant clears a student's assignment to the room
func (s *roomService) RemoveOccupant(ctx context.Context, actor *appauth.Actor, roomID, studentID int64) (*models.Room, error) {
	if err := appauth.Authorize(actor, appauth.ActionRoomAssign, 0); err != nil {
		return nil, err
	}

	if err := s.rooms.RemoveOccupant(ctx, roomID, studentID); err != nil {
		return nil, err
	}

	return s.rooms.GetByID(ctx, roomID)
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/hostelms/internal/app/models"
	"github.com/yigit/hostelms/internal/pkg/apperrors"
	"github.com/yigit/hostelms/internal/pkg/dberrors"
)

// RoomRepository handles database operations for rooms
type RoomRepository struct {
	db   *pgxpool.Pool
	psql squirrel.StatementBuilderType
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{
		db:   db,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new room
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) (*models.Room, error) {
	query, args, err := r.psql.Insert("rooms").
		Columns("room_number", "type", "capacity").
		Values(room.RoomNumber, room.Type, room.Capacity).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert room query: %w", err)
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "rooms_room_number_key") {
			return nil, apperrors.ErrRoomNumberExists
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	room.Occupants = []models.UserSummary{}
	room.IsAvailable = room.Capacity > 0
	return room, nil
}

// GetByID retrieves a room with its occupants resolved
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	query, args, err := r.psql.Select("id", "room_number", "type", "capacity", "created_at", "updated_at").
		From("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select room query: %w", err)
	}

	var room models.Room
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&room.ID, &room.RoomNumber, &room.Type, &room.Capacity,
		&room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room by id: %w", err)
	}

	if err := r.resolveOccupants(ctx, &room); err != nil {
		return nil, err
	}

	return &room, nil
}

// GetAll retrieves all rooms with occupants resolved
func (r *RoomRepository) GetAll(ctx context.Context) ([]models.Room, error) {
	query, args, err := r.psql.Select("id", "room_number", "type", "capacity", "created_at", "updated_at").
		From("rooms").
		OrderBy("room_number").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select rooms query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	rooms := []models.Room{}
	for rows.Next() {
		var room models.Room
		err := rows.Scan(&room.ID, &room.RoomNumber, &room.Type, &room.Capacity,
			&room.CreatedAt, &room.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room row: %w", err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate room rows: %w", err)
	}

	for i := range rooms {
		if err := r.resolveOccupants(ctx, &rooms[i]); err != nil {
			return nil, err
		}
	}

	return rooms, nil
}

// resolveOccupants loads the occupant summaries and computes availability
func (r *RoomRepository) resolveOccupants(ctx context.Context, room *models.Room) error {
	query, args, err := r.psql.Select("id", "name", "email").
		From("users").
		Where(squirrel.Eq{"room_id": room.ID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build select occupants query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query room occupants: %w", err)
	}
	defer rows.Close()

	occupants := []models.UserSummary{}
	for rows.Next() {
		var s models.UserSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Email); err != nil {
			return fmt.Errorf("failed to scan occupant row: %w", err)
		}
		occupants = append(occupants, s)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate occupant rows: %w", err)
	}

	room.Occupants = occupants
	room.IsAvailable = len(occupants) < room.Capacity
	return nil
}

// Update applies a partial column update to a room. room_number is not an
// accepted column here; it is immutable after creation.
func (r *RoomRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	if capacity, ok := fields["capacity"].(int); ok {
		return r.updateWithCapacityCheck(ctx, id, fields, capacity)
	}

	builder := r.psql.Update("rooms").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id})
	for column, value := range fields {
		builder = builder.Set(column, value)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update room query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrRoomNotFound
	}

	return nil
}

// updateWithCapacityCheck applies a room update that changes capacity. The
// room row is locked so that a concurrent assignment cannot slip in between
// the occupant count and the write; a capacity below the current occupant
// count is rejected.
func (r *RoomRepository) updateWithCapacityCheck(ctx context.Context, id int64, fields map[string]interface{}, capacity int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin room update transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var current int
	err = tx.QueryRow(ctx, `SELECT capacity FROM rooms WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrRoomNotFound
		}
		return fmt.Errorf("failed to lock room row: %w", err)
	}

	var occupants int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE room_id = $1`, id).Scan(&occupants)
	if err != nil {
		return fmt.Errorf("failed to count room occupants: %w", err)
	}

	if occupants > capacity {
		return apperrors.NewConflictError("capacity cannot be reduced below the current occupant count")
	}

	builder := r.psql.Update("rooms").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id})
	for column, value := range fields {
		builder = builder.Set(column, value)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update room query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit room update transaction: %w", err)
	}

	return nil
}

// Delete removes a room. Occupant room_id columns are cleared by the
// ON DELETE SET NULL foreign key.
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.psql.Delete("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete room query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrRoomNotFound
	}

	return nil
}

// AssignOccupant assigns a student to a room inside a transaction. The room
// row is locked so that concurrent assignments to the same room serialize;
// the capacity check under that lock makes overfilling impossible.
func (r *RoomRepository) AssignOccupant(ctx context.Context, roomID, studentID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin assignment transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var capacity int
	err = tx.QueryRow(ctx, `SELECT capacity FROM rooms WHERE id = $1 FOR UPDATE`, roomID).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrRoomNotFound
		}
		return fmt.Errorf("failed to lock room row: %w", err)
	}

	var occupants int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE room_id = $1 AND id <> $2`, roomID, studentID).Scan(&occupants)
	if err != nil {
		return fmt.Errorf("failed to count room occupants: %w", err)
	}

	if occupants >= capacity {
		return apperrors.ErrRoomFull
	}

	result, err := tx.Exec(ctx, `UPDATE users SET room_id = $1, updated_at = $2 WHERE id = $3`,
		roomID, time.Now(), studentID)
	if err != nil {
		return fmt.Errorf("failed to assign student to room: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit assignment transaction: %w", err)
	}

	return nil
}

// RemoveOccupant clears a student's room assignment if they are in the room
func (r *RoomRepository) RemoveOccupant(ctx context.Context, roomID, studentID int64) error {
	query, args, err := r.psql.Update("users").
		Set("room_id", nil).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": studentID, "room_id": roomID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove occupant query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to remove student from room: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrStudentNotInRoom
	}

	return nil
}

// CountAll returns the total number of rooms
func (r *RoomRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return count, nil
}

// CountAvailable returns the number of rooms with free capacity
func (r *RoomRepository) CountAvailable(ctx context.Context) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM rooms r
		WHERE r.capacity > (SELECT COUNT(*) FROM users u WHERE u.room_id = r.id)
	`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count available rooms: %w", err)
	}
	return count, nil
}

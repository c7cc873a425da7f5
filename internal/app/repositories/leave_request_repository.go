package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/hostelms/internal/app/models"
	"github.com/yigit/hostelms/internal/pkg/apperrors"
)

// leaveColumns selects leave request rows joined with the student summary
var leaveColumns = []string{
	"l.id", "l.student_id", "l.from_date", "l.to_date", "l.reason",
	"l.status", "l.submitted_at", "l.reviewed_at",
	"u.id", "u.name", "u.email",
}

// LeaveRequestRepository handles database operations for leave requests
type LeaveRequestRepository struct {
	db   *pgxpool.Pool
	psql squirrel.StatementBuilderType
}

// NewLeaveRequestRepository creates a new LeaveRequestRepository
func NewLeaveRequestRepository(db *pgxpool.Pool) *LeaveRequestRepository {
	return &LeaveRequestRepository{
		db:   db,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanLeaveRequest(row pgx.Row) (*models.LeaveRequest, error) {
	var l models.LeaveRequest
	var student models.UserSummary
	err := row.Scan(
		&l.ID, &l.StudentID, &l.FromDate, &l.ToDate, &l.Reason,
		&l.Status, &l.SubmittedAt, &l.ReviewedAt,
		&student.ID, &student.Name, &student.Email,
	)
	if err != nil {
		return nil, err
	}
	l.Student = &student
	return &l, nil
}

// Create inserts a new leave request
func (r *LeaveRequestRepository) Create(ctx context.Context, leave *models.LeaveRequest) (*models.LeaveRequest, error) {
	query, args, err := r.psql.Insert("leave_requests").
		Columns("student_id", "from_date", "to_date", "reason", "status").
		Values(leave.StudentID, leave.FromDate, leave.ToDate, leave.Reason, leave.Status).
		Suffix("RETURNING id, submitted_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert leave request query: %w", err)
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&leave.ID, &leave.SubmittedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave, nil
}

// GetByID retrieves a leave request with the student summary resolved
func (r *LeaveRequestRepository) GetByID(ctx context.Context, id int64) (*models.LeaveRequest, error) {
	query, args, err := r.psql.Select(leaveColumns...).
		From("leave_requests l").
		Join("users u ON u.id = l.student_id").
		Where(squirrel.Eq{"l.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select leave request query: %w", err)
	}

	leave, err := scanLeaveRequest(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLeaveRequestNotFound
		}
		return nil, fmt.Errorf("failed to get leave request by id: %w", err)
	}

	return leave, nil
}

// List retrieves leave requests, optionally filtered to one student
func (r *LeaveRequestRepository) List(ctx context.Context, studentID *int64) ([]models.LeaveRequest, error) {
	builder := r.psql.Select(leaveColumns...).
		From("leave_requests l").
		Join("users u ON u.id = l.student_id").
		OrderBy("l.submitted_at DESC")
	if studentID != nil {
		builder = builder.Where(squirrel.Eq{"l.student_id": *studentID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select leave requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	leaves := []models.LeaveRequest{}
	for rows.Next() {
		leave, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request row: %w", err)
		}
		leaves = append(leaves, *leave)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave request rows: %w", err)
	}

	return leaves, nil
}

// Update applies a partial column update to a leave request
func (r *LeaveRequestRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	builder := r.psql.Update("leave_requests").
		Where(squirrel.Eq{"id": id})
	for column, value := range fields {
		builder = builder.Set(column, value)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update leave request query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrLeaveRequestNotFound
	}

	return nil
}

// Delete removes a leave request
func (r *LeaveRequestRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.psql.Delete("leave_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete leave request query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrLeaveRequestNotFound
	}

	return nil
}

// CountByStatus returns the number of leave requests in a given state
func (r *LeaveRequestRepository) CountByStatus(ctx context.Context, status models.LeaveStatus) (int64, error) {
	query, args, err := r.psql.Select("COUNT(*)").
		From("leave_requests").
		Where(squirrel.Eq{"status": status}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count leave requests query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	return count, nil
}

// ListRecent retrieves the most recently submitted leave requests
func (r *LeaveRequestRepository) ListRecent(ctx context.Context, limit int) ([]models.LeaveRequest, error) {
	query, args, err := r.psql.Select(leaveColumns...).
		From("leave_requests l").
		Join("users u ON u.id = l.student_id").
		OrderBy("l.submitted_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build recent leave requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent leave requests: %w", err)
	}
	defer rows.Close()

	leaves := []models.LeaveRequest{}
	for rows.Next() {
		leave, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request row: %w", err)
		}
		leaves = append(leaves, *leave)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave request rows: %w", err)
	}

	return leaves, nil
}

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
)

// paymentColumns selects payment rows joined with the student summary
var paymentColumns = []string{
	"p.id", "p.student_id", "p.amount", "p.month", "p.year",
	"p.due_date", "p.status", "p.created_at", "p.updated_at",
	"u.id", "u.name", "u.email",
}

// PaymentRepository handles database operations for payments
type PaymentRepository struct {
	db   *pgxpool.Pool
	psql squirrel.StatementBuilderType
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{
		db:   db,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	var student models.UserSummary
	err := row.Scan(
		&p.ID, &p.StudentID, &p.Amount, &p.Month, &p.Year,
		&p.DueDate, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		&student.ID, &student.Name, &student.Email,
	)
	if err != nil {
		return nil, err
	}
	p.Student = &student
	return &p, nil
}

// Create inserts a new payment
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	query, args, err := r.psql.Insert("payments").
		Columns("student_id", "amount", "month", "year", "due_date", "status").
		Values(payment.StudentID, payment.Amount, payment.Month, payment.Year,
			payment.DueDate, payment.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert payment query: %w", err)
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	return payment, nil
}

// GetByID retrieves a payment with the student summary resolved
func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*models.Payment, error) {
	query, args, err := r.psql.Select(paymentColumns...).
		From("payments p").
		Join("users u ON u.id = p.student_id").
		Where(squirrel.Eq{"p.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select payment query: %w", err)
	}

	payment, err := scanPayment(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment by id: %w", err)
	}

	return payment, nil
}

// List retrieves payments, optionally filtered to one student
func (r *PaymentRepository) List(ctx context.Context, studentID *int64) ([]models.Payment, error) {
	builder := r.psql.Select(paymentColumns...).
		From("payments p").
		Join("users u ON u.id = p.student_id").
		OrderBy("p.due_date DESC")
	if studentID != nil {
		builder = builder.Where(squirrel.Eq{"p.student_id": *studentID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select payments query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, *payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment rows: %w", err)
	}

	return payments, nil
}

// Update applies a partial column update to a payment
func (r *PaymentRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	builder := r.psql.Update("payments").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id})
	for column, value := range fields {
		builder = builder.Set(column, value)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update payment query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrPaymentNotFound
	}

	return nil
}

// Delete removes a payment
func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.psql.Delete("payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete payment query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrPaymentNotFound
	}

	return nil
}

// CountByStatus returns the number of payments in a given state
func (r *PaymentRepository) CountByStatus(ctx context.Context, status models.PaymentStatus) (int64, error) {
	query, args, err := r.psql.Select("COUNT(*)").
		From("payments").
		Where(squirrel.Eq{"status": status}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count payments query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}

	return count, nil
}

// ListRecent retrieves the most recently created payments
func (r *PaymentRepository) ListRecent(ctx context.Context, limit int) ([]models.Payment, error) {
	query, args, err := r.psql.Select(paymentColumns...).
		From("payments p").
		Join("users u ON u.id = p.student_id").
		OrderBy("p.created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build recent payments query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, *payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment rows: %w", err)
	}

	return payments, nil
}

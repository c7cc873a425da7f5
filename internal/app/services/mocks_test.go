package services

import (
	"context"
	"time"

	"github.com/yigit/hostelms/internal/app/models"
)

// Hand-written mocks with injectable behavior per method. Tests set only
// the functions they expect to be called; anything else panics loudly.

type mockUserStore struct {
	CreateFn      func(ctx context.Context, user *models.User) (*models.User, error)
	GetByIDFn     func(ctx context.Context, id int64) (*models.User, error)
	GetAllFn      func(ctx context.Context, role *models.RoleType) ([]models.User, error)
	UpdateFn      func(ctx context.Context, id int64, fields map[string]interface{}) error
	DeleteFn      func(ctx context.Context, id int64) error
	CountByRoleFn func(ctx context.Context, role models.RoleType) (int64, error)
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	return m.CreateFn(ctx, user)
}
func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockUserStore) GetAll(ctx context.Context, role *models.RoleType) ([]models.User, error) {
	return m.GetAllFn(ctx, role)
}
func (m *mockUserStore) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	return m.UpdateFn(ctx, id, fields)
}
func (m *mockUserStore) Delete(ctx context.Context, id int64) error {
	return m.DeleteFn(ctx, id)
}
func (m *mockUserStore) CountByRole(ctx context.Context, role models.RoleType) (int64, error) {
	return m.CountByRoleFn(ctx, role)
}

type mockRoomStore struct {
	CreateFn         func(ctx context.Context, room *models.Room) (*models.Room, error)
	GetByIDFn        func(ctx context.Context, id int64) (*models.Room, error)
	GetAllFn         func(ctx context.Context) ([]models.Room, error)
	UpdateFn         func(ctx context.Context, id int64, fields map[string]interface{}) error
	DeleteFn         func(ctx context.Context, id int64) error
	AssignOccupantFn func(ctx context.Context, roomID, studentID int64) error
	RemoveOccupantFn func(ctx context.Context, roomID, studentID int64) error
	CountAllFn       func(ctx context.Context) (int64, error)
	CountAvailableFn func(ctx context.Context) (int64, error)
}

func (m *mockRoomStore) Create(ctx context.Context, room *models.Room) (*models.Room, error) {
	return m.CreateFn(ctx, room)
}
func (m *mockRoomStore) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockRoomStore) GetAll(ctx context.Context) ([]models.Room, error) {
	return m.GetAllFn(ctx)
}
func (m *mockRoomStore) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	return m.UpdateFn(ctx, id, fields)
}
func (m *mockRoomStore) Delete(ctx context.Context, id int64) error {
	return m.DeleteFn(ctx, id)
}
func (m *mockRoomStore) AssignOccupant(ctx context.Context, roomID, studentID int64) error {
	return m.AssignOccupantFn(ctx, roomID, studentID)
}
func (m *mockRoomStore) RemoveOccupant(ctx context.Context, roomID, studentID int64) error {
	return m.RemoveOccupantFn(ctx, roomID, studentID)
}
func (m *mockRoomStore) CountAll(ctx context.Context) (int64, error) {
	return m.CountAllFn(ctx)
}
func (m *mockRoomStore) CountAvailable(ctx context.Context) (int64, error) {
	return m.CountAvailableFn(ctx)
}

type mockLeaveStore struct {
	CreateFn        func(ctx context.Context, leave *models.LeaveRequest) (*models.LeaveRequest, error)
	GetByIDFn       func(ctx context.Context, id int64) (*models.LeaveRequest, error)
	ListFn          func(ctx context.Context, studentID *int64) ([]models.LeaveRequest, error)
	UpdateFn        func(ctx context.Context, id int64, fields map[string]interface{}) error
	DeleteFn        func(ctx context.Context, id int64) error
	CountByStatusFn func(ctx context.Context, status models.LeaveStatus) (int64, error)
	ListRecentFn    func(ctx context.Context, limit int) ([]models.LeaveRequest, error)
}

func (m *mockLeaveStore) Create(ctx context.Context, leave *models.LeaveRequest) (*models.LeaveRequest, error) {
	return m.CreateFn(ctx, leave)
}
func (m *mockLeaveStore) GetByID(ctx context.Context, id int64) (*models.LeaveRequest, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockLeaveStore) List(ctx context.Context, studentID *int64) ([]models.LeaveRequest, error) {
	return m.ListFn(ctx, studentID)
}
func (m *mockLeaveStore) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	return m.UpdateFn(ctx, id, fields)
}
func (m *mockLeaveStore) Delete(ctx context.Context, id int64) error {
	return m.DeleteFn(ctx, id)
}
func (m *mockLeaveStore) CountByStatus(ctx context.Context, status models.LeaveStatus) (int64, error) {
	return m.CountByStatusFn(ctx, status)
}
func (m *mockLeaveStore) ListRecent(ctx context.Context, limit int) ([]models.LeaveRequest, error) {
	return m.ListRecentFn(ctx, limit)
}

type mockPaymentStore struct {
	CreateFn        func(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	GetByIDFn       func(ctx context.Context, id int64) (*models.Payment, error)
	ListFn          func(ctx context.Context, studentID *int64) ([]models.Payment, error)
	UpdateFn        func(ctx context.Context, id int64, fields map[string]interface{}) error
	DeleteFn        func(ctx context.Context, id int64) error
	CountByStatusFn func(ctx context.Context, status models.PaymentStatus) (int64, error)
	ListRecentFn    func(ctx context.Context, limit int) ([]models.Payment, error)
}

func (m *mockPaymentStore) Create(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	return m.CreateFn(ctx, payment)
}
func (m *mockPaymentStore) GetByID(ctx context.Context, id int64) (*models.Payment, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockPaymentStore) List(ctx context.Context, studentID *int64) ([]models.Payment, error) {
	return m.ListFn(ctx, studentID)
}
func (m *mockPaymentStore) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	return m.UpdateFn(ctx, id, fields)
}
func (m *mockPaymentStore) Delete(ctx context.Context, id int64) error {
	return m.DeleteFn(ctx, id)
}
func (m *mockPaymentStore) CountByStatus(ctx context.Context, status models.PaymentStatus) (int64, error) {
	return m.CountByStatusFn(ctx, status)
}
func (m *mockPaymentStore) ListRecent(ctx context.Context, limit int) ([]models.Payment, error) {
	return m.ListRecentFn(ctx, limit)
}

type mockAuthUserStore struct {
	CreateFn                           func(ctx context.Context, user *models.User) (*models.User, error)
	GetByIDFn                          func(ctx context.Context, id int64) (*models.User, error)
	GetByEmailFn                       func(ctx context.Context, email string) (*models.User, error)
	GetByVerificationTokenFn           func(ctx context.Context, token string) (*models.User, error)
	MarkEmailVerifiedFn                func(ctx context.Context, id int64) error
	SetResetPasswordTokenFn            func(ctx context.Context, id int64, token string, expiry time.Time) error
	GetByResetPasswordTokenFn          func(ctx context.Context, token string) (*models.User, error)
	UpdatePasswordAndClearResetTokenFn func(ctx context.Context, id int64, passwordHash string) error
}

func (m *mockAuthUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	return m.CreateFn(ctx, user)
}
func (m *mockAuthUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockAuthUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetByEmailFn(ctx, email)
}
func (m *mockAuthUserStore) GetByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	return m.GetByVerificationTokenFn(ctx, token)
}
func (m *mockAuthUserStore) MarkEmailVerified(ctx context.Context, id int64) error {
	return m.MarkEmailVerifiedFn(ctx, id)
}
func (m *mockAuthUserStore) SetResetPasswordToken(ctx context.Context, id int64, token string, expiry time.Time) error {
	return m.SetResetPasswordTokenFn(ctx, id, token, expiry)
}
func (m *mockAuthUserStore) GetByResetPasswordToken(ctx context.Context, token string) (*models.User, error) {
	return m.GetByResetPasswordTokenFn(ctx, token)
}
func (m *mockAuthUserStore) UpdatePasswordAndClearResetToken(ctx context.Context, id int64, passwordHash string) error {
	return m.UpdatePasswordAndClearResetTokenFn(ctx, id, passwordHash)
}

type mockRefreshTokenStore struct {
	CreateRefreshTokenFn func(ctx context.Context, userID int64, token string, expiryDate time.Time) error
	GetRefreshTokenFn    func(ctx context.Context, token string) (int64, time.Time, error)
	DeleteRefreshTokenFn func(ctx context.Context, token string) error
	DeleteTokensByUserFn func(ctx context.Context, userID int64) error
}

func (m *mockRefreshTokenStore) CreateRefreshToken(ctx context.Context, userID int64, token string, expiryDate time.Time) error {
	return m.CreateRefreshTokenFn(ctx, userID, token, expiryDate)
}
func (m *mockRefreshTokenStore) GetRefreshToken(ctx context.Context, token string) (int64, time.Time, error) {
	return m.GetRefreshTokenFn(ctx, token)
}
func (m *mockRefreshTokenStore) DeleteRefreshToken(ctx context.Context, token string) error {
	return m.DeleteRefreshTokenFn(ctx, token)
}
func (m *mockRefreshTokenStore) DeleteTokensByUserID(ctx context.Context, userID int64) error {
	return m.DeleteTokensByUserFn(ctx, userID)
}

type mockMailer struct {
	SendVerificationEmailFn  func(toEmail, toName, token string) error
	SendPasswordResetEmailFn func(toEmail, toName, token string) error
}

func (m *mockMailer) SendVerificationEmail(toEmail, toName, token string) error {
	if m.SendVerificationEmailFn == nil {
		return nil
	}
	return m.SendVerificationEmailFn(toEmail, toName, token)
}
func (m *mockMailer) SendPasswordResetEmail(toEmail, toName, token string) error {
	if m.SendPasswordResetEmailFn == nil {
		return nil
	}
	return m.SendPasswordResetEmailFn(toEmail, toName, token)
}

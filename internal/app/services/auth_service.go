package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/hostelms/internal/app/models"
	"github.com/yigit/hostelms/internal/app/models/dto"
	"github.com/yigit/hostelms/internal/pkg/apperrors"
	"github.com/yigit/hostelms/internal/pkg/auth"
	"github.com/yigit/hostelms/internal/pkg/email"
	"github.com/yigit/hostelms/internal/pkg/validation"
)

// AuthUserStore is the user persistence surface the auth service depends on
type AuthUserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*models.User, error)
	MarkEmailVerified(ctx context.Context, id int64) error
	SetResetPasswordToken(ctx context.Context, id int64, token string, expiry time.Time) error
	GetByResetPasswordToken(ctx context.Context, token string) (*models.User, error)
	UpdatePasswordAndClearResetToken(ctx context.Context, id int64, passwordHash string) error
}

// RefreshTokenStore is the refresh token persistence surface
type RefreshTokenStore interface {
	CreateRefreshToken(ctx context.Context, userID int64, token string, expiryDate time.Time) error
	GetRefreshToken(ctx context.Context, token string) (int64, time.Time, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	DeleteTokensByUserID(ctx context.Context, userID int64) error
}

// AuthService handles registration, login and the token lifecycle
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	users           AuthUserStore
	tokens          RefreshTokenStore
	jwtService      *auth.JWTService
	mailer          email.EmailService
	verificationExp time.Duration
	resetExp        time.Duration
	logger          zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users AuthUserStore,
	tokens RefreshTokenStore,
	jwtService *auth.JWTService,
	mailer email.EmailService,
	verificationExp, resetExp time.Duration,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		users:           users,
		tokens:          tokens,
		jwtService:      jwtService,
		mailer:          mailer,
		verificationExp: verificationExp,
		resetExp:        resetExp,
		logger:          logger,
	}
}

// Register creates a student account and sends a verification email
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	token, err := email.GenerateToken()
	if err != nil {
		return nil, err
	}

	expiry := time.Now().Add(s.verificationExp)
	user := &models.User{
		Name:                    req.Name,
		Email:                   validation.NormalizeEmail(req.Email),
		Role:                    models.RoleStudent,
		VerificationToken:       &token,
		VerificationTokenExpiry: &expiry,
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}
	if req.Address != "" {
		user.Address = &req.Address
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hash

	user, err = s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	// A mail failure must not fail registration; the token can be re-sent
	if err := s.mailer.SendVerificationEmail(user.Email, user.Name, token); err != nil {
		s.logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send verification email")
	}

	return user, nil
}

// Login verifies credentials and issues a token pair
func (s *authService) Login(ctx context.Context, emailAddr, password string) (*dto.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, validation.NormalizeEmail(emailAddr))
	if err != nil {
		// Wrong email and wrong password are indistinguishable to the caller
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsEmailVerified() {
		return nil, apperrors.ErrEmailNotVerified
	}

	return s.issueTokenPair(ctx, user)
}

// RefreshToken rotates a refresh token and issues a new pair
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, expiry, err := s.tokens.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if time.Now().After(expiry) {
		_ = s.tokens.DeleteRefreshToken(ctx, refreshToken)
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}

	// Single use: the presented token is gone regardless of what follows
	if err := s.tokens.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokenPair(ctx, user)
}

func (s *authService) issueTokenPair(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(
		user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	err = s.tokens.CreateRefreshToken(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry())
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		User:             user,
	}, nil
}

// VerifyEmail stamps the user verified and consumes the token
func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.ErrInvalidEmailToken
	}

	user, err := s.users.GetByVerificationToken(ctx, token)
	if err != nil {
		return err
	}

	return s.users.MarkEmailVerified(ctx, user.ID)
}

// ForgotPassword stores a reset token and emails the reset link. The outcome
// is identical whether or not the account exists.
func (s *authService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.users.GetByEmail(ctx, validation.NormalizeEmail(emailAddr))
	if err != nil {
		return nil
	}

	token, err := email.GenerateToken()
	if err != nil {
		return err
	}

	if err := s.users.SetResetPasswordToken(ctx, user.ID, token, time.Now().Add(s.resetExp)); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetEmail(user.Email, user.Name, token); err != nil {
		s.logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send password reset email")
	}

	return nil
}

// ResetPassword consumes a reset token and stores the new password
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.users.GetByResetPasswordToken(ctx, token)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePasswordAndClearResetToken(ctx, user.ID, hash); err != nil {
		return err
	}

	// Password changed: revoke every outstanding session
	return s.tokens.DeleteTokensByUserID(ctx, user.ID)
}

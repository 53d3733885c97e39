package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"food-delivery/internal/data/entity"
	"food-delivery/internal/data/repository"
	"food-delivery/internal/dto/request"
	"food-delivery/internal/dto/response"
	"food-delivery/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest, profileImage *string) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, customerID uuid.UUID) error
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, req *request.EmailRequest) error
	ForgotPassword(ctx context.Context, req *request.EmailRequest) error
	VerifyResetOTP(ctx context.Context, req *request.VerifyResetOTPRequest) (string, error)
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
	SendOTP(ctx context.Context, req *request.SendOTPRequest) (string, error)
	VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.AuthResponse, error)
	RefreshToken(ctx context.Context, req *request.RefreshTokenRequest) (*response.TokenResponse, error)
	CheckExists(ctx context.Context, email, phone string) (bool, error)
	EnsureAdmin(ctx context.Context, admin utils.AdminConfig) (bool, error)
}

type authService struct {
	repo         repository.CustomerRepository
	tokens       TokenService
	verification VerificationService
	otp          OTPService
	log          *zap.Logger
	now          Clock
}

func NewAuthService(
	repo repository.CustomerRepository,
	tokens TokenService,
	verification VerificationService,
	otp OTPService,
	log *zap.Logger,
	now Clock,
) AuthService {
	return &authService{
		repo:         repo,
		tokens:       tokens,
		verification: verification,
		otp:          otp,
		log:          log,
		now:          clockOrDefault(now),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return NewValidationError(errs)
	}
	return nil
}

func (s *authService) authResponse(c *entity.Customer, pair *TokenPair) *response.AuthResponse {
	return &response.AuthResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Customer:     response.CustomerToResponse(c),
	}
}

// checkIdentityFree reports which of email / phone is already taken.
func (s *authService) checkIdentityFree(ctx context.Context, email, phone string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return &DuplicateIdentityError{Field: "email"}
	}

	existing, err = s.repo.FindByIdentity(ctx, "", phone)
	if err != nil {
		return fmt.Errorf("failed to check phone: %w", err)
	}
	if existing != nil {
		return &DuplicateIdentityError{Field: "phone"}
	}

	return nil
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest, profileImage *string) (*response.AuthResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	email := normalizeEmail(req.Email)
	phone := strings.TrimSpace(req.Phone)

	if err := s.checkIdentityFree(ctx, email, phone); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password: %w", err)
	}

	language := entity.LanguageEN
	if req.Language != "" {
		language = entity.Language(req.Language)
	}

	now := s.now()
	customer := &entity.Customer{
		BaseNoDelete:            entity.NewBaseNoDelete(now),
		Name:                    strings.TrimSpace(req.Name),
		Email:                   email,
		Phone:                   phone,
		PasswordHash:            hashedPassword,
		ProfileImage:            profileImage,
		Language:                language,
		Role:                    entity.RoleCustomer,
		IsVerified:              false,
		IsActive:                true,
		Addresses:               []entity.Address{},
		NotificationPreferences: entity.DefaultNotificationPreferences(),
	}

	verificationToken, err := s.verification.Attach(customer)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		var dup *DuplicateIdentityError
		if errors.As(err, &dup) {
			return nil, dup
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.verification.Deliver(customer, verificationToken)

	pair, err := s.tokens.IssuePair(customer.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Customer registered",
		zap.String("customer_id", customer.ID.String()),
		zap.String("email", utils.MaskEmail(customer.Email)))

	return s.authResponse(customer, pair), nil
}

// Login returns the same error for an unknown identity and a wrong password.
func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Login validation failed", zap.Error(err))
		return nil, err
	}

	customer, err := s.repo.FindByIdentity(ctx, normalizeEmail(req.Email), strings.TrimSpace(req.Phone))
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	if customer == nil {
		s.log.Warn("Login rejected: unknown identity")
		return nil, ErrInvalidCredentials
	}

	if !customer.IsActive {
		s.log.Warn("Login rejected: account deactivated", zap.String("customer_id", customer.ID.String()))
		return nil, ErrAccountDeactivated
	}

	if !utils.CheckPasswordHash(req.Password, customer.PasswordHash) {
		s.log.Warn("Login rejected: wrong password", zap.String("customer_id", customer.ID.String()))
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.repo.RecordLogin(ctx, customer.ID, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	customer.LastLogin = &now

	pair, err := s.tokens.IssuePair(customer.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Customer logged in", zap.String("customer_id", customer.ID.String()))
	return s.authResponse(customer, pair), nil
}

// Logout drops the push token. Issued JWTs stay valid until they expire.
func (s *authService) Logout(ctx context.Context, customerID uuid.UUID) error {
	err := withRetry(func() error {
		customer, err := s.repo.FindByID(ctx, customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return ErrInvalidToken
		}

		customer.FCMToken = nil
		customer.Touch(s.now())
		return s.repo.Update(ctx, customer)
	})
	if err != nil {
		if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrConcurrentUpdate) {
			return err
		}
		return fmt.Errorf("failed to logout: %w", err)
	}

	s.log.Info("Customer logged out", zap.String("customer_id", customerID.String()))
	return nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	_, err := s.verification.Consume(ctx, token)
	return err
}

func (s *authService) ResendVerification(ctx context.Context, req *request.EmailRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	return s.verification.Resend(ctx, req.Email)
}

func (s *authService) ForgotPassword(ctx context.Context, req *request.EmailRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	return s.otp.RequestPasswordReset(ctx, req.Email)
}

func (s *authService) VerifyResetOTP(ctx context.Context, req *request.VerifyResetOTPRequest) (string, error) {
	if err := validate(req); err != nil {
		return "", err
	}
	return s.otp.VerifyPasswordResetOTP(ctx, req.Email, req.OTPCode)
}

func (s *authService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	return s.otp.ResetPassword(ctx, req.Token, req.NewPassword)
}

func (s *authService) SendOTP(ctx context.Context, req *request.SendOTPRequest) (string, error) {
	if err := validate(req); err != nil {
		return "", err
	}
	return s.otp.Send(ctx, req.Email, strings.TrimSpace(req.Phone))
}

func (s *authService) VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.AuthResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	customer, pair, err := s.otp.Verify(ctx, req.Email, strings.TrimSpace(req.Phone), req.OTPCode)
	if err != nil {
		return nil, err
	}
	return s.authResponse(customer, pair), nil
}

// RefreshToken rotates both tokens. Missing or deactivated accounts lose
// refresh capability even with a correctly signed token.
func (s *authService) RefreshToken(ctx context.Context, req *request.RefreshTokenRequest) (*response.TokenResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	customerID, err := s.tokens.Verify(req.RefreshToken, RefreshToken)
	if err != nil {
		return nil, err
	}

	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	if customer == nil || !customer.IsActive {
		s.log.Warn("Refresh rejected", zap.String("customer_id", customerID.String()))
		return nil, ErrInvalidToken
	}

	pair, err := s.tokens.IssuePair(customer.ID)
	if err != nil {
		return nil, err
	}

	return &response.TokenResponse{Token: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

func (s *authService) CheckExists(ctx context.Context, email, phone string) (bool, error) {
	email = normalizeEmail(email)
	phone = strings.TrimSpace(phone)
	if email == "" && phone == "" {
		return false, NewValidationError(map[string]string{"email": "email or phone is required"})
	}

	exists, err := s.repo.ExistsByIdentity(ctx, email, phone)
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return exists, nil
}

// EnsureAdmin creates the bootstrap admin account unless one with that email
// or phone already exists. It reports whether an account was created.
func (s *authService) EnsureAdmin(ctx context.Context, admin utils.AdminConfig) (bool, error) {
	req := &request.RegisterRequest{
		Name:     admin.Name,
		Email:    admin.Email,
		Phone:    admin.Phone,
		Password: admin.Password,
	}
	if err := validate(req); err != nil {
		return false, err
	}

	email := normalizeEmail(admin.Email)
	exists, err := s.repo.ExistsByIdentity(ctx, email, admin.Phone)
	if err != nil {
		return false, fmt.Errorf("failed to check admin: %w", err)
	}
	if exists {
		return false, nil
	}

	hashedPassword, err := utils.HashPassword(admin.Password)
	if err != nil {
		return false, fmt.Errorf("failed to process password: %w", err)
	}

	now := s.now()
	customer := &entity.Customer{
		BaseNoDelete:            entity.NewBaseNoDelete(now),
		Name:                    admin.Name,
		Email:                   email,
		Phone:                   admin.Phone,
		PasswordHash:            hashedPassword,
		Language:                entity.LanguageEN,
		Role:                    entity.RoleAdmin,
		IsVerified:              true,
		IsActive:                true,
		Addresses:               []entity.Address{},
		NotificationPreferences: entity.DefaultNotificationPreferences(),
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}

	s.log.Info("Admin account created", zap.String("customer_id", customer.ID.String()))
	return true, nil
}

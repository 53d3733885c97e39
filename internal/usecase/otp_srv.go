package usecase

import (
	"context"
	"fmt"

	"food-delivery/internal/data/entity"
	"food-delivery/internal/data/repository"
	"food-delivery/pkg/utils"

	"go.uber.org/zap"
)

const (
	resetSecretBytes = 32
	// otpLength matches the len=6 rule on the verify requests.
	otpLength = 6
)

// OTPService runs the password-reset flow
// (request OTP -> verify OTP -> reset with secret) and the generic
// OTP identity check.
type OTPService interface {
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyPasswordResetOTP(ctx context.Context, email, code string) (string, error)
	ResetPassword(ctx context.Context, secret, newPassword string) error

	// Send returns the issued code so debug builds can echo it.
	Send(ctx context.Context, email, phone string) (string, error)
	Verify(ctx context.Context, email, phone, code string) (*entity.Customer, *TokenPair, error)
}

type otpService struct {
	repo     repository.CustomerRepository
	tokens   TokenService
	config   utils.OTPConfig
	notifier Notifier
	log      *zap.Logger
	now      Clock
}

func NewOTPService(
	repo repository.CustomerRepository,
	tokens TokenService,
	config utils.OTPConfig,
	notifier Notifier,
	log *zap.Logger,
	now Clock,
) OTPService {
	return &otpService{
		repo:     repo,
		tokens:   tokens,
		config:   config,
		notifier: notifier,
		log:      log,
		now:      clockOrDefault(now),
	}
}

// issue stores a new code on the customer returned by find, replacing any
// outstanding one. find runs again if the save loses a race.
func (s *otpService) issue(ctx context.Context, find func() (*entity.Customer, error)) (*entity.Customer, string, error) {
	var customer *entity.Customer
	var code string
	err := withRetry(func() error {
		found, err := find()
		if err != nil {
			return err
		}

		if code, err = utils.GenerateOTP(otpLength); err != nil {
			return err
		}

		now := s.now()
		found.SetOTP(code, now.Add(s.config.Expiry))
		found.Touch(now)
		if err := s.repo.Update(ctx, found); err != nil {
			return fmt.Errorf("failed to store OTP: %w", err)
		}
		customer = found
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	to, name := customer.Email, customer.Name
	dispatch(s.log, "otp", customer.ID, func(ctx context.Context) error {
		return s.notifier.SendOTPEmail(ctx, to, name, code)
	})

	return customer, code, nil
}

func (s *otpService) RequestPasswordReset(ctx context.Context, email string) error {
	customer, _, err := s.issue(ctx, func() (*entity.Customer, error) {
		customer, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
		if err != nil {
			return nil, fmt.Errorf("failed to request password reset: %w", err)
		}
		if customer == nil {
			return nil, ErrAccountNotFound
		}
		return customer, nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Password reset OTP issued", zap.String("customer_id", customer.ID.String()))
	return nil
}

// VerifyPasswordResetOTP trades a valid code for a raw reset secret. Only
// the secret's hash is stored. The code is consumed by the exchange.
func (s *otpService) VerifyPasswordResetOTP(ctx context.Context, email, code string) (string, error) {
	var customer *entity.Customer
	var secret string
	err := withRetry(func() error {
		now := s.now()
		found, err := s.repo.FindByValidOTP(ctx, normalizeEmail(email), "", code, now)
		if err != nil {
			return fmt.Errorf("failed to verify OTP: %w", err)
		}
		if found == nil {
			return ErrInvalidOrExpiredOTP
		}

		if secret, err = utils.GenerateToken(resetSecretBytes); err != nil {
			return err
		}

		found.SetResetToken(utils.HashToken(secret), now.Add(s.config.ResetTokenExpiry))
		found.Touch(now)
		if err := s.repo.Update(ctx, found); err != nil {
			return fmt.Errorf("failed to verify OTP: %w", err)
		}
		customer = found
		return nil
	})
	if err != nil {
		return "", err
	}

	s.log.Info("Password reset OTP verified", zap.String("customer_id", customer.ID.String()))
	return secret, nil
}

func (s *otpService) ResetPassword(ctx context.Context, secret, newPassword string) error {
	if secret == "" {
		return ErrInvalidOrExpiredToken
	}

	var customer *entity.Customer
	var hash string
	err := withRetry(func() error {
		now := s.now()
		found, err := s.repo.FindByResetToken(ctx, utils.HashToken(secret), now)
		if err != nil {
			return fmt.Errorf("failed to reset password: %w", err)
		}
		if found == nil {
			return ErrInvalidOrExpiredToken
		}

		if hash == "" {
			if hash, err = utils.HashPassword(newPassword); err != nil {
				return fmt.Errorf("failed to process password: %w", err)
			}
		}

		found.PasswordHash = hash
		found.ClearResetToken()
		found.Touch(now)
		if err := s.repo.Update(ctx, found); err != nil {
			return fmt.Errorf("failed to reset password: %w", err)
		}
		customer = found
		return nil
	})
	if err != nil {
		return err
	}

	to, name := customer.Email, customer.Name
	dispatch(s.log, "password_changed", customer.ID, func(ctx context.Context) error {
		return s.notifier.SendPasswordChangedEmail(ctx, to, name)
	})

	s.log.Info("Password reset completed", zap.String("customer_id", customer.ID.String()))
	return nil
}

func (s *otpService) Send(ctx context.Context, email, phone string) (string, error) {
	customer, code, err := s.issue(ctx, func() (*entity.Customer, error) {
		customer, err := s.repo.FindByIdentity(ctx, normalizeEmail(email), phone)
		if err != nil {
			return nil, fmt.Errorf("failed to send OTP: %w", err)
		}
		if customer == nil {
			return nil, ErrAccountNotFound
		}
		return customer, nil
	})
	if err != nil {
		return "", err
	}

	s.log.Info("OTP issued", zap.String("customer_id", customer.ID.String()))
	return code, nil
}

// Verify checks a generic OTP, marks the account verified and signs it in.
func (s *otpService) Verify(ctx context.Context, email, phone, code string) (*entity.Customer, *TokenPair, error) {
	var customer *entity.Customer
	err := withRetry(func() error {
		now := s.now()
		found, err := s.repo.FindByValidOTP(ctx, normalizeEmail(email), phone, code, now)
		if err != nil {
			return fmt.Errorf("failed to verify OTP: %w", err)
		}
		if found == nil {
			return ErrInvalidOrExpiredOTP
		}

		found.IsVerified = true
		found.ClearOTP()
		found.Touch(now)
		if err := s.repo.Update(ctx, found); err != nil {
			return fmt.Errorf("failed to verify OTP: %w", err)
		}
		customer = found
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.tokens.IssuePair(customer.ID)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("OTP verified", zap.String("customer_id", customer.ID.String()))
	return customer, pair, nil
}

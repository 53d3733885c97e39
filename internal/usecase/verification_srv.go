package usecase

import (
	"context"
	"fmt"

	"food-delivery/internal/data/entity"
	"food-delivery/internal/data/repository"
	"food-delivery/pkg/utils"

	"go.uber.org/zap"
)

const verificationTokenBytes = 32

// VerificationService owns the email-verification token lifecycle.
type VerificationService interface {
	// Attach puts a fresh token and expiry on c without saving it.
	Attach(c *entity.Customer) (string, error)
	// Deliver sends the token in the background.
	Deliver(c *entity.Customer, token string)
	Consume(ctx context.Context, token string) (*entity.Customer, error)
	Resend(ctx context.Context, email string) error
}

type verificationService struct {
	repo     repository.CustomerRepository
	config   utils.OTPConfig
	notifier Notifier
	log      *zap.Logger
	now      Clock
}

func NewVerificationService(
	repo repository.CustomerRepository,
	config utils.OTPConfig,
	notifier Notifier,
	log *zap.Logger,
	now Clock,
) VerificationService {
	return &verificationService{
		repo:     repo,
		config:   config,
		notifier: notifier,
		log:      log,
		now:      clockOrDefault(now),
	}
}

func (s *verificationService) Attach(c *entity.Customer) (string, error) {
	token, err := utils.GenerateToken(verificationTokenBytes)
	if err != nil {
		return "", err
	}

	c.SetEmailVerification(token, s.now().Add(s.config.VerificationExpiry))
	return token, nil
}

func (s *verificationService) Deliver(c *entity.Customer, token string) {
	to, name := c.Email, c.Name
	dispatch(s.log, "email_verification", c.ID, func(ctx context.Context) error {
		return s.notifier.SendVerificationEmail(ctx, to, name, token)
	})
}

// Consume marks the owner of token verified. The token is single-use: of
// two concurrent consumers only one succeeds.
func (s *verificationService) Consume(ctx context.Context, token string) (*entity.Customer, error) {
	if token == "" {
		return nil, ErrInvalidOrExpiredToken
	}

	var customer *entity.Customer
	err := withRetry(func() error {
		now := s.now()
		found, err := s.repo.FindByEmailVerificationToken(ctx, token, now)
		if err != nil {
			return fmt.Errorf("failed to verify email: %w", err)
		}
		if found == nil {
			s.log.Warn("Email verification token rejected")
			return ErrInvalidOrExpiredToken
		}

		found.IsVerified = true
		found.ClearEmailVerification()
		found.Touch(now)
		if err := s.repo.Update(ctx, found); err != nil {
			return fmt.Errorf("failed to verify email: %w", err)
		}
		customer = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Email verified", zap.String("customer_id", customer.ID.String()))
	return customer, nil
}

// Resend issues a new token, superseding any earlier one.
func (s *verificationService) Resend(ctx context.Context, email string) error {
	var customer *entity.Customer
	var token string
	err := withRetry(func() error {
		found, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
		if err != nil {
			return fmt.Errorf("failed to resend verification: %w", err)
		}
		if found == nil {
			return ErrAccountNotFound
		}
		if found.IsVerified {
			return ErrAlreadyVerified
		}

		if token, err = s.Attach(found); err != nil {
			return err
		}
		found.Touch(s.now())
		if err := s.repo.Update(ctx, found); err != nil {
			return fmt.Errorf("failed to resend verification: %w", err)
		}
		customer = found
		return nil
	})
	if err != nil {
		return err
	}

	s.Deliver(customer, token)
	s.log.Info("Verification email re-issued", zap.String("customer_id", customer.ID.String()))
	return nil
}

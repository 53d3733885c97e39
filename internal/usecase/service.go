package usecase

import (
	"food-delivery/internal/data/repository"
	"food-delivery/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Token        TokenService
	Verification VerificationService
	OTP          OTPService
	Auth         AuthService
	Customer     CustomerService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	notifier Notifier,
	images ImageRemover,
	log *zap.Logger,
) *Service {
	return newService(repo, config, notifier, images, log, nil)
}

func newService(
	repo *repository.Repository,
	config *utils.Config,
	notifier Notifier,
	images ImageRemover,
	log *zap.Logger,
	now Clock,
) *Service {
	tokens := NewTokenService(config.JWT, now)
	verification := NewVerificationService(repo.Customer, config.OTP, notifier, log.With(zap.String("service", "verification")), now)
	otp := NewOTPService(repo.Customer, tokens, config.OTP, notifier, log.With(zap.String("service", "otp")), now)

	return &Service{
		Token:        tokens,
		Verification: verification,
		OTP:          otp,
		Auth:         NewAuthService(repo.Customer, tokens, verification, otp, log.With(zap.String("service", "auth")), now),
		Customer:     NewCustomerService(repo.Customer, images, log.With(zap.String("service", "customer")), now),
	}
}

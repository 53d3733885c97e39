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

// ImageRemover deletes a stored profile image by its public reference.
type ImageRemover interface {
	Remove(ref string) error
}

type CustomerService interface {
	GetProfile(ctx context.Context, customerID uuid.UUID) (*response.CustomerResponse, error)
	UpdateProfile(ctx context.Context, customerID uuid.UUID, req *request.UpdateProfileRequest, profileImage *string) (*response.CustomerResponse, error)
	ChangePassword(ctx context.Context, customerID uuid.UUID, req *request.ChangePasswordRequest) error
	Deactivate(ctx context.Context, customerID uuid.UUID) error

	GetAddresses(ctx context.Context, customerID uuid.UUID) (*response.AddressesResponse, error)
	AddAddress(ctx context.Context, customerID uuid.UUID, req *request.AddressRequest) (*entity.Address, error)
	UpdateAddress(ctx context.Context, customerID, addressID uuid.UUID, req *request.AddressRequest) (*entity.Address, error)
	DeleteAddress(ctx context.Context, customerID, addressID uuid.UUID) (*response.AddressesResponse, error)
	SetDefaultAddress(ctx context.Context, customerID, addressID uuid.UUID) (*response.AddressesResponse, error)

	// admin
	GetAll(ctx context.Context, req *request.CustomerListRequest) (*response.PaginatedResponse[response.CustomerResponse], error)
	GetByID(ctx context.Context, customerID uuid.UUID) (*response.CustomerResponse, error)
	UpdateByID(ctx context.Context, customerID uuid.UUID, req *request.AdminUpdateCustomerRequest) (*response.CustomerResponse, error)
	Delete(ctx context.Context, customerID uuid.UUID) error
}

type customerService struct {
	repo   repository.CustomerRepository
	images ImageRemover
	log    *zap.Logger
	now    Clock
}

func NewCustomerService(repo repository.CustomerRepository, images ImageRemover, log *zap.Logger, now Clock) CustomerService {
	return &customerService{
		repo:   repo,
		images: images,
		log:    log,
		now:    clockOrDefault(now),
	}
}

func (s *customerService) load(ctx context.Context, customerID uuid.UUID) (*entity.Customer, error) {
	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, ErrAccountNotFound
	}
	return customer, nil
}

func (s *customerService) save(ctx context.Context, customer *entity.Customer) error {
	customer.Touch(s.now())
	if err := s.repo.Update(ctx, customer); err != nil {
		var dup *DuplicateIdentityError
		switch {
		case errors.As(err, &dup):
			return dup
		case errors.Is(err, repository.ErrCustomerNotFound):
			return ErrAccountNotFound
		case errors.Is(err, repository.ErrStaleCustomer):
			return ErrConcurrentUpdate
		}
		return fmt.Errorf("failed to save customer: %w", err)
	}
	return nil
}

// checkPhoneFree rejects a phone that belongs to another account.
func (s *customerService) checkPhoneFree(ctx context.Context, customer *entity.Customer, phone string) error {
	if phone == customer.Phone {
		return nil
	}
	other, err := s.repo.FindByIdentity(ctx, "", phone)
	if err != nil {
		return fmt.Errorf("failed to check phone: %w", err)
	}
	if other != nil && other.ID != customer.ID {
		return &DuplicateIdentityError{Field: "phone"}
	}
	return nil
}

func (s *customerService) removeImage(ref *string) {
	if ref == nil || s.images == nil {
		return
	}
	if err := s.images.Remove(*ref); err != nil {
		s.log.Warn("Failed to remove previous profile image", zap.String("ref", *ref), zap.Error(err))
	}
}

func (s *customerService) GetProfile(ctx context.Context, customerID uuid.UUID) (*response.CustomerResponse, error) {
	customer, err := s.load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) UpdateProfile(ctx context.Context, customerID uuid.UUID, req *request.UpdateProfileRequest, profileImage *string) (*response.CustomerResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	customer, err := s.load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if err := s.checkPhoneFree(ctx, customer, phone); err != nil {
			return nil, err
		}
		customer.Phone = phone
	}
	if req.Language != nil {
		customer.Language = entity.Language(*req.Language)
	}
	if req.FCMToken != nil {
		customer.FCMToken = req.FCMToken
	}
	if p := req.NotificationPreferences; p != nil {
		prefs := &customer.NotificationPreferences
		setBool(&prefs.PushNotifications, p.PushNotifications)
		setBool(&prefs.EmailNotifications, p.EmailNotifications)
		setBool(&prefs.SMSNotifications, p.SMSNotifications)
		setBool(&prefs.OrderUpdates, p.OrderUpdates)
		setBool(&prefs.Promotions, p.Promotions)
	}

	var previousImage *string
	if profileImage != nil {
		previousImage = customer.ProfileImage
		customer.ProfileImage = profileImage
	}

	if err := s.save(ctx, customer); err != nil {
		return nil, err
	}
	s.removeImage(previousImage)

	s.log.Info("Profile updated", zap.String("customer_id", customerID.String()))
	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func (s *customerService) ChangePassword(ctx context.Context, customerID uuid.UUID, req *request.ChangePasswordRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	customer, err := s.load(ctx, customerID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, customer.PasswordHash) {
		s.log.Warn("Change password rejected", zap.String("customer_id", customerID.String()))
		return ErrIncorrectPassword
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to process password: %w", err)
	}
	customer.PasswordHash = hash

	if err := s.save(ctx, customer); err != nil {
		return err
	}

	s.log.Info("Password changed", zap.String("customer_id", customerID.String()))
	return nil
}

func (s *customerService) Deactivate(ctx context.Context, customerID uuid.UUID) error {
	customer, err := s.load(ctx, customerID)
	if err != nil {
		return err
	}

	customer.IsActive = false
	customer.FCMToken = nil
	if err := s.save(ctx, customer); err != nil {
		return err
	}

	s.log.Info("Account deactivated", zap.String("customer_id", customerID.String()))
	return nil
}

// ==================== ADDRESSES ====================

func addressFromRequest(req *request.AddressRequest) entity.Address {
	return entity.Address{
		Type:      entity.AddressType(req.Type),
		Label:     strings.TrimSpace(req.Label),
		Street:    strings.TrimSpace(req.Street),
		Building:  req.Building,
		Floor:     req.Floor,
		Apartment: req.Apartment,
		City:      strings.TrimSpace(req.City),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
}

func (s *customerService) GetAddresses(ctx context.Context, customerID uuid.UUID) (*response.AddressesResponse, error) {
	customer, err := s.load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	resp := response.AddressesToResponse(customer)
	return &resp, nil
}

func (s *customerService) AddAddress(ctx context.Context, customerID uuid.UUID, req *request.AddressRequest) (*entity.Address, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	customer, err := s.load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	addr := customer.AddAddress(addressFromRequest(req), req.IsDefault != nil && *req.IsDefault)
	if err := s.save(ctx, customer); err != nil {
		return nil, err
	}

	s.log.Info("Address added",
		zap.String("customer_id", customerID.String()),
		zap.String("address_id", addr.ID.String()))
	return &addr, nil
}

func (s *customerService) UpdateAddress(ctx context.Context, customerID, addressID uuid.UUID, req *request.AddressRequest) (*entity.Address, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	customer, err := s.load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	addr := addressFromRequest(req)
	addr.ID = addressID
	updated, ok := customer.ReplaceAddress(addr, req.IsDefault)
	if !ok {
		return nil, ErrAddressNotFound
	}

	if err := s.save(ctx, customer); err != nil {
		return nil, err
	}

	s.log.Info("Address updated",
		zap.String("customer_id", customerID.String()),
		zap.String("address_id", addressID.String()))
	return &updated, nil
}

func (s *customerService) DeleteAddress(ctx context.Context, customerID, addressID uuid.UUID) (*response.AddressesResponse, error) {
	customer, err := s.load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if !customer.RemoveAddress(addressID) {
		return nil, ErrAddressNotFound
	}

	if err := s.save(ctx, customer); err != nil {
		return nil, err
	}

	s.log.Info("Address deleted",
		zap.String("customer_id", customerID.String()),
		zap.String("address_id", addressID.String()))
	resp := response.AddressesToResponse(customer)
	return &resp, nil
}

func (s *customerService) SetDefaultAddress(ctx context.Context, customerID, addressID uuid.UUID) (*response.AddressesResponse, error) {
	customer, err := s.load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if !customer.SetDefaultAddress(addressID) {
		return nil, ErrAddressNotFound
	}

	if err := s.save(ctx, customer); err != nil {
		return nil, err
	}

	resp := response.AddressesToResponse(customer)
	return &resp, nil
}

// ==================== ADMIN ====================

func (s *customerService) GetAll(ctx context.Context, req *request.CustomerListRequest) (*response.PaginatedResponse[response.CustomerResponse], error) {
	filter := repository.CustomerFilter{
		IsVerified: req.IsVerified,
		IsActive:   req.IsActive,
	}
	page, limit := req.CurrentPage(), req.PageLimit()

	customers, err := s.repo.FindAll(ctx, filter, limit, req.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	return response.NewPaginatedResponse(response.CustomersToResponse(customers), page, limit, total), nil
}

func (s *customerService) GetByID(ctx context.Context, customerID uuid.UUID) (*response.CustomerResponse, error) {
	return s.GetProfile(ctx, customerID)
}

func (s *customerService) UpdateByID(ctx context.Context, customerID uuid.UUID, req *request.AdminUpdateCustomerRequest) (*response.CustomerResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	customer, err := s.load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if err := s.checkPhoneFree(ctx, customer, phone); err != nil {
			return nil, err
		}
		customer.Phone = phone
	}
	if req.Language != nil {
		customer.Language = entity.Language(*req.Language)
	}
	if req.Role != nil {
		customer.Role = entity.UserRole(*req.Role)
	}
	if req.IsVerified != nil {
		customer.IsVerified = *req.IsVerified
	}
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to process password: %w", err)
		}
		customer.PasswordHash = hash
	}

	if err := s.save(ctx, customer); err != nil {
		return nil, err
	}

	s.log.Info("Customer updated by admin", zap.String("customer_id", customerID.String()))
	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) Delete(ctx context.Context, customerID uuid.UUID) error {
	customer, err := s.load(ctx, customerID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, customerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	s.removeImage(customer.ProfileImage)

	s.log.Info("Customer deleted", zap.String("customer_id", customerID.String()))
	return nil
}

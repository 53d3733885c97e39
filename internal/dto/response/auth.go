package response

import (
	"time"

	"food-delivery/internal/data/entity"

	"github.com/google/uuid"
)

// CustomerResponse is the account projection returned to clients. Password,
// verification, OTP and reset fields are never part of it.
type CustomerResponse struct {
	ID                      string                         `json:"id"`
	Name                    string                         `json:"name"`
	Email                   string                         `json:"email"`
	Phone                   string                         `json:"phone"`
	ProfileImage            *string                        `json:"profileImage"`
	Language                entity.Language                `json:"language"`
	Role                    entity.UserRole                `json:"role"`
	IsVerified              bool                           `json:"isVerified"`
	IsActive                bool                           `json:"isActive"`
	Addresses               []entity.Address               `json:"addresses"`
	DefaultAddressID        *uuid.UUID                     `json:"defaultAddressId"`
	NotificationPreferences entity.NotificationPreferences `json:"notificationPreferences"`
	TotalOrders             int                            `json:"totalOrders"`
	TotalSpent              float64                        `json:"totalSpent"`
	LastLogin               *time.Time                     `json:"lastLogin"`
	CreatedAt               time.Time                      `json:"createdAt"`
	UpdatedAt               time.Time                      `json:"updatedAt"`
}

// AuthResponse is returned by register, login and OTP verification.
type AuthResponse struct {
	Token        string           `json:"token"`
	RefreshToken string           `json:"refreshToken"`
	Customer     CustomerResponse `json:"customer"`
}

type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type AddressesResponse struct {
	Addresses        []entity.Address `json:"addresses"`
	DefaultAddressID *uuid.UUID       `json:"defaultAddressId"`
}

func CustomerToResponse(c *entity.Customer) CustomerResponse {
	addresses := c.Addresses
	if addresses == nil {
		addresses = []entity.Address{}
	}

	return CustomerResponse{
		ID:                      c.ID.String(),
		Name:                    c.Name,
		Email:                   c.Email,
		Phone:                   c.Phone,
		ProfileImage:            c.ProfileImage,
		Language:                c.Language,
		Role:                    c.Role,
		IsVerified:              c.IsVerified,
		IsActive:                c.IsActive,
		Addresses:               addresses,
		DefaultAddressID:        c.DefaultAddressID,
		NotificationPreferences: c.NotificationPreferences,
		TotalOrders:             c.TotalOrders,
		TotalSpent:              c.TotalSpent,
		LastLogin:               c.LastLogin,
		CreatedAt:               c.CreatedAt,
		UpdatedAt:               c.UpdatedAt,
	}
}

func CustomersToResponse(customers []*entity.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, CustomerToResponse(c))
	}
	return out
}

func AddressesToResponse(c *entity.Customer) AddressesResponse {
	addresses := c.Addresses
	if addresses == nil {
		addresses = []entity.Address{}
	}
	return AddressesResponse{Addresses: addresses, DefaultAddressID: c.DefaultAddressID}
}

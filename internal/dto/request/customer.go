package request

type NotificationPreferencesRequest struct {
	PushNotifications  *bool `json:"pushNotifications,omitempty"`
	EmailNotifications *bool `json:"emailNotifications,omitempty"`
	SMSNotifications   *bool `json:"smsNotifications,omitempty"`
	OrderUpdates       *bool `json:"orderUpdates,omitempty"`
	Promotions         *bool `json:"promotions,omitempty"`
}

// UpdateProfileRequest only carries fields a customer may change on their
// own account. Nil means unchanged.
type UpdateProfileRequest struct {
	Name                    *string                         `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone                   *string                         `json:"phone,omitempty" validate:"omitempty,min=8,max=15"`
	Language                *string                         `json:"language,omitempty" validate:"omitempty,oneof=en fr ar es"`
	FCMToken                *string                         `json:"fcmToken,omitempty"`
	NotificationPreferences *NotificationPreferencesRequest `json:"notificationPreferences,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type AddressRequest struct {
	Type      string  `json:"type" validate:"required,oneof=home office apartment other"`
	Label     string  `json:"label" validate:"required,max=50"`
	Street    string  `json:"street" validate:"required"`
	Building  string  `json:"building,omitempty"`
	Floor     string  `json:"floor,omitempty"`
	Apartment string  `json:"apartment,omitempty"`
	City      string  `json:"city" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	IsDefault *bool   `json:"isDefault,omitempty"`
}

type CustomerListRequest struct {
	PaginatedRequest
	IsVerified *bool
	IsActive   *bool
}

// AdminUpdateCustomerRequest is the admin-only edit. Password, when set,
// is re-hashed.
type AdminUpdateCustomerRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,min=8,max=15"`
	Language   *string `json:"language,omitempty" validate:"omitempty,oneof=en fr ar es"`
	Role       *string `json:"role,omitempty" validate:"omitempty,oneof=customer admin"`
	IsVerified *bool   `json:"isVerified,omitempty"`
	IsActive   *bool   `json:"isActive,omitempty"`
	Password   *string `json:"password,omitempty" validate:"omitempty,min=6"`
}

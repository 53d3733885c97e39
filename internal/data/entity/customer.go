package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type Language string

const (
	LanguageEN Language = "en"
	LanguageFR Language = "fr"
	LanguageAR Language = "ar"
	LanguageES Language = "es"
)

// NotificationPreferences is stored as a JSON document on the customer row.
type NotificationPreferences struct {
	PushNotifications  bool `json:"pushNotifications"`
	EmailNotifications bool `json:"emailNotifications"`
	SMSNotifications   bool `json:"smsNotifications"`
	OrderUpdates       bool `json:"orderUpdates"`
	Promotions         bool `json:"promotions"`
}

func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		PushNotifications:  true,
		EmailNotifications: true,
		SMSNotifications:   false,
		OrderUpdates:       true,
		Promotions:         true,
	}
}

// Customer is the single account record. Addresses and preferences are
// embedded so one UPDATE persists the whole account.
type Customer struct {
	BaseNoDelete
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	Phone        string   `db:"phone"`
	PasswordHash string   `db:"password"`
	ProfileImage *string  `db:"profile_image"`
	Language     Language `db:"language"`
	Role         UserRole `db:"role"`
	IsVerified   bool     `db:"is_verified"`
	IsActive     bool     `db:"is_active"`

	Addresses        []Address  `db:"addresses"`
	DefaultAddressID *uuid.UUID `db:"default_address_id"`

	EmailVerificationToken   *string    `db:"email_verification_token"`
	EmailVerificationExpires *time.Time `db:"email_verification_expires"`
	ResetPasswordToken       *string    `db:"reset_password_token"`
	ResetPasswordExpires     *time.Time `db:"reset_password_expires"`
	OTPCode                  *string    `db:"otp_code"`
	OTPExpires               *time.Time `db:"otp_expires"`

	NotificationPreferences NotificationPreferences `db:"notification_preferences"`
	FCMToken                *string                 `db:"fcm_token"`

	TotalOrders int        `db:"total_orders"`
	TotalSpent  float64    `db:"total_spent"`
	LastLogin   *time.Time `db:"last_login"`

	// Version is bumped by every full-row update; a write carrying an older
	// value is rejected.
	Version int64 `db:"version"`
}

func (c *Customer) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// SetOTP moves the account into the OTP-issued phase.
func (c *Customer) SetOTP(code string, expires time.Time) {
	c.OTPCode = &code
	c.OTPExpires = &expires
}

func (c *Customer) ClearOTP() {
	c.OTPCode = nil
	c.OTPExpires = nil
}

// SetResetToken stores the hash of a reset secret; OTP fields are cleared
// because the two phases never coexist.
func (c *Customer) SetResetToken(hash string, expires time.Time) {
	c.ClearOTP()
	c.ResetPasswordToken = &hash
	c.ResetPasswordExpires = &expires
}

func (c *Customer) ClearResetToken() {
	c.ResetPasswordToken = nil
	c.ResetPasswordExpires = nil
}

func (c *Customer) SetEmailVerification(token string, expires time.Time) {
	c.EmailVerificationToken = &token
	c.EmailVerificationExpires = &expires
}

func (c *Customer) ClearEmailVerification() {
	c.EmailVerificationToken = nil
	c.EmailVerificationExpires = nil
}

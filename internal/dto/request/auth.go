package request

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=8,max=15"`
	Password string `json:"password" validate:"required,min=6"`
	Language string `json:"language,omitempty" validate:"omitempty,oneof=en fr ar es"`
}

// LoginRequest accepts either email or phone as the identity.
type LoginRequest struct {
	Email    string `json:"email,omitempty" validate:"required_without=Phone,omitempty,email"`
	Phone    string `json:"phone,omitempty" validate:"required_without=Email"`
	Password string `json:"password" validate:"required"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyResetOTPRequest struct {
	Email   string `json:"email" validate:"required,email"`
	OTPCode string `json:"otpCode" validate:"required,len=6,numeric"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type SendOTPRequest struct {
	Email string `json:"email,omitempty" validate:"required_without=Phone,omitempty,email"`
	Phone string `json:"phone,omitempty" validate:"required_without=Email"`
}

type VerifyOTPRequest struct {
	Email   string `json:"email,omitempty" validate:"required_without=Phone,omitempty,email"`
	Phone   string `json:"phone,omitempty" validate:"required_without=Email"`
	OTPCode string `json:"otpCode" validate:"required,len=6,numeric"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

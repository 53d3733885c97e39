package adaptor

import (
	"net/http"

	"food-delivery/internal/dto/request"
	"food-delivery/internal/dto/response"
	"food-delivery/internal/usecase"
	"food-delivery/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service   usecase.AuthService
	images    ImageUploader
	maxUpload int64
	debug     bool
	log       *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, images ImageUploader, config *utils.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:   service,
		images:    images,
		maxUpload: config.Upload.MaxBytes,
		debug:     config.App.Debug,
		log:       log,
	}
}

func authPayload(resp *response.AuthResponse) utils.Payload {
	return utils.Payload{
		"token":        resp.Token,
		"refreshToken": resp.RefreshToken,
		"customer":     resp.Customer,
	}
}

// CheckExists handles GET /api/auth/check-exists
func (h *AuthHandler) CheckExists(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	phone := r.URL.Query().Get("phone")
	if email == "" && phone == "" {
		utils.ResponseBadRequest(w, "Email or phone is required", nil)
		return
	}

	exists, err := h.service.CheckExists(r.Context(), email, phone)
	if err != nil {
		handleServiceError(w, h.log, err, "check exists")
		return
	}

	utils.ResponseSuccess(w, "Lookup completed", utils.Payload{"exists": exists})
}

// Register handles POST /api/auth/register. The body is JSON, or a
// multipart form with an optional "upload" image.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	var profileImage *string

	if isMultipart(r) {
		if !parseMultipart(w, r, h.maxUpload) {
			return
		}
		req = request.RegisterRequest{
			Name:     r.FormValue("name"),
			Email:    r.FormValue("email"),
			Phone:    r.FormValue("phone"),
			Password: r.FormValue("password"),
			Language: r.FormValue("language"),
		}

		ref, err := saveUpload(r, h.images)
		if err != nil {
			handleServiceError(w, h.log, err, "register upload")
			return
		}
		profileImage = ref
	} else if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), &req, profileImage)
	if err != nil {
		discardUpload(h.images, profileImage, h.log)
		handleServiceError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration successful! Please check your email to verify your account.", authPayload(resp))
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", authPayload(resp))
}

// VerifyEmail handles GET /api/auth/verify-email/{token}
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if err := h.service.VerifyEmail(r.Context(), token); err != nil {
		handleServiceError(w, h.log, err, "verify email",
			clientError{usecase.ErrInvalidOrExpiredToken, http.StatusBadRequest, "Invalid or expired verification token"})
		return
	}

	utils.ResponseSuccess(w, "Email verified successfully", nil)
}

// ResendVerification handles POST /api/auth/resend-verification
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req request.EmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ResendVerification(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "resend verification")
		return
	}

	utils.ResponseSuccess(w, "Verification email sent successfully", nil)
}

// ForgotPassword handles POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req request.EmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ForgotPassword(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "forgot password")
		return
	}

	utils.ResponseSuccess(w, "OTP sent to your email. Check your inbox for the verification code.",
		utils.Payload{"email": req.Email})
}

// VerifyResetOTP handles POST /api/auth/verify-otp-reset
func (h *AuthHandler) VerifyResetOTP(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyResetOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resetToken, err := h.service.VerifyResetOTP(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "verify reset OTP")
		return
	}

	utils.ResponseSuccess(w, "OTP verified successfully. You can now reset your password.", utils.Payload{
		"resetToken": resetToken,
		"email":      req.Email,
	})
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ResetPassword(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "reset password",
			clientError{usecase.ErrInvalidOrExpiredToken, http.StatusBadRequest, "Invalid or expired reset token. Please start password reset again."})
		return
	}

	utils.ResponseSuccess(w, "Password reset successfully! You can now login with your new password.", nil)
}

// SendOTP handles POST /api/auth/send-otp. The code is echoed back only
// when the server runs in debug mode.
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req request.SendOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	code, err := h.service.SendOTP(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "send OTP")
		return
	}

	var payload utils.Payload
	if h.debug {
		payload = utils.Payload{"otpCode": code}
	}
	utils.ResponseSuccess(w, "OTP sent successfully", payload)
}

// VerifyOTP handles POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.VerifyOTP(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "verify OTP")
		return
	}

	utils.ResponseSuccess(w, "OTP verified successfully", authPayload(resp))
}

// RefreshToken handles POST /api/auth/refresh-token
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req request.RefreshTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		utils.ResponseBadRequest(w, "Refresh token is required", nil)
		return
	}

	resp, err := h.service.RefreshToken(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "refresh token",
			clientError{usecase.ErrInvalidToken, http.StatusUnauthorized, "Invalid or expired refresh token"},
			clientError{usecase.ErrExpiredToken, http.StatusUnauthorized, "Invalid or expired refresh token"})
		return
	}

	utils.ResponseSuccess(w, "Token refreshed successfully", utils.Payload{
		"token":        resp.Token,
		"refreshToken": resp.RefreshToken,
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	customerID, ok := currentCustomer(w, r)
	if !ok {
		return
	}

	if err := h.service.Logout(r.Context(), customerID); err != nil {
		handleServiceError(w, h.log, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}

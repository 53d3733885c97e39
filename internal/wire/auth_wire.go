package wire

import (
	"net/http"

	"food-delivery/internal/adaptor"
	"food-delivery/internal/usecase"
	"food-delivery/pkg/middleware"
	"food-delivery/pkg/ratelimit"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	service *usecase.Service,
	limiter *ratelimit.Limiter,
	log *zap.Logger,
) {
	limit := func(scope string) func(http.Handler) http.Handler {
		return middleware.RateLimit(limiter, scope, log)
	}

	r.Route("/api/auth", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/check-exists", authHandler.CheckExists)
		r.Post("/register", authHandler.Register)
		r.With(middleware.RateLimitFailures(limiter, "login", log)).Post("/login", authHandler.Login)

		r.Get("/verify-email/{token}", authHandler.VerifyEmail)
		r.With(limit("resend-verification")).Post("/resend-verification", authHandler.ResendVerification)

		// password reset: OTP, then reset token, then new password
		r.With(limit("forgot-password")).Post("/forgot-password", authHandler.ForgotPassword)
		r.With(limit("verify-otp")).Post("/verify-otp-reset", authHandler.VerifyResetOTP)
		r.Post("/reset-password", authHandler.ResetPassword)

		r.With(limit("send-otp")).Post("/send-otp", authHandler.SendOTP)
		r.With(limit("verify-otp")).Post("/verify-otp", authHandler.VerifyOTP)

		r.Post("/refresh-token", authHandler.RefreshToken)

		// ==================== PROTECTED ROUTES ====================
		r.With(middleware.Auth(service.Token, log)).Post("/logout", authHandler.Logout)
	})
}

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"food-delivery/internal/data/repository"
	"food-delivery/internal/usecase"
	"food-delivery/pkg/utils"

	"go.uber.org/zap"
)

// bearerToken reads the access token from Authorization or x-access-token.
// Both accept a "Bearer " prefix; x-access-token may also carry the raw token.
func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return ""
		}
		return strings.TrimSpace(token)
	}

	header := strings.TrimSpace(r.Header.Get("x-access-token"))
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return header
}

// Auth verifies the access token and puts the customer id in the context.
// Verification is stateless; no store lookup happens here.
func Auth(tokens usecase.TokenService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				utils.ResponseUnauthorized(w, "Access denied. No token provided.")
				return
			}

			customerID, err := tokens.Verify(token, usecase.AccessToken)
			if err != nil {
				logger.Warn("Access token rejected",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				if errors.Is(err, usecase.ErrExpiredToken) {
					utils.ResponseUnauthorized(w, "Token has expired")
					return
				}
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), customerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin must run after Auth. It loads the caller and requires the admin role.
func Admin(customerRepo repository.CustomerRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			customerID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			customer, err := customerRepo.FindByID(r.Context(), customerID)
			if err != nil {
				logger.Error("Admin check: failed to get customer",
					zap.Error(err), zap.String("customer_id", customerID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if customer == nil {
				utils.ResponseNotFound(w, "Customer not found")
				return
			}

			if !customer.IsAdmin() {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("customer_id", customerID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Access denied. Admin privileges required.")
				return
			}

			ctx := utils.SetRoleContext(r.Context(), string(customer.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

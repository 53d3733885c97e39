package wire

import (
	"food-delivery/internal/adaptor"
	"food-delivery/internal/data/repository"
	"food-delivery/internal/usecase"
	"food-delivery/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireCustomer configures the self-service and admin customer routes
func wireCustomer(
	r chi.Router,
	customerHandler *adaptor.CustomerHandler,
	service *usecase.Service,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.With(middleware.Auth(service.Token, log)).Route("/api/customers", func(r chi.Router) {
		// ==================== PROFILE ====================
		r.Get("/profile", customerHandler.GetProfile)
		r.Put("/profile", customerHandler.UpdateProfile)
		r.Post("/profile/upload-photo", customerHandler.UploadPhoto)
		r.Post("/profile/change-password", customerHandler.ChangePassword)
		r.Post("/profile/deactivate", customerHandler.Deactivate)

		// ==================== ADDRESSES ====================
		r.Get("/addresses", customerHandler.GetAddresses)
		r.Post("/addresses", customerHandler.AddAddress)
		r.Put("/addresses/{addressId}", customerHandler.UpdateAddress)
		r.Delete("/addresses/{addressId}", customerHandler.DeleteAddress)
		r.Post("/addresses/{addressId}/set-default", customerHandler.SetDefaultAddress)

		// ==================== ADMIN ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.Admin(repo.Customer, log))
			r.Get("/", customerHandler.GetAll)
			r.Get("/{id}", customerHandler.GetByID)
			r.Put("/{id}", customerHandler.UpdateByID)
			r.Delete("/{id}", customerHandler.Delete)
		})
	})
}

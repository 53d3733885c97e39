// internal/wire/wire.go
package wire

import (
	"net/http"
	"time"

	"food-delivery/internal/adaptor"
	"food-delivery/internal/data/repository"
	"food-delivery/internal/usecase"
	"food-delivery/pkg/metrics"
	"food-delivery/pkg/middleware"
	"food-delivery/pkg/ratelimit"
	"food-delivery/pkg/storage"
	"food-delivery/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router and the services behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes from the shared infrastructure.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	limiter *ratelimit.Limiter,
	images *storage.ImageStore,
	notifier usecase.Notifier,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, notifier, images, logger)
	handler := adaptor.NewHandler(service, images, config, logger)

	router := setupRouter(handler, service, repo, limiter, images, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	repo *repository.Repository,
	limiter *ratelimit.Limiter,
	images *storage.ImageStore,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(metrics.InstrumentHandler)

	wireAuth(r, handler.Auth, service, limiter, logger)
	wireCustomer(r, handler.Customer, service, repo, logger)

	r.Handle(images.PublicPath()+"/*", images.Handler())
	r.Handle("/metrics", metrics.Handler())

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "Food Delivery API is running", utils.Payload{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "Welcome to Food Delivery API", utils.Payload{
			"endpoints": map[string]string{
				"auth":      "/api/auth",
				"customers": "/api/customers",
				"health":    "/api/health",
			},
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
	})

	return r
}

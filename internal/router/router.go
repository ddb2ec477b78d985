package router

import (
	"net/http"
	"time"

	"veggie-market/internal/handler"
	"veggie-market/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// RequestTimeout bounds the handling time of a single request. The HTTP
// server's write timeout must be longer for the 504 to reach the client.
const RequestTimeout = 10 * time.Second

// New creates a new HTTP router with all routes and middleware configured.
func New(
	vegetableHandler *handler.VegetableHandler,
	saleHandler *handler.SaleHandler,
	healthHandler *handler.HealthHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Apply middleware in order: RequestID -> Recovery -> RealIP -> Logging -> CORS -> Timeout
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS())
	r.Use(chimiddleware.Timeout(RequestTimeout))

	// Health check endpoint (no authentication required)
	r.Get(middleware.HealthCheckPath, healthHandler.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(apiKey, logger))

		r.Route("/vegetables", func(r chi.Router) {
			r.Get("/", vegetableHandler.FindAll)
			r.Post("/", vegetableHandler.Register)
			r.Get("/{id}", vegetableHandler.FindByID)
			r.Put("/{id}", vegetableHandler.Update)
			r.Patch("/{id}", vegetableHandler.PartialUpdate)
			r.Delete("/{id}", vegetableHandler.Delete)
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", saleHandler.FindAll)
			r.Post("/", saleHandler.Register)
			r.Get("/{id}", saleHandler.FindByID)
		})
	})

	return r
}

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Suyog-Rijal/Makeover-me-backend/internal/auth"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/cart"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/catalog"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/config"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/httputil"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/location"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/logging"
)

// Handlers groups the feature handlers mounted by NewRouter.
type Handlers struct {
	Auth           *auth.Handler
	AuthMiddleware *auth.Middleware
	Catalog        *catalog.Handler
	Cart           *cart.Handler
	Location       *location.Handler
	// Health checks dependencies; nil reports healthy without probing.
	Health func(ctx context.Context) error
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, h Handlers, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	r.Use(SecurityHeaders(cfg.Server.Production))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Compress(5))
	r.Use(LimitBody)

	r.Get("/health", handleHealth(h.Health))

	// Production builds will not have this route at all
	if cfg.Server.IsDevelopment() {
		logger.Info("swagger UI enabled", "path", "/swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Auth.Signup)
		r.Post("/login", h.Auth.Login)
		r.Post("/refresh", h.Auth.Refresh)
		r.Post("/logout", h.Auth.Logout)
		r.Post("/google", h.Auth.GoogleLogin)
		r.Get("/verify-email", h.Auth.VerifyEmail)
		r.With(h.AuthMiddleware.RequireAuth).Get("/me", h.Auth.Me)
	})

	r.Get("/categories", h.Catalog.ListCategories)
	r.Get("/categories/{slug}", h.Catalog.GetCategory)
	r.Get("/products", h.Catalog.ListProducts)
	r.Get("/products/{slug}", h.Catalog.GetProduct)
	r.Get("/flash-sales", h.Catalog.Promoted(catalog.FlashSale))
	r.Get("/product-of-the-day", h.Catalog.Promoted(catalog.ProductOfTheDay))
	r.Get("/best-sellers", h.Catalog.Promoted(catalog.BestSeller))
	r.Get("/attractive-offers", h.Catalog.Promoted(catalog.AttractiveOffer))

	r.Get("/locations", h.Location.List)

	r.Route("/cart", func(r chi.Router) {
		r.Use(h.AuthMiddleware.RequireAuth)
		r.Get("/", h.Cart.List)
		r.Post("/add", h.Cart.Add)
		r.Post("/remove", h.Cart.Remove)
	})

	return r
}

// handleHealth reports whether the API and its stores are reachable
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} map[string]string
// @Router       /health [get]
func handleHealth(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				logging.GetLoggerFromContext(r.Context()).WithError(err).Error("health check failed")
				httputil.RespondJSON(w, map[string]string{"status": "unavailable"}, http.StatusServiceUnavailable)
				return
			}
		}
		httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
	}
}

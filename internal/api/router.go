/**
 * @description
 * This file sets up the HTTP router for the account service using the `chi`
 * routing library. It defines all the API routes and applies necessary
 * middleware.
 *
 * @dependencies
 * - github.com/go-chi/chi/v5: The routing library.
 * - github.com/go-chi/cors: CORS middleware for browser clients.
 * - The service's internal packages for handlers and middleware.
 */
package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/quickbank/account-service/internal/app"
	"github.com/quickbank/account-service/internal/config"
	"github.com/quickbank/account-service/pkg/middleware"
)

// NewRouter creates and configures a new HTTP router.
func NewRouter(cfg *config.Config, service *app.LedgerService) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSAllowedOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	if cfg.RateLimitPerMinute > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)
		r.Use(limiter.Handler)
	}

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	})

	accountHandler := NewAccountHandler(service)

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", accountHandler.Signup)
		r.Post("/login", accountHandler.Login)
		r.Post("/accountDetails", accountHandler.AccountDetails)
		r.Post("/withdraw", accountHandler.Withdraw)
	})

	return r
}

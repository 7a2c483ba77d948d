package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authHandler "github.com/MrJamesThe3rd/facturaas/internal/http/auth"
	clientHandler "github.com/MrJamesThe3rd/facturaas/internal/http/client"
	invoiceHandler "github.com/MrJamesThe3rd/facturaas/internal/http/invoice"
	paymentTermHandler "github.com/MrJamesThe3rd/facturaas/internal/http/paymentterm"
	"github.com/MrJamesThe3rd/facturaas/internal/http/render"
	taxRateHandler "github.com/MrJamesThe3rd/facturaas/internal/http/taxrate"
	userHandler "github.com/MrJamesThe3rd/facturaas/internal/http/user"
)

// Handlers groups the versioned API handlers mounted by New.
type Handlers struct {
	Auth         *authHandler.Handler
	Users        *userHandler.Handler
	TaxRates     *taxRateHandler.Handler
	PaymentTerms *paymentTermHandler.Handler
	Clients      *clientHandler.Handler
	Invoices     *invoiceHandler.Handler
}

// New builds the router. Everything under /api/v1 except login runs behind
// authenticate.
func New(h Handlers, authenticate func(http.Handler) http.Handler, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	router.Get("/health", health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", h.Auth.Routes)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Users.Routes(r)
			})

			r.Route("/tax-rates", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.TaxRates.Routes(r)
			})

			r.Route("/payment-terms", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.PaymentTerms.Routes(r)
			})

			r.Route("/clients", h.Clients.Routes)

			r.Route("/invoices", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Invoices.Routes(r)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Invoices.PaymentRoutes(r)
			})
		})
	})

	return router
}

func health(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

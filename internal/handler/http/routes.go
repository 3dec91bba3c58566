package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withRateLimit)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/verify", h.verifyEmail)
		r.Post("/api/auth/reset", h.requestPasswordReset)
		r.Post("/api/auth/reset/confirm", h.confirmPasswordReset)

		// authenticated by the provider's signature, not by a bearer token
		r.Post("/api/billing/webhook", h.billingWebhook)
	})

	// routes for authenticated users
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/credits/", h.getBalance)
		r.Post("/api/credits/spend", h.spendCredit)

		r.Get("/api/billing/packs", h.listPacks)
		r.Post("/api/billing/checkout", h.createCheckout)
	})

	// admin panel
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.adminOnly)

		r.Get("/api/admin/users", h.listUsers)
		r.Get("/api/admin/users/search", h.searchUsers)
		r.Post("/api/admin/users/{id}/credits", h.grantCredits)
		r.Post("/api/admin/users/{id}/reset", h.resetCredits)
		r.Post("/api/admin/users/{id}/block", h.setBlocked)
		r.Get("/api/admin/stats", h.adminStats)
	})

	return router
}

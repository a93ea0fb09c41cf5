package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/shopfront-dev/shopfront/internal/api"
	apimiddleware "github.com/shopfront-dev/shopfront/internal/api/middleware"
)

// routes assembles the router: public catalog browsing, auth endpoints,
// authenticated cart and order routes, and the admin surface.
func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.Trace)
	r.Use(app.sessions.LoadAndSave)

	authHandler := api.NewAuthHandler(app.selector, app.sessions, app.jwt, app.logger)
	catalogHandler := api.NewCatalogHandler(app.selector, app.logger)
	cartHandler := api.NewCartHandler(app.selector, app.logger)
	orderHandler := api.NewOrderHandler(app.selector, app.logger)
	adminHandler := api.NewAdminHandler(app.selector, app.relational, app.cfg.Database.URL,
		app.cfg.Hosted, app.logger)

	authenticator := apimiddleware.NewAuthenticator(app.sessions, app.jwt)

	r.Route("/api", func(r chi.Router) {
		// Public browsing and auth.
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)

		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/categories/{id}", catalogHandler.GetCategory)
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{id}", catalogHandler.GetProduct)
		r.Get("/products/{id}/reviews", catalogHandler.ListProductReviews)
		r.Get("/testimonials", catalogHandler.ListTestimonials)

		// Authenticated routes.
		r.Group(func(r chi.Router) {
			r.Use(authenticator.RequireAuth)

			r.Get("/auth/me", authHandler.Me)

			r.Get("/cart", cartHandler.GetCart)
			r.Post("/cart", cartHandler.AddItem)
			r.Put("/cart/{id}", cartHandler.UpdateItem)
			r.Delete("/cart/{id}", cartHandler.RemoveItem)
			r.Delete("/cart", cartHandler.Clear)

			r.Post("/orders", orderHandler.Create)
			r.Get("/orders", orderHandler.List)
			r.Get("/orders/{id}", orderHandler.Get)

			r.Post("/products/{id}/reviews", catalogHandler.CreateProductReview)

			// Admin-only routes.
			r.Group(func(r chi.Router) {
				r.Use(authenticator.RequireAdmin)

				r.Post("/categories", catalogHandler.CreateCategory)
				r.Post("/products", catalogHandler.CreateProduct)
				r.Post("/testimonials", catalogHandler.CreateTestimonial)
				r.Post("/admin/migrate", adminHandler.Migrate)
			})
		})
	})

	r.Get("/health", adminHandler.Health)

	return r
}

// Package router wires all HTTP routes and middleware chains. Read
// endpoints are public; mutations live behind session auth, completed
// 2FA and CSRF, with the user endpoints additionally admin-only.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"atelier/internal/handlers"
	"atelier/internal/middleware"
	"atelier/internal/session"
)

// loginLimit throttles credential attempts per client IP.
const (
	loginLimit       = 10
	loginLimitWindow = time.Minute
)

// New creates the configured chi router.
func New(sessionStore *session.Store, secureCookies bool, public *handlers.Public, admin *handlers.Admin, auth *handlers.Auth) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	r.Get("/health", public.Health)

	r.Route("/api", func(r chi.Router) {
		// Public reads.
		r.Get("/direct-categories", public.DirectCategories)
		r.Get("/direct-projects", public.DirectProjects)
		r.Get("/direct-pages", public.DirectPages)

		r.Get("/categories", public.ListCategories)
		r.Get("/categories/tree", public.CategoryTree)
		r.Get("/categories/{id}", public.GetCategory)

		r.Get("/projects", public.ListProjects)
		r.Get("/projects/slug/{slug}", public.GetProjectBySlug)
		r.Get("/projects/{id}", public.GetProject)
		r.Get("/projects/{id}/images", public.ListProjectImages)

		r.Get("/pages", public.ListPages)
		r.Get("/pages/tree", public.PageTree)
		r.Get("/pages/slug/{slug}", public.GetPageBySlug)
		r.Get("/pages/{id}", public.GetPage)

		// Mutations: session + completed 2FA + CSRF.
		r.Group(func(r chi.Router) {
			r.Use(middleware.CSRF(secureCookies))
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Post("/categories", admin.CreateCategory)
			r.Put("/categories/{id}", admin.UpdateCategory)
			r.Delete("/categories/{id}", admin.DeleteCategory)

			r.Post("/projects", admin.CreateProject)
			r.Put("/projects/{id}", admin.UpdateProject)
			r.Delete("/projects/{id}", admin.DeleteProject)
			r.Post("/projects/{id}/images", admin.ReplaceProjectImages)
			r.Delete("/projects/{id}/images/{imageID}", admin.DeleteProjectImage)

			r.Post("/pages", admin.CreatePage)
			r.Put("/pages/{id}", admin.UpdatePage)
			r.Delete("/pages/{id}", admin.DeletePage)

			r.Post("/upload", admin.Upload)

			// User management is admin-only.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/users", admin.ListUsers)
				r.Post("/users", admin.CreateUser)
				r.Post("/users/{id}/reset-2fa", admin.ResetUserTwoFA)
				r.Delete("/users/{id}", admin.DeleteUser)
			})
		})
	})

	// Auth endpoints. Login is rate limited; the 2FA endpoints need a
	// session but not completed 2FA.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.CSRF(secureCookies))

		r.Group(func(r chi.Router) {
			limiter := middleware.NewRateLimiter(loginLimit, loginLimitWindow)
			r.Use(limiter.Middleware)
			r.Post("/login", auth.Login)
		})

		r.Post("/logout", auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", auth.Me)
			r.Post("/2fa/setup", auth.TwoFASetup)
			r.Post("/2fa/verify", auth.TwoFAVerify)
		})
	})

	return r
}

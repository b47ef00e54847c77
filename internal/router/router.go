package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/formdesk/server/internal/auth"
	"github.com/formdesk/server/internal/handler"
	mw "github.com/formdesk/server/internal/middleware"
)

func New(
	jwtSecret string,
	users auth.UserLookup,
	authH *handler.AuthHandler,
	userH *handler.UserHandler,
	formH *handler.FormHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.CORS)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/login", authH.Login)
		r.Post("/enroll", authH.Enroll)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(jwtSecret, users))

			r.Get("/user", userH.Me)
			r.Get("/user/profile", userH.Profile)
			r.Put("/user/profile", userH.UpdateProfile)

			r.Get("/user/forms", formH.List)
			r.Post("/user/forms", formH.Create)
			r.Get("/user/forms/{formID}", formH.Get)
			r.Put("/user/forms/{formID}", formH.Replace)
			r.Delete("/user/forms/{formID}", formH.Delete)
			r.Put("/user/forms/{formID}/tag", formH.UpdateTag)
			r.Get("/user/forms/{formID}/pdf", formH.Pdf)
		})
	})

	return r
}

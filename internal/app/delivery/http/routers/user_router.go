package routers

import (
	"github.com/go-chi/chi/v5"
)

func (r *Routers) setupUserRoutes(router chi.Router) {
	router.Route("/users", func(users chi.Router) {
		users.Get("/me", r.UserController.GetMe)
	})
}

package routers

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"clinicdesk-service/internal/app/config"
	"clinicdesk-service/internal/app/delivery/http/controllers"
	"clinicdesk-service/internal/app/delivery/http/middlewares"
)

type Routers struct {
	Router           *chi.Mux
	Middlewares      *middlewares.Middlewares
	InternalConfig   *config.InternalConfig
	FileController   *controllers.FileController
	UserController   *controllers.UserController
	HealthController *controllers.HealthController
}

func NewRouters(
	router *chi.Mux,
	mw *middlewares.Middlewares,
	internalConfig *config.InternalConfig,
	fileController *controllers.FileController,
	userController *controllers.UserController,
	healthController *controllers.HealthController,
) *Routers {
	return &Routers{
		Router:           router,
		Middlewares:      mw,
		InternalConfig:   internalConfig,
		FileController:   fileController,
		UserController:   userController,
		HealthController: healthController,
	}
}

func (r *Routers) SetupRoutes() {
	r.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Router.Use(httprate.LimitByIP(r.InternalConfig.App.MaxRequests, 1*time.Minute))
	r.Router.Use(r.Middlewares.RequestIDMiddleware)
	r.Router.Use(r.Middlewares.LoggingMiddleware)
	r.Router.Use(r.Middlewares.RecoverMiddleware)

	prefix := fmt.Sprintf("/%s/%s",
		strings.Trim(r.InternalConfig.App.EndpointPrefix, "/"),
		strings.Trim(r.InternalConfig.App.Version, "/"),
	)
	r.Router.Route(prefix, func(api chi.Router) {
		api.Get("/health", r.HealthController.Check)

		api.Group(func(authed chi.Router) {
			authed.Use(r.Middlewares.AuthenticationMiddleware)
			authed.Use(r.Middlewares.ResolveRoleMiddleware)

			r.setupUserRoutes(authed)
			r.setupFileRoutes(authed)
		})
	})
}

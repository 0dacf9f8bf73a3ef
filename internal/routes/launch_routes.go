package routes

import (
	"github.com/go-chi/chi/v5"

	"adlaunch/internal/handlers"
	"adlaunch/internal/middleware"
)

// RegisterLaunchRoutes mounts the launch endpoint, plus the legacy path kept
// alive for clients of the original service. Both sit behind JWT auth when a
// secret is configured.
func RegisterLaunchRoutes(r chi.Router, deps *Dependencies) {
	h := handlers.NewLaunchHandler(deps.Launcher, deps.Logger)

	mount := func(r chi.Router) {
		r.Post("/api/v1/campaigns/launch", h.LaunchCampaign)
		r.Post("/create_campaign", h.LaunchCampaign)
	}

	if secret := deps.Config.Auth.JWTSecret; secret != "" {
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(secret))
			mount(r)
		})
		return
	}
	mount(r)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maxviazov/baseball-scorecard-service/internal/service"
)

// Services bundles the use cases the HTTP layer exposes.
type Services struct {
	Seasons          service.SeasonService
	Teams            service.TeamService
	Players          service.PlayerService
	Games            service.GameService
	PlateAppearances service.PlateAppearanceService
	Stats            service.StatsService
}

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, repo Pinger, svc Services) {
	h := NewHealthHandler(repo)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewSeasonHandler(svc.Seasons).Register(api)
		NewTeamHandler(svc.Teams).Register(api)
		NewPlayerHandler(svc.Players).Register(api)
		NewGameHandler(svc.Games).Register(api)
		NewPlateAppearanceHandler(svc.PlateAppearances).Register(api)
		NewStatsHandler(svc.Stats).Register(api)
	}
}

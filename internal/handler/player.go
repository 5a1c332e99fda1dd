package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/baseball-scorecard-service/internal/service"
	"github.com/maxviazov/baseball-scorecard-service/pkg/response"
)

type PlayerHandler struct {
	svc service.PlayerService
}

func NewPlayerHandler(svc service.PlayerService) *PlayerHandler { return &PlayerHandler{svc: svc} }

func (h *PlayerHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/players")
	{
		g.POST("", h.create)
		g.GET("/:id", h.getByID)
	}
	// Nested listing: /api/v1/teams/:team_id/players
	r.Group("/teams").GET("/:team_id/players", h.listByTeam)
}

type createPlayerRequest struct {
	TeamID     int64   `json:"team_id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Handedness *string `json:"handedness"`
}

func (h *PlayerHandler) create(c *gin.Context) {
	var req createPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, malformedBody(err))
		return
	}
	player, err := h.svc.CreatePlayer(c.Request.Context(), req.TeamID, req.FirstName, req.LastName, req.Handedness)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, player)
}

func (h *PlayerHandler) getByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	player, err := h.svc.GetPlayer(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, player)
}

func (h *PlayerHandler) listByTeam(c *gin.Context) {
	teamID, ok := pathID(c, "team_id")
	if !ok {
		return
	}
	res, err := h.svc.ListPlayersByTeam(c.Request.Context(), teamID, pageQuery(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

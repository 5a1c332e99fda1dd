package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/baseball-scorecard-service/internal/service"
	"github.com/maxviazov/baseball-scorecard-service/pkg/response"
)

type TeamHandler struct {
	svc service.TeamService
}

func NewTeamHandler(svc service.TeamService) *TeamHandler { return &TeamHandler{svc: svc} }

func (h *TeamHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/teams")
	{
		g.POST("", h.create)
		// Use a stable wildcard name (team_id) so nested routes (e.g. players) can reuse it without Gin conflicts.
		g.GET("/:team_id", h.getByID)
	}
	// Nested listing: /api/v1/seasons/:season_id/teams
	r.Group("/seasons").GET("/:season_id/teams", h.listBySeason)
}

type createTeamRequest struct {
	SeasonID int64  `json:"season_id"`
	Name     string `json:"name"`
}

func (h *TeamHandler) create(c *gin.Context) {
	var req createTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, malformedBody(err))
		return
	}
	team, err := h.svc.CreateTeam(c.Request.Context(), req.SeasonID, req.Name)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, team)
}

func (h *TeamHandler) getByID(c *gin.Context) {
	id, ok := pathID(c, "team_id")
	if !ok {
		return
	}
	team, err := h.svc.GetTeam(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, team)
}

func (h *TeamHandler) listBySeason(c *gin.Context) {
	seasonID, ok := pathID(c, "season_id")
	if !ok {
		return
	}
	res, err := h.svc.ListTeamsBySeason(c.Request.Context(), seasonID, pageQuery(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/service"
	"github.com/maxviazov/baseball-scorecard-service/pkg/response"
)

type GameHandler struct {
	svc service.GameService
}

func NewGameHandler(svc service.GameService) *GameHandler { return &GameHandler{svc: svc} }

func (h *GameHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/games")
	{
		g.POST("", h.create)
		g.GET("", h.list)
		g.GET("/:id", h.getByID)
		g.GET("/:id/lineup", h.getLineup)
		g.PUT("/:id/lineup", h.setLineup)
	}
}

type createGameRequest struct {
	SeasonID   int64  `json:"season_id"`
	HomeTeamID int64  `json:"home_team_id"`
	AwayTeamID int64  `json:"away_team_id"`
	StartTime  string `json:"start_time"` // RFC3339, optional
	Status     string `json:"status"`
}

func (h *GameHandler) create(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, malformedBody(err))
		return
	}
	var start time.Time
	if s := strings.TrimSpace(req.StartTime); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "start_time", Message: "must be RFC3339"}}))
			return
		}
		start = parsed
	}
	game, err := h.svc.CreateGame(c.Request.Context(), req.SeasonID, req.HomeTeamID, req.AwayTeamID, start, req.Status)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, game)
}

func (h *GameHandler) getByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	game, err := h.svc.GetGame(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, game)
}

func (h *GameHandler) list(c *gin.Context) {
	res, err := h.svc.ListGames(c.Request.Context(), pageQuery(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

type lineupRequest struct {
	Entries []model.LineupEntry `json:"entries"`
}

type lineupResponse struct {
	GameID  int64               `json:"game_id"`
	Entries []model.LineupEntry `json:"entries"`
}

func (h *GameHandler) setLineup(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req lineupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, malformedBody(err))
		return
	}
	entries, err := h.svc.SetLineup(c.Request.Context(), id, req.Entries)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, lineupResponse{GameID: id, Entries: entries})
}

func (h *GameHandler) getLineup(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	entries, err := h.svc.GetLineup(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, lineupResponse{GameID: id, Entries: entries})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/baseball-scorecard-service/internal/service"
	"github.com/maxviazov/baseball-scorecard-service/pkg/response"
)

type SeasonHandler struct {
	svc service.SeasonService
}

func NewSeasonHandler(svc service.SeasonService) *SeasonHandler { return &SeasonHandler{svc: svc} }

func (h *SeasonHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/seasons")
	{
		g.POST("", h.create)
		g.GET("", h.list)
		// season_id is shared with the nested team and stats routes.
		g.GET("/:season_id", h.getByID)
	}
}

type createSeasonRequest struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

func (h *SeasonHandler) create(c *gin.Context) {
	var req createSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, malformedBody(err))
		return
	}
	season, err := h.svc.CreateSeason(c.Request.Context(), req.Name, req.Year)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, season)
}

func (h *SeasonHandler) getByID(c *gin.Context) {
	id, ok := pathID(c, "season_id")
	if !ok {
		return
	}
	season, err := h.svc.GetSeason(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, season)
}

func (h *SeasonHandler) list(c *gin.Context) {
	res, err := h.svc.ListSeasons(c.Request.Context(), pageQuery(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

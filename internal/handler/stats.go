package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/baseball-scorecard-service/internal/service"
	"github.com/maxviazov/baseball-scorecard-service/internal/stats"
	"github.com/maxviazov/baseball-scorecard-service/pkg/response"
	"github.com/rs/zerolog"
)

type StatsHandler struct {
	svc service.StatsService
}

func NewStatsHandler(svc service.StatsService) *StatsHandler { return &StatsHandler{svc: svc} }

func (h *StatsHandler) Register(r *gin.RouterGroup) {
	games := r.Group("/games")
	{
		games.GET("/:id/boxscore", h.boxScore)
		games.GET("/:id/pitching", h.gamePitching)
	}
	// Older clients read the box score from under /pa.
	r.Group("/pa").GET("/boxscore/:game_id", h.boxScoreCompat)

	seasons := r.Group("/seasons")
	{
		seasons.GET("/:season_id/stats", h.seasonBatting)
		seasons.GET("/:season_id/leaderboard", h.battingLeaderboard)
		seasons.GET("/:season_id/pitching", h.seasonPitching)
		seasons.GET("/:season_id/pitching/leaderboard", h.pitchingLeaderboard)
	}
}

func (h *StatsHandler) boxScore(c *gin.Context)       { h.writeBoxScore(c, "id") }
func (h *StatsHandler) boxScoreCompat(c *gin.Context) { h.writeBoxScore(c, "game_id") }

func (h *StatsHandler) writeBoxScore(c *gin.Context, param string) {
	gameID, ok := pathID(c, param)
	if !ok {
		return
	}
	box, err := h.svc.BoxScore(c.Request.Context(), gameID)
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Debug().Err(err).Int64("game_id", gameID).Msg("box score failed")
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, box)
}

func (h *StatsHandler) gamePitching(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.svc.GamePitching(c.Request.Context(), gameID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, out)
}

type seasonBattingResponse struct {
	SeasonID int64               `json:"season_id"`
	Batting  []stats.PlayerStats `json:"batting"`
}

type seasonPitchingResponse struct {
	SeasonID int64                `json:"season_id"`
	Pitching []stats.PitcherStats `json:"pitching"`
}

type battingLeaderboardResponse struct {
	SeasonID int64               `json:"season_id"`
	Metric   string              `json:"metric"`
	Leaders  []stats.PlayerStats `json:"leaders"`
}

type pitchingLeaderboardResponse struct {
	SeasonID int64                `json:"season_id"`
	Leaders  []stats.PitcherStats `json:"leaders"`
}

func (h *StatsHandler) seasonBatting(c *gin.Context) {
	seasonID, ok := pathID(c, "season_id")
	if !ok {
		return
	}
	rows, err := h.svc.SeasonBatting(c.Request.Context(), seasonID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, seasonBattingResponse{SeasonID: seasonID, Batting: rows})
}

func (h *StatsHandler) seasonPitching(c *gin.Context) {
	seasonID, ok := pathID(c, "season_id")
	if !ok {
		return
	}
	rows, err := h.svc.SeasonPitching(c.Request.Context(), seasonID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, seasonPitchingResponse{SeasonID: seasonID, Pitching: rows})
}

func (h *StatsHandler) battingLeaderboard(c *gin.Context) {
	seasonID, ok := pathID(c, "season_id")
	if !ok {
		return
	}
	var ferrs []service.FieldError
	q := service.LeaderboardQuery{Metric: strings.TrimSpace(c.Query("metric"))}
	q.MinAtBats, ferrs = intQuery(c, "min_ab", ferrs)
	q.Limit, ferrs = intQuery(c, "limit", ferrs)
	if err := service.NewInvalidInputError(ferrs); err != nil {
		response.WriteError(c, err)
		return
	}
	rows, err := h.svc.BattingLeaderboard(c.Request.Context(), seasonID, q)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	metric := strings.ToLower(q.Metric)
	if metric == "" {
		metric = string(stats.DefaultMetric)
	}
	response.WriteData(c, http.StatusOK, battingLeaderboardResponse{SeasonID: seasonID, Metric: metric, Leaders: rows})
}

func (h *StatsHandler) pitchingLeaderboard(c *gin.Context) {
	seasonID, ok := pathID(c, "season_id")
	if !ok {
		return
	}
	var ferrs []service.FieldError
	var q service.LeaderboardQuery
	q.MinInnings, ferrs = floatQuery(c, "min_ip", ferrs)
	q.Limit, ferrs = intQuery(c, "limit", ferrs)
	if err := service.NewInvalidInputError(ferrs); err != nil {
		response.WriteError(c, err)
		return
	}
	rows, err := h.svc.PitchingLeaderboard(c.Request.Context(), seasonID, q)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, pitchingLeaderboardResponse{SeasonID: seasonID, Leaders: rows})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/service"
	"github.com/maxviazov/baseball-scorecard-service/internal/stats"
	"github.com/maxviazov/baseball-scorecard-service/pkg/response"
)

type PlateAppearanceHandler struct {
	svc service.PlateAppearanceService
}

func NewPlateAppearanceHandler(svc service.PlateAppearanceService) *PlateAppearanceHandler {
	return &PlateAppearanceHandler{svc: svc}
}

func (h *PlateAppearanceHandler) Register(r *gin.RouterGroup) {
	r.POST("/pa", h.create)
}

type createPlateAppearanceRequest struct {
	GameID        int64   `json:"game_id"`
	Inning        int     `json:"inning"`
	Half          string  `json:"half"`
	BatterID      int64   `json:"batter_id"`
	PitcherID     *int64  `json:"pitcher_id"`
	Result        string  `json:"result"`
	RBIs          int     `json:"rbis"`
	Notes         *string `json:"notes"`
	ClientEventID *string `json:"client_event_id"`
}

// create answers 201 for a new record and 200 when the client event id was
// already recorded for the game.
func (h *PlateAppearanceHandler) create(c *gin.Context) {
	var req createPlateAppearanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, malformedBody(err))
		return
	}
	pa, created, err := h.svc.RecordPlateAppearance(c.Request.Context(), model.PlateAppearance{
		GameID:        req.GameID,
		Inning:        req.Inning,
		Half:          stats.Half(req.Half),
		BatterID:      req.BatterID,
		PitcherID:     req.PitcherID,
		Result:        stats.Result(req.Result),
		RBIs:          req.RBIs,
		Notes:         req.Notes,
		ClientEventID: req.ClientEventID,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	response.WriteData(c, status, pa)
}

package service

import (
	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/stats"
)

// toEngineRecords maps joined storage rows onto the stats engine's input,
// preserving order so first-encountered names stay stable.
func toEngineRecords(rows []model.PlateAppearanceRow) []stats.PlateAppearance {
	out := make([]stats.PlateAppearance, len(rows))
	for i, r := range rows {
		out[i] = stats.PlateAppearance{
			GameID:           r.GameID,
			Inning:           r.Inning,
			Half:             r.Half,
			BatterID:         r.BatterID,
			BatterFirstName:  r.BatterFirstName,
			BatterLastName:   r.BatterLastName,
			PitcherID:        r.PitcherID,
			PitcherFirstName: r.PitcherFirstName,
			PitcherLastName:  r.PitcherLastName,
			Result:           r.Result,
			RBIs:             r.RBIs,
			CreatedAt:        r.CreatedAt,
		}
	}
	return out
}

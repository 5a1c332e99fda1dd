// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import (
	"time"

	"github.com/maxviazov/baseball-scorecard-service/internal/stats"
)

// Game statuses.
const (
	GameStatusLive  = "live"
	GameStatusFinal = "final"
)

// Season groups teams and games for one year of play.
type Season struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	CreatedAt time.Time `json:"created_at"`
}

// Team belongs to exactly one season.
type Team struct {
	ID       int64  `json:"id"`
	SeasonID int64  `json:"season_id"`
	Name     string `json:"name"`
}

// Player represents an athlete on a team's roster.
type Player struct {
	ID         int64   `json:"id"`
	TeamID     int64   `json:"team_id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Handedness *string `json:"handedness,omitempty"` // R, L or S
}

// Game is a match between two teams of the same season.
type Game struct {
	ID         int64     `json:"id"`
	SeasonID   int64     `json:"season_id"`
	HomeTeamID int64     `json:"home_team_id"`
	AwayTeamID int64     `json:"away_team_id"`
	StartTime  time.Time `json:"start_time"`
	Status     string    `json:"status"` // live, final
}

// LineupEntry is one slot of a team's batting order for a game.
type LineupEntry struct {
	GameID            int64   `json:"game_id"`
	TeamID            int64   `json:"team_id"`
	BattingOrder      int     `json:"batting_order"`
	PlayerID          int64   `json:"player_id"`
	DefensivePosition *string `json:"defensive_position,omitempty"`
}

// PlateAppearance is one recorded batter-versus-pitcher event.
// ClientEventID makes ingestion idempotent per game.
type PlateAppearance struct {
	ID            int64        `json:"id"`
	GameID        int64        `json:"game_id"`
	Inning        int          `json:"inning"`
	Half          stats.Half   `json:"half"`
	BatterID      int64        `json:"batter_id"`
	PitcherID     *int64       `json:"pitcher_id,omitempty"`
	Result        stats.Result `json:"result"`
	RBIs          int          `json:"rbis"`
	Notes         *string      `json:"notes,omitempty"`
	ClientEventID *string      `json:"client_event_id,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// PlateAppearanceRow is a plate appearance joined with the names the stats
// engine needs. It is a read-only query result and is not persisted directly.
type PlateAppearanceRow struct {
	PlateAppearance
	SeasonID         int64
	BatterFirstName  string
	BatterLastName   string
	PitcherFirstName string
	PitcherLastName  string
}

// BoxScore is the batting side of one game.
type BoxScore struct {
	GameID  int64               `json:"game_id"`
	Batting []stats.PlayerStats `json:"batting"`
}

// GamePitching is the pitching side of one game. Runs allowed and ERA are
// approximated from RBIs, see stats.PitcherStats.
type GamePitching struct {
	GameID   int64                `json:"game_id"`
	Pitching []stats.PitcherStats `json:"pitching"`
}

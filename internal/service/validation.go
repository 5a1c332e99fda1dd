package service

import (
	"strings"

	"github.com/maxviazov/baseball-scorecard-service/internal/model"
)

const (
	maxSeasonName     = 100
	maxTeamName       = 120
	maxPlayerName     = 80
	maxPositionLen    = 3
	maxNotesLen       = 250
	maxClientEventLen = 64
	minSeasonYear     = 1800
	maxSeasonYear     = 2200
	maxBattingOrder   = 9
)

func runeLen(s string) int { return len([]rune(s)) }

// checkName trims *s in place and reports an empty or overlong value.
func checkName(field string, s *string, limit int, ferrs []FieldError) []FieldError {
	*s = strings.TrimSpace(*s)
	switch {
	case *s == "":
		return append(ferrs, FieldError{Field: field, Message: "must not be empty"})
	case runeLen(*s) > limit:
		return append(ferrs, FieldError{Field: field, Message: "too long"})
	}
	return ferrs
}

func checkID(field string, id int64, ferrs []FieldError) []FieldError {
	if id <= 0 {
		return append(ferrs, FieldError{Field: field, Message: "must be > 0"})
	}
	return ferrs
}

// normalizeHandedness upper-cases the value; an empty string means unknown.
func normalizeHandedness(h *string) (*string, bool) {
	if h == nil {
		return nil, true
	}
	v := strings.ToUpper(strings.TrimSpace(*h))
	switch v {
	case "":
		return nil, true
	case "R", "L", "S":
		return &v, true
	default:
		return nil, false
	}
}

func normalizeGameStatus(status string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(status))
	switch s {
	case "":
		return model.GameStatusLive, true
	case model.GameStatusLive, model.GameStatusFinal:
		return s, true
	default:
		return "", false
	}
}

// trimOptional trims *s and collapses blank values to nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

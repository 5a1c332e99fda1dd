// Package stats folds plate-appearance snapshots into batting and pitching
// lines and ranks them. Everything here is a pure function over its input:
// no I/O, no shared state, safe to call from any number of goroutines.
package stats

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidOutcome is returned when a plate appearance carries a result code
// outside the closed set below. It is never coerced into a default outcome.
var ErrInvalidOutcome = errors.New("invalid outcome code")

// Result is the outcome code of a single plate appearance.
// Values match the codes stored in the plate_appearances table.
type Result string

const (
	Single       Result = "1B"
	Double       Result = "2B"
	Triple       Result = "3B"
	HomeRun      Result = "HR"
	Walk         Result = "BB"
	HitByPitch   Result = "HBP"
	Strikeout    Result = "K"
	SacrificeFly Result = "SF"
	Out          Result = "OUT"
)

// Half identifies the top or bottom of an inning.
type Half string

const (
	Top    Half = "top"
	Bottom Half = "bottom"
)

// Valid reports whether h is one of the two halves.
func (h Half) Valid() bool { return h == Top || h == Bottom }

// Contribution is what one plate appearance adds to the counters.
type Contribution struct {
	IsAtBat      bool
	IsHit        bool
	TotalBases   int
	IsWalk       bool
	IsHitByPitch bool
	IsSacFly     bool
	IsStrikeout  bool
	IsHomeRun    bool
	// CountsAsOut is only consumed by the pitching fold.
	CountsAsOut bool
}

var contributions = map[Result]Contribution{
	Single:       {IsAtBat: true, IsHit: true, TotalBases: 1},
	Double:       {IsAtBat: true, IsHit: true, TotalBases: 2},
	Triple:       {IsAtBat: true, IsHit: true, TotalBases: 3},
	HomeRun:      {IsAtBat: true, IsHit: true, TotalBases: 4, IsHomeRun: true},
	Walk:         {IsWalk: true},
	HitByPitch:   {IsHitByPitch: true},
	Strikeout:    {IsAtBat: true, IsStrikeout: true, CountsAsOut: true},
	SacrificeFly: {IsSacFly: true, CountsAsOut: true},
	Out:          {IsAtBat: true, CountsAsOut: true},
}

// Results lists every valid outcome code in a stable order.
func Results() []Result {
	return []Result{Single, Double, Triple, HomeRun, Walk, HitByPitch, Strikeout, SacrificeFly, Out}
}

// Valid reports whether r is one of the nine outcome codes.
func (r Result) Valid() bool {
	_, ok := contributions[r]
	return ok
}

// Classify maps a result code to its statistical contribution.
func Classify(r Result) (Contribution, error) {
	c, ok := contributions[r]
	if !ok {
		return Contribution{}, fmt.Errorf("%w: %q", ErrInvalidOutcome, string(r))
	}
	return c, nil
}

// ParseResult converts a wire code (case-insensitive, surrounding spaces ignored)
// into a Result.
func ParseResult(s string) (Result, error) {
	r := Result(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidOutcome, s)
	}
	return r, nil
}

// PlateAppearance is the engine's read-only view of one recorded plate
// appearance, with batter and pitcher identities already resolved.
type PlateAppearance struct {
	GameID           int64
	Inning           int
	Half             Half
	BatterID         int64
	BatterFirstName  string
	BatterLastName   string
	PitcherID        *int64 // nil when there is no pitcher of record
	PitcherFirstName string
	PitcherLastName  string
	Result           Result
	RBIs             int
	CreatedAt        time.Time
}

package stats

import (
	"math"
	"strconv"
)

const (
	rateDecimals  = 3
	eraDecimals   = 2
	outsPerInning = 3
)

// round rounds x to the given number of decimal places, half-to-even on the
// exact binary value. strconv does the exact decimal expansion for us, so
// 0.0625 becomes 0.062 and 2.675 (stored as 2.67499...) becomes 2.67.
func round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	out, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return out
}

// SafeDivide returns n/d rounded to three decimals, or 0 when d is zero.
func SafeDivide(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return round(float64(n)/float64(d), rateDecimals)
}

// InningsPitched renders an out count in baseball notation: whole innings,
// a dot, then the leftover outs (0, 1 or 2). "5.2" means five innings and
// two outs, not 5.2 innings.
func InningsPitched(outs int) string {
	if outs < 0 {
		outs = 0
	}
	return strconv.Itoa(outs/outsPerInning) + "." + strconv.Itoa(outs%outsPerInning)
}

// EarnedRunAverage is runs allowed per nine innings, rounded to two decimals.
// It is 0 when no outs were recorded.
func EarnedRunAverage(runsAllowed, outs int) float64 {
	if outs <= 0 {
		return 0
	}
	return round(9.0*float64(runsAllowed)/(float64(outs)/3.0), eraDecimals)
}

// MinOutsForInnings converts an innings threshold to an out count. At least
// one out is always required, so a zero threshold still filters out pitchers
// who never recorded an out. Thresholds beyond the int range, and NaN, saturate
// to math.MaxInt so that nobody qualifies.
func MinOutsForInnings(innings float64) int {
	if math.IsNaN(innings) {
		return math.MaxInt
	}
	outs := math.RoundToEven(innings * outsPerInning)
	if outs >= float64(math.MaxInt) {
		return math.MaxInt
	}
	if outs < 1 {
		return 1
	}
	return int(outs)
}

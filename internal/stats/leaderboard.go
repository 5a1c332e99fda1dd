package stats

import (
	"sort"
	"strings"
)

// Metric names a batting rate stat a leaderboard can be ranked by.
type Metric string

const (
	MetricAVG Metric = "avg"
	MetricOBP Metric = "obp"
	MetricSLG Metric = "slg"
	MetricOPS Metric = "ops"
)

// DefaultMetric is used whenever the requested metric is not recognised.
const DefaultMetric = MetricOPS

// IsValidMetric reports whether s names one of the four rankable metrics.
func IsValidMetric(s string) bool {
	switch Metric(strings.ToLower(strings.TrimSpace(s))) {
	case MetricAVG, MetricOBP, MetricSLG, MetricOPS:
		return true
	default:
		return false
	}
}

// ParseMetric normalises s and falls back to DefaultMetric for anything unknown.
func ParseMetric(s string) Metric {
	if !IsValidMetric(s) {
		return DefaultMetric
	}
	return Metric(strings.ToLower(strings.TrimSpace(s)))
}

// battingKey returns the descending sort key for a metric.
// avg/obp/slg break ties on (tb, h, ab); ops breaks ties on (slg, obp, ab).
func battingKey(m Metric, s PlayerStats) [4]float64 {
	switch m {
	case MetricAVG:
		return [4]float64{s.AVG, float64(s.TB), float64(s.H), float64(s.AB)}
	case MetricOBP:
		return [4]float64{s.OBP, float64(s.TB), float64(s.H), float64(s.AB)}
	case MetricSLG:
		return [4]float64{s.SLG, float64(s.TB), float64(s.H), float64(s.AB)}
	default:
		return [4]float64{s.OPS, s.SLG, s.OBP, float64(s.AB)}
	}
}

// RankBatting keeps batters with at least minAtBats at-bats, orders them best
// first by metric and returns at most limit of them. Unknown metrics rank by
// ops. Players with identical keys keep their input order. The input slice is
// left untouched.
func RankBatting(all []PlayerStats, metric string, minAtBats, limit int) []PlayerStats {
	if limit <= 0 {
		return []PlayerStats{}
	}
	m := ParseMetric(metric)

	qualified := make([]PlayerStats, 0, len(all))
	for _, s := range all {
		if s.AB >= minAtBats {
			qualified = append(qualified, s)
		}
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		ki, kj := battingKey(m, qualified[i]), battingKey(m, qualified[j])
		for n := range ki {
			if ki[n] != kj[n] {
				return ki[n] > kj[n]
			}
		}
		return false
	})

	if len(qualified) > limit {
		qualified = qualified[:limit]
	}
	return qualified
}

// RankPitching keeps pitchers with at least minInningsPitched innings (never
// fewer than one out), orders them by ascending ERA and returns at most limit.
// Ties prefer more outs, then fewer runs allowed, then more strikeouts.
func RankPitching(all []PitcherStats, minInningsPitched float64, limit int) []PitcherStats {
	if limit <= 0 {
		return []PitcherStats{}
	}
	minOuts := MinOutsForInnings(minInningsPitched)

	qualified := make([]PitcherStats, 0, len(all))
	for _, s := range all {
		if s.Outs >= minOuts {
			qualified = append(qualified, s)
		}
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		a, b := qualified[i], qualified[j]
		if a.ERA != b.ERA {
			return a.ERA < b.ERA
		}
		if a.Outs != b.Outs {
			return a.Outs > b.Outs
		}
		if a.RA != b.RA {
			return a.RA < b.RA
		}
		return a.SO > b.SO
	})

	if len(qualified) > limit {
		qualified = qualified[:limit]
	}
	return qualified
}

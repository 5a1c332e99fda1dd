package stats

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func facing(pitcher int64, r Result, rbis int) PlateAppearance {
	rec := pa(1, "Any", "Batter", r, rbis)
	id := pitcher
	rec.PitcherID = &id
	rec.PitcherFirstName = "Clayton"
	rec.PitcherLastName = "Kershaw"
	return rec
}

// One run over three outs: 9 * 1 / (3/3) = 9.00. The same formula gives 9.0
// for two runs over six outs.
func TestComputePitching_OneInningFixture(t *testing.T) {
	records := []PlateAppearance{
		facing(22, Strikeout, 0),
		facing(22, Out, 0),
		facing(22, SacrificeFly, 1),
		facing(22, HomeRun, 0),
	}
	lines, err := ComputePitching(records)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, PitcherStats{
		PitcherID: 22, FirstName: "Clayton", LastName: "Kershaw",
		BF: 4, AB: 3, H: 1, BB: 0, HBP: 0, SO: 1, HR: 1, SF: 1,
		Outs: 3, IP: "1.0", RA: 1, ERA: 9.0,
	}, lines[0])
}

func TestComputePitching_SkipsRecordsWithoutPitcher(t *testing.T) {
	records := []PlateAppearance{
		pa(1, "No", "Pitcher", Single, 0),
		facing(5, Walk, 0),
		pa(2, "No", "Pitcher", Out, 0),
		facing(5, HitByPitch, 0),
	}
	lines, err := ComputePitching(records)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].BF)
	assert.Equal(t, 1, lines[0].BB)
	assert.Equal(t, 1, lines[0].HBP)
	assert.Equal(t, 0, lines[0].Outs)
	assert.Equal(t, "0.0", lines[0].IP)
	assert.Equal(t, 0.0, lines[0].ERA)
}

func TestComputePitching_TwoInningsTwoRuns(t *testing.T) {
	records := []PlateAppearance{
		facing(9, Out, 0), facing(9, Out, 0), facing(9, Strikeout, 0),
		facing(9, Double, 2),
		facing(9, Out, 0), facing(9, Out, 0), facing(9, Out, 0),
	}
	lines, err := ComputePitching(records)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 6, lines[0].Outs)
	assert.Equal(t, "2.0", lines[0].IP)
	assert.Equal(t, 9.0, lines[0].ERA)
}

func TestComputePitching_PartialInningNotation(t *testing.T) {
	records := []PlateAppearance{
		facing(3, Out, 0), facing(3, Out, 0), facing(3, Out, 0),
		facing(3, Strikeout, 0), facing(3, SacrificeFly, 1),
	}
	lines, err := ComputePitching(records)
	require.NoError(t, err)
	assert.Equal(t, 5, lines[0].Outs)
	assert.Equal(t, "1.2", lines[0].IP)
}

func TestComputePitching_InvalidOutcomeAborts(t *testing.T) {
	_, err := ComputePitching([]PlateAppearance{facing(3, Result("WP"), 0)})
	assert.ErrorIs(t, err, ErrInvalidOutcome)
}

func TestComputePitching_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 50; iter++ {
		records := randomRecords(rng, 80)

		faced := map[int64]int{}
		rbis := map[int64]int{}
		for _, r := range records {
			if r.PitcherID != nil {
				faced[*r.PitcherID]++
				rbis[*r.PitcherID] += r.RBIs
			}
		}

		lines, err := ComputePitching(records)
		require.NoError(t, err)
		require.Len(t, lines, len(faced))
		for _, l := range lines {
			assert.Equal(t, faced[l.PitcherID], l.BF)
			assert.Equal(t, rbis[l.PitcherID], l.RA)
			assert.Equal(t, InningsPitched(l.Outs), l.IP)
			assert.Equal(t, EarnedRunAverage(l.RA, l.Outs), l.ERA)
			assert.Equal(t, l.BF, l.AB+l.BB+l.HBP+l.SF)
		}
	}
}

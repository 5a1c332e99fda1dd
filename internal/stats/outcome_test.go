package stats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Table(t *testing.T) {
	tests := []struct {
		result Result
		want   Contribution
	}{
		{Single, Contribution{IsAtBat: true, IsHit: true, TotalBases: 1}},
		{Double, Contribution{IsAtBat: true, IsHit: true, TotalBases: 2}},
		{Triple, Contribution{IsAtBat: true, IsHit: true, TotalBases: 3}},
		{HomeRun, Contribution{IsAtBat: true, IsHit: true, TotalBases: 4, IsHomeRun: true}},
		{Walk, Contribution{IsWalk: true}},
		{HitByPitch, Contribution{IsHitByPitch: true}},
		{Strikeout, Contribution{IsAtBat: true, IsStrikeout: true, CountsAsOut: true}},
		{SacrificeFly, Contribution{IsSacFly: true, CountsAsOut: true}},
		{Out, Contribution{IsAtBat: true, CountsAsOut: true}},
	}

	for _, tt := range tests {
		t.Run(string(tt.result), func(t *testing.T) {
			got, err := Classify(tt.result)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_CoversEveryResult(t *testing.T) {
	for _, r := range Results() {
		_, err := Classify(r)
		assert.NoError(t, err, "result %s", r)
	}
	assert.Len(t, Results(), 9)
}

func TestClassify_UnknownCodeIsFatal(t *testing.T) {
	for _, code := range []Result{"", "E", "FC", "single", "DP"} {
		_, err := Classify(code)
		require.Error(t, err, "code %q", code)
		assert.True(t, errors.Is(err, ErrInvalidOutcome))
	}
}

func TestParseResult(t *testing.T) {
	tests := []struct {
		in      string
		want    Result
		wantErr bool
	}{
		{"1B", Single, false},
		{" hr ", HomeRun, false},
		{"hbp", HitByPitch, false},
		{"k", Strikeout, false},
		{"out", Out, false},
		{"ROE", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseResult(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOutcome)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHalf_Valid(t *testing.T) {
	assert.True(t, Top.Valid())
	assert.True(t, Bottom.Valid())
	assert.False(t, Half("middle").Valid())
}

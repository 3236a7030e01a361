package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelTiersStrictlyIncreasing(t *testing.T) {
	require.NotEmpty(t, LevelTiers)
	for i := 1; i < len(LevelTiers); i++ {
		assert.Greater(t, LevelTiers[i].ExperienceRequired, LevelTiers[i-1].ExperienceRequired,
			"tier %d threshold must exceed tier %d", LevelTiers[i].Level, LevelTiers[i-1].Level)
		assert.Equal(t, LevelTiers[i-1].Level+1, LevelTiers[i].Level)
	}
}

func TestLevelForExperience(t *testing.T) {
	tests := []struct {
		name     string
		exp      int64
		expected int
	}{
		{name: "zero experience is level 1", exp: 0, expected: 1},
		{name: "just below level 2", exp: 99, expected: 1},
		{name: "exactly at level 2 threshold", exp: 100, expected: 2},
		{name: "between tiers picks lower", exp: 999, expected: 4},
		{name: "exactly at level 5", exp: 1000, expected: 5},
		{name: "beyond top tier stays at top", exp: 1_000_000, expected: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LevelForExperience(tt.exp))
		})
	}
}

func TestLevelForExperienceMonotonic(t *testing.T) {
	prev := 0
	for exp := int64(0); exp <= 13000; exp += 50 {
		level := LevelForExperience(exp)
		assert.GreaterOrEqual(t, level, prev, "level regressed at exp=%d", exp)
		prev = level
	}
}

func TestTierForExperienceIsHighestMetTier(t *testing.T) {
	for _, tier := range LevelTiers {
		got := TierForExperience(tier.ExperienceRequired)
		assert.Equal(t, tier.Level, got.Level)
		if tier.ExperienceRequired > 0 {
			below := TierForExperience(tier.ExperienceRequired - 1)
			assert.Equal(t, tier.Level-1, below.Level)
		}
	}
}

package services

import (
	"testing"
	"time"

	"edu-gamification-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func participant(userID string, score int64, joined time.Time) models.CompetitionParticipant {
	return models.CompetitionParticipant{
		CompetitionID:  "comp-1",
		ExternalUserID: userID,
		Score:          score,
		JoinedAt:       joined,
	}
}

func TestAssignRanks(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	// Input arrives already ordered by score DESC, joined_at ASC —
	// the ordering the recompute query produces.
	participants := []models.CompetitionParticipant{
		participant("user-b", 90, base),
		participant("user-c", 60, base.Add(time.Hour)),
		participant("user-a", 30, base.Add(2*time.Hour)),
	}

	entries := AssignRanks(participants)
	require.Len(t, entries, 3)

	assert.Equal(t, "user-b", entries[0].ExternalUserID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, int64(90), entries[0].Score)

	assert.Equal(t, "user-c", entries[1].ExternalUserID)
	assert.Equal(t, 2, entries[1].Rank)

	assert.Equal(t, "user-a", entries[2].ExternalUserID)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestAssignRanksStableTies(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	// Equal scores: the earlier joiner comes first in query order and must
	// keep the better rank.
	participants := []models.CompetitionParticipant{
		participant("early", 50, base),
		participant("late", 50, base.Add(time.Minute)),
	}

	entries := AssignRanks(participants)
	require.Len(t, entries, 2)
	assert.Equal(t, "early", entries[0].ExternalUserID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "late", entries[1].ExternalUserID)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestAssignRanksEmpty(t *testing.T) {
	assert.Empty(t, AssignRanks(nil))
}

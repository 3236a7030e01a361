package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateLessonPoints(t *testing.T) {
	tests := []struct {
		name      string
		score     int
		timeSpent int
		expected  int64
	}{
		{name: "perfect fast lesson gets both bonuses", score: 100, timeSpent: 500, expected: 80},
		{name: "half score slow lesson gets base only", score: 50, timeSpent: 700, expected: 30},
		{name: "mastery bonus without speed bonus", score: 90, timeSpent: 600, expected: 66},
		{name: "speed bonus without mastery bonus", score: 89, timeSpent: 599, expected: 55},
		{name: "zero score still gets flat base", score: 0, timeSpent: 1000, expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateLessonPoints(tt.score, tt.timeSpent))
		})
	}
}

func TestCalculateAssessmentPoints(t *testing.T) {
	assert.Equal(t, int64(90), CalculateAssessmentPoints(100)) // 50 + 15 + 25
	assert.Equal(t, int64(52), CalculateAssessmentPoints(75))  // floor(37.5) + 15
	assert.Equal(t, int64(15), CalculateAssessmentPoints(0))
}

func TestCalculateStreakPoints(t *testing.T) {
	tests := []struct {
		streak   int
		expected int64
	}{
		{streak: 0, expected: 0},
		{streak: 10, expected: 20},
		{streak: 50, expected: 100},
		{streak: 60, expected: 100}, // cap enforced
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, CalculateStreakPoints(tt.streak), "streak %d", tt.streak)
	}
}

func TestCalculateCompetitionWinPoints(t *testing.T) {
	assert.Equal(t, int64(200), CalculateCompetitionWinPoints(1))
	assert.Equal(t, int64(150), CalculateCompetitionWinPoints(2))
	assert.Equal(t, int64(100), CalculateCompetitionWinPoints(3))
	assert.Equal(t, int64(50), CalculateCompetitionWinPoints(7))
}

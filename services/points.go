package services

import (
	"edu-gamification-service/models"
)

// Point formulas. All are deterministic, pure functions of their inputs; the
// per-activity Record* helpers below compute the value and hand it to the
// award engine.

// CalculateLessonPoints: score-scaled base plus speed and mastery bonuses.
// score is 0-100, timeSpent in seconds.
func CalculateLessonPoints(score, timeSpent int) int64 {
	points := int64(float64(score) / 100 * 40)
	points += 10
	if timeSpent < 600 {
		points += 10
	}
	if score >= 90 {
		points += 20
	}
	return points
}

// CalculateAssessmentPoints: heavier base than lessons, perfect-score bonus.
func CalculateAssessmentPoints(score int) int64 {
	points := int64(float64(score) / 100 * 50)
	points += 15
	if score == 100 {
		points += 25
	}
	return points
}

// CalculateStreakPoints: 2 points per streak day, capped at 100.
func CalculateStreakPoints(currentStreak int) int64 {
	points := int64(currentStreak) * 2
	if points > 100 {
		points = 100
	}
	return points
}

// CalculateCompetitionWinPoints: podium finishes pay out by rank.
func CalculateCompetitionWinPoints(rank int) int64 {
	switch rank {
	case 1:
		return 200
	case 2:
		return 150
	case 3:
		return 100
	default:
		return 50
	}
}

// Flat values for the remaining activity kinds.
const (
	CulturalActivityPoints  int64 = 30
	HelpOthersPoints        int64 = 20
	SocialInteractionPoints int64 = 10
	FirstTimeBonusPoints    int64 = 50
)

// ── Per-activity recording helpers ──────────────────────

func (s *GamificationService) RecordLessonCompletion(externalUserID, lessonID, language string, score, timeSpent int) error {
	return s.RecordEvent(externalUserID, models.EventLessonCompleted, CalculateLessonPoints(score, timeSpent), map[string]interface{}{
		"lesson_id":  lessonID,
		"language":   language,
		"score":      score,
		"time_spent": timeSpent,
	})
}

func (s *GamificationService) RecordAssessmentPassed(externalUserID, assessmentID string, score int) error {
	return s.RecordEvent(externalUserID, models.EventAssessmentPassed, CalculateAssessmentPoints(score), map[string]interface{}{
		"assessment_id": assessmentID,
		"score":         score,
	})
}

func (s *GamificationService) RecordCulturalActivity(externalUserID, activityID string) error {
	return s.RecordEvent(externalUserID, models.EventCulturalActivity, CulturalActivityPoints, map[string]interface{}{
		"activity_id": activityID,
	})
}

func (s *GamificationService) RecordHelpGiven(externalUserID, helpedUserID string) error {
	return s.RecordEvent(externalUserID, models.EventHelpOthers, HelpOthersPoints, map[string]interface{}{
		"helped_user_id": helpedUserID,
	})
}

func (s *GamificationService) RecordSocialInteraction(externalUserID, kind string) error {
	return s.RecordEvent(externalUserID, models.EventSocialInteraction, SocialInteractionPoints, map[string]interface{}{
		"interaction": kind,
	})
}

func (s *GamificationService) RecordFirstTimeBonus(externalUserID, feature string) error {
	return s.RecordEvent(externalUserID, models.EventFirstTimeBonus, FirstTimeBonusPoints, map[string]interface{}{
		"feature": feature,
	})
}

func (s *GamificationService) RecordStreakMaintained(externalUserID string, currentStreak int) error {
	return s.RecordEvent(externalUserID, models.EventStreakMaintained, CalculateStreakPoints(currentStreak), map[string]interface{}{
		"streak": currentStreak,
	})
}

func (s *GamificationService) RecordCompetitionWin(externalUserID, competitionID string, rank int) error {
	return s.RecordEvent(externalUserID, models.EventCompetitionWon, CalculateCompetitionWinPoints(rank), map[string]interface{}{
		"competition_id": competitionID,
		"rank":           rank,
	})
}

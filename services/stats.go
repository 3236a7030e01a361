package services

import (
	"fmt"
	"time"

	"edu-gamification-service/models"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

// StatsTTL is how long a computed stats snapshot stays valid. There is no
// proactive invalidation: plain readers may see data up to this much stale.
const StatsTTL = 3600 * time.Second

// Stat names produced by the aggregator.
const (
	StatLessonsCompleted   = "lessons_completed"
	StatAssessmentsPassed  = "assessments_passed"
	StatCulturalActivities = "cultural_activities"
	StatHelpOthers         = "help_others"
	StatPerfectScores      = "perfect_scores"
	StatStudyStreak        = "study_streak"
	StatLanguagesLearned   = "languages_learned"
	StatStudentsHelped     = "students_helped"
	StatSocialInteractions = "social_interactions"
)

// StatsService derives per-user statistics from the event log, with a
// read-through TTL cache in front.
type StatsService struct {
	DB    *gorm.DB
	Cache *cache.Cache
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		DB:    db,
		Cache: cache.New(StatsTTL, 10*time.Minute),
	}
}

func statsCacheKey(externalUserID string) string {
	return fmt.Sprintf("user_stats:%s", externalUserID)
}

// GetUserStats returns the cached snapshot when present, otherwise recomputes
// from the event log and caches the result.
func (s *StatsService) GetUserStats(externalUserID string) (map[string]float64, error) {
	if cached, ok := s.Cache.Get(statsCacheKey(externalUserID)); ok {
		return cached.(map[string]float64), nil
	}
	return s.RefreshUserStats(externalUserID)
}

// RefreshUserStats recomputes stats from the record store, bypassing the
// cache, and stores the fresh snapshot. The award engine uses this so badge
// checks always see the event that triggered them.
func (s *StatsService) RefreshUserStats(externalUserID string) (map[string]float64, error) {
	stats := map[string]float64{}

	typeCounts := []struct {
		Type  models.EventType
		Stat  string
	}{
		{models.EventLessonCompleted, StatLessonsCompleted},
		{models.EventAssessmentPassed, StatAssessmentsPassed},
		{models.EventCulturalActivity, StatCulturalActivities},
		{models.EventHelpOthers, StatHelpOthers},
		{models.EventSocialInteraction, StatSocialInteractions},
	}
	for _, tc := range typeCounts {
		var count int64
		if err := s.DB.Model(&models.GamificationEvent{}).
			Where("external_user_id = ? AND type = ?", externalUserID, tc.Type).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("count %s events: %w", tc.Type, err)
		}
		stats[tc.Stat] = float64(count)
	}

	// Assessments submitted with a perfect score
	var perfect int64
	if err := s.DB.Model(&models.GamificationEvent{}).
		Where("external_user_id = ? AND type = ? AND metadata->>'score' = '100'",
			externalUserID, models.EventAssessmentPassed).
		Count(&perfect).Error; err != nil {
		return nil, fmt.Errorf("count perfect scores: %w", err)
	}
	stats[StatPerfectScores] = float64(perfect)

	// Distinct languages across completed lessons
	var languages int64
	if err := s.DB.Model(&models.GamificationEvent{}).
		Where("external_user_id = ? AND type = ? AND metadata->>'language' IS NOT NULL",
			externalUserID, models.EventLessonCompleted).
		Distinct("metadata->>'language'").
		Count(&languages).Error; err != nil {
		return nil, fmt.Errorf("count languages: %w", err)
	}
	stats[StatLanguagesLearned] = float64(languages)

	// Distinct students helped, from event metadata
	var helped int64
	if err := s.DB.Model(&models.GamificationEvent{}).
		Where("external_user_id = ? AND type = ? AND metadata->>'helped_user_id' IS NOT NULL",
			externalUserID, models.EventHelpOthers).
		Distinct("metadata->>'helped_user_id'").
		Count(&helped).Error; err != nil {
		return nil, fmt.Errorf("count students helped: %w", err)
	}
	stats[StatStudentsHelped] = float64(helped)

	streak, err := s.studyStreak(externalUserID)
	if err != nil {
		return nil, err
	}
	stats[StatStudyStreak] = float64(streak)

	s.Cache.Set(statsCacheKey(externalUserID), stats, StatsTTL)
	return stats, nil
}

func (s *StatsService) studyStreak(externalUserID string) (int, error) {
	var events []models.GamificationEvent
	if err := s.DB.
		Where("external_user_id = ? AND type = ?", externalUserID, models.EventLessonCompleted).
		Order("created_at DESC").
		Limit(30).
		Find(&events).Error; err != nil {
		return 0, fmt.Errorf("fetch lesson events: %w", err)
	}

	times := make([]time.Time, len(events))
	for i, ev := range events {
		times[i] = ev.CreatedAt
	}
	return ComputeStudyStreak(time.Now().UTC(), times), nil
}

// ComputeStudyStreak walks lesson timestamps newest-first and counts the
// unbroken run of consecutive days ending today. A user whose last lesson was
// yesterday gets 0: the streak must include today. That is the platform's
// historical behavior and is pinned by tests.
func ComputeStudyStreak(now time.Time, lessonTimes []time.Time) int {
	today := now.UTC().Truncate(24 * time.Hour)
	streak := 0
	for _, t := range lessonTimes {
		day := t.UTC().Truncate(24 * time.Hour)
		gap := int(today.Sub(day).Hours() / 24)
		if gap != streak {
			break
		}
		streak++
	}
	return streak
}

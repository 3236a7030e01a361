package models

import (
	"time"

	"gorm.io/datatypes"
)

// EventType enumerates the gamification event kinds the platform records.
type EventType string

const (
	EventLessonCompleted   EventType = "LESSON_COMPLETED"
	EventAssessmentPassed  EventType = "ASSESSMENT_PASSED"
	EventCulturalActivity  EventType = "CULTURAL_ACTIVITY"
	EventHelpOthers        EventType = "HELP_OTHERS"
	EventSocialInteraction EventType = "SOCIAL_INTERACTION"
	EventFirstTimeBonus    EventType = "FIRST_TIME_BONUS"
	EventStreakMaintained  EventType = "STREAK_MAINTAINED"
	EventCompetitionWon    EventType = "COMPETITION_WON"
)

// GamificationEvent is an append-only log row. Rows are never mutated; the
// retention sweep removes entries older than 30 days.
type GamificationEvent struct {
	ID             string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string         `gorm:"index;not null" json:"external_user_id"`
	Type           EventType      `gorm:"type:varchar(32);not null;index" json:"type"`
	Points         int64          `json:"points" gorm:"default:0"`
	Metadata       datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"` // e.g., {"language": "qu", "score": 95}
	CreatedAt      time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

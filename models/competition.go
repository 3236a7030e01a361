package models

import (
	"time"

	"gorm.io/datatypes"
)

type CompetitionStatus string

const (
	CompetitionUpcoming  CompetitionStatus = "UPCOMING"
	CompetitionActive    CompetitionStatus = "ACTIVE"
	CompetitionFinished  CompetitionStatus = "FINISHED"
	CompetitionCancelled CompetitionStatus = "CANCELLED"
)

// Competition represents a time-boxed leaderboard contest.
// Status moves UPCOMING → ACTIVE (time-gated) → FINISHED (explicit, one-way);
// CANCELLED is terminal from UPCOMING or ACTIVE.
type Competition struct {
	ID              string            `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name            string            `gorm:"not null" json:"name"`
	Slug            string            `gorm:"uniqueIndex" json:"slug"`
	Description     string            `gorm:"type:text" json:"description"`
	Type            string            `gorm:"type:varchar(32);default:'weekly'" json:"type"` // weekly, monthly, special
	Status          CompetitionStatus `gorm:"type:varchar(16);default:'UPCOMING';index" json:"status"`
	StartDate       time.Time         `gorm:"not null" json:"start_date"`
	EndDate         time.Time         `gorm:"not null" json:"end_date"`
	MaxParticipants int               `json:"max_participants" gorm:"default:0"` // 0 = unlimited
	Rewards         datatypes.JSON    `gorm:"type:jsonb" json:"rewards,omitempty"` // rank → reward id, e.g. {"1":"gems_200","participation":"gems_10"}
	Criteria        string            `gorm:"type:text" json:"criteria"`

	Timestamps

	// Calculated fields (not stored in DB)
	ParticipantsCount int64 `json:"participants_count,omitempty" gorm:"-"`
	AvailableSlots    int64 `json:"available_slots,omitempty" gorm:"-"`
}

// CompetitionParticipant is created on join and removed only by explicit leave.
type CompetitionParticipant struct {
	ID             string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CompetitionID  string    `gorm:"not null;uniqueIndex:idx_competition_user" json:"competition_id"`
	ExternalUserID string    `gorm:"not null;uniqueIndex:idx_competition_user" json:"external_user_id"`
	Score          int64     `json:"score" gorm:"default:0"`
	JoinedAt       time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

// LeaderboardEntry is a derived view, fully recomputed whenever any
// participant's score changes. Rank runs 1..N by descending score; it is
// never authoritative on its own.
type LeaderboardEntry struct {
	ID             string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CompetitionID  string    `gorm:"not null;uniqueIndex:idx_leaderboard_user" json:"competition_id"`
	ExternalUserID string    `gorm:"not null;uniqueIndex:idx_leaderboard_user" json:"external_user_id"`
	Score          int64     `json:"score"`
	Rank           int       `json:"rank" gorm:"index"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

package models

import (
	"time"
)

// RewardSource indicates what produced a reward grant.
type RewardSource string

const (
	RewardSourceLevelUp       RewardSource = "level_up"
	RewardSourceCompetition   RewardSource = "competition"
	RewardSourceParticipation RewardSource = "participation"
)

// UserReward records every reward identifier granted to a user, regardless of
// whether the reward type itself is wired up yet. Actual fulfillment of most
// reward types is an extension point (see services.GrantReward).
type UserReward struct {
	ID             string       `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string       `gorm:"index;not null" json:"external_user_id"`
	RewardID       string       `gorm:"not null" json:"reward_id"` // e.g., "gems_200", "avatar_frame_gold"
	Source         RewardSource `gorm:"type:varchar(16);not null" json:"source"`
	SourceRef      string       `json:"source_ref,omitempty"` // competition id or level number
	GrantedAt      time.Time    `gorm:"autoCreateTime" json:"granted_at"`
}

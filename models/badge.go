package models

import (
	"time"
)

// Comparator is the operator applied between a user stat and a criteria threshold.
type Comparator string

const (
	ComparatorEquals      Comparator = "equals"
	ComparatorGreaterThan Comparator = "greater_than"
	ComparatorLessThan    Comparator = "less_than"
	ComparatorContains    Comparator = "contains"
	ComparatorStartsWith  Comparator = "starts_with"
)

// Badge: static catalog row seeded at startup (find-by-name before insert).
type Badge struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"` // e.g., "Primera Lección"
	Description string `json:"description"`
	IconURL     string `gorm:"type:text" json:"icon_url"`
	Category    string `gorm:"type:varchar(32);default:'general'" json:"category"`

	// Criteria triple: stat name, comparator, threshold (coerced at evaluation)
	StatName   string     `gorm:"not null" json:"stat_name"` // e.g., "lessons_completed"
	Comparator Comparator `gorm:"type:varchar(16);not null" json:"comparator"`
	Threshold  string     `gorm:"not null" json:"threshold"`

	Points   int64     `json:"points" gorm:"default:0"`
	IsActive bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// UserBadge: awarded instance. The composite unique index is the real
// at-most-once guard; the application-level existence check alone is not
// sufficient under concurrent events.
type UserBadge struct {
	ID             string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string    `gorm:"not null;uniqueIndex:idx_user_badge" json:"external_user_id"`
	BadgeID        string    `gorm:"not null;uniqueIndex:idx_user_badge" json:"badge_id"`
	GrantedAt      time.Time `gorm:"autoCreateTime" json:"granted_at"`
	Progress       int       `gorm:"default:100" json:"progress"`

	Badge Badge `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
}

// Achievement is structurally identical to Badge; it is kept as a separate
// table because the platform surfaces the two catalogs independently.
type Achievement struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
	IconURL     string `gorm:"type:text" json:"icon_url"`
	Category    string `gorm:"type:varchar(32);default:'general'" json:"category"`

	StatName   string     `gorm:"not null" json:"stat_name"`
	Comparator Comparator `gorm:"type:varchar(16);not null" json:"comparator"`
	Threshold  string     `gorm:"not null" json:"threshold"`

	Points    int64     `json:"points" gorm:"default:0"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

type UserAchievement struct {
	ID             string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string    `gorm:"not null;uniqueIndex:idx_user_achievement" json:"external_user_id"`
	AchievementID  string    `gorm:"not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	GrantedAt      time.Time `gorm:"autoCreateTime" json:"granted_at"`
	Progress       int       `gorm:"default:100" json:"progress"`

	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

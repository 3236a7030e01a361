package models

import (
	"time"

	"gorm.io/gorm"
)

// UserLevel tracks gamified progression for each user (denormalized for performance).
// Points and Experience only ever grow; Level/Title are derived from Experience
// against the level tier catalog.
type UserLevel struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"` // links to profile service

	Points     int64  `json:"points" gorm:"default:0"`
	Experience int64  `json:"experience" gorm:"default:0"`
	Level      int    `json:"level" gorm:"default:1"`
	Title      string `json:"title" gorm:"default:'Estudiante'"`

	LastLevelUpAt *time.Time `json:"last_level_up_at,omitempty"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

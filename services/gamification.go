package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"edu-gamification-service/metrics"
	"edu-gamification-service/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GamificationService is the award engine: it records events, keeps the user
// level record current and evaluates the badge/achievement/level-up rules.
//
// The RecordEvent pipeline is deliberately not wrapped in one transaction:
// each step is an independent write, and a failure partway through leaves the
// earlier effects in place (at-least-once, not atomic). The composite unique
// indexes on the grant tables are what keep re-runs from double-granting.
type GamificationService struct {
	DB       *gorm.DB
	Stats    *StatsService
	Notifier Notifier
}

func NewGamificationService(db *gorm.DB, stats *StatsService, notifier Notifier) *GamificationService {
	return &GamificationService{DB: db, Stats: stats, Notifier: notifier}
}

// EnsureUserLevel returns the user's level row, creating it at level 1 if absent.
func (s *GamificationService) EnsureUserLevel(externalUserID string) (*models.UserLevel, error) {
	var lvl models.UserLevel
	err := s.DB.Where("external_user_id = ?", externalUserID).First(&lvl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		lvl = models.UserLevel{
			ID:             uuid.NewString(),
			ExternalUserID: externalUserID,
			Level:          1,
			Title:          "Estudiante",
		}
		if err := s.DB.Create(&lvl).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost a create race; the row exists now.
				err = s.DB.Where("external_user_id = ?", externalUserID).First(&lvl).Error
				if err != nil {
					return nil, err
				}
				return &lvl, nil
			}
			return nil, err
		}
		return &lvl, nil
	}
	if err != nil {
		return nil, err
	}
	return &lvl, nil
}

// RecordEvent logs a gamification event, credits its points, then re-runs the
// rule evaluation for the user: badges, achievements, level-up.
func (s *GamificationService) RecordEvent(externalUserID string, eventType models.EventType, points int64, metadata map[string]interface{}) error {
	if externalUserID == "" {
		return fmt.Errorf("%w: external_user_id is required", ErrValidation)
	}
	if eventType == "" {
		return fmt.Errorf("%w: event type is required", ErrValidation)
	}

	var meta datatypes.JSON
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("%w: metadata not serializable: %v", ErrValidation, err)
		}
		meta = datatypes.JSON(raw)
	}

	event := models.GamificationEvent{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		Type:           eventType,
		Points:         points,
		Metadata:       meta,
	}
	if err := s.DB.Create(&event).Error; err != nil {
		return fmt.Errorf("persist event: %w", err)
	}
	metrics.EventsRecorded.WithLabelValues(string(eventType)).Inc()

	if _, err := s.EnsureUserLevel(externalUserID); err != nil {
		return fmt.Errorf("ensure level record: %w", err)
	}
	if err := s.DB.Model(&models.UserLevel{}).
		Where("external_user_id = ?", externalUserID).
		Updates(map[string]interface{}{
			"points":     gorm.Expr("points + ?", points),
			"experience": gorm.Expr("experience + ?", points),
		}).Error; err != nil {
		return fmt.Errorf("add points: %w", err)
	}

	// Bypass the cache so the rule checks see this event.
	stats, err := s.Stats.RefreshUserStats(externalUserID)
	if err != nil {
		return fmt.Errorf("refresh stats: %w", err)
	}

	if err := s.checkBadges(externalUserID, stats); err != nil {
		return err
	}
	if err := s.checkAchievements(externalUserID, stats); err != nil {
		return err
	}
	return s.checkLevelUp(externalUserID)
}

// EligibleBadges filters active badges down to those the user does not yet
// hold and whose criteria the current stats satisfy. Called twice with no
// state change, the held set makes the second pass a no-op.
func EligibleBadges(badges []models.Badge, held map[string]bool, stats map[string]float64) []models.Badge {
	var out []models.Badge
	for _, b := range badges {
		if !b.IsActive || held[b.ID] {
			continue
		}
		if EvaluateCriteria(stats[b.StatName], b.Comparator, b.Threshold) {
			out = append(out, b)
		}
	}
	return out
}

func (s *GamificationService) checkBadges(externalUserID string, stats map[string]float64) error {
	var badges []models.Badge
	if err := s.DB.Where("is_active = ?", true).Find(&badges).Error; err != nil {
		return fmt.Errorf("load badges: %w", err)
	}

	var grants []models.UserBadge
	if err := s.DB.Where("external_user_id = ?", externalUserID).Find(&grants).Error; err != nil {
		return fmt.Errorf("load user badges: %w", err)
	}
	held := make(map[string]bool, len(grants))
	for _, g := range grants {
		held[g.BadgeID] = true
	}

	for _, badge := range EligibleBadges(badges, held, stats) {
		grant := models.UserBadge{
			ExternalUserID: externalUserID,
			BadgeID:        badge.ID,
			Progress:       100,
		}
		if err := s.DB.Create(&grant).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue // concurrent grant won; already held
			}
			return fmt.Errorf("grant badge %q: %w", badge.Name, err)
		}
		metrics.BadgesGranted.Inc()
		log.Printf("[awards] badge granted: %s -> %s", badge.Name, externalUserID)
		s.Notifier.Notify(externalUserID, NotifyBadgeGranted, map[string]interface{}{
			"badge_id": badge.ID,
			"name":     badge.Name,
			"points":   badge.Points,
		})
	}
	return nil
}

func (s *GamificationService) checkAchievements(externalUserID string, stats map[string]float64) error {
	var achievements []models.Achievement
	if err := s.DB.Where("is_active = ?", true).Find(&achievements).Error; err != nil {
		return fmt.Errorf("load achievements: %w", err)
	}

	var grants []models.UserAchievement
	if err := s.DB.Where("external_user_id = ?", externalUserID).Find(&grants).Error; err != nil {
		return fmt.Errorf("load user achievements: %w", err)
	}
	held := make(map[string]bool, len(grants))
	for _, g := range grants {
		held[g.AchievementID] = true
	}

	for _, ach := range achievements {
		if !ach.IsActive || held[ach.ID] {
			continue
		}
		if !EvaluateCriteria(stats[ach.StatName], ach.Comparator, ach.Threshold) {
			continue
		}
		grant := models.UserAchievement{
			ExternalUserID: externalUserID,
			AchievementID:  ach.ID,
			Progress:       100,
		}
		if err := s.DB.Create(&grant).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return fmt.Errorf("grant achievement %q: %w", ach.Name, err)
		}
		metrics.AchievementsGranted.Inc()
		log.Printf("[awards] achievement granted: %s -> %s", ach.Name, externalUserID)
		s.Notifier.Notify(externalUserID, NotifyAchievementGranted, map[string]interface{}{
			"achievement_id": ach.ID,
			"name":           ach.Name,
			"points":         ach.Points,
		})
	}
	return nil
}

func (s *GamificationService) checkLevelUp(externalUserID string) error {
	var lvl models.UserLevel
	if err := s.DB.Where("external_user_id = ?", externalUserID).First(&lvl).Error; err != nil {
		return fmt.Errorf("load level record: %w", err)
	}

	target := TierForExperience(lvl.Experience)
	if target.Level <= lvl.Level {
		return nil
	}

	now := time.Now()
	lvl.Level = target.Level
	lvl.Title = target.Title
	lvl.LastLevelUpAt = &now
	if err := s.DB.Save(&lvl).Error; err != nil {
		return fmt.Errorf("save level-up: %w", err)
	}
	metrics.LevelUps.Inc()
	log.Printf("[awards] level up: %s -> L%d (%s)", externalUserID, target.Level, target.Title)

	for _, rewardID := range target.Rewards {
		if err := s.GrantReward(externalUserID, rewardID, models.RewardSourceLevelUp, strconv.Itoa(target.Level)); err != nil {
			return err
		}
	}

	s.Notifier.Notify(externalUserID, NotifyLevelUp, map[string]interface{}{
		"level":   target.Level,
		"title":   target.Title,
		"rewards": target.Rewards,
	})
	return nil
}

// GrantReward records the grant and dispatches on the reward type. Most
// branches are placeholders: gems, frames and freezes are fulfilled by the
// profile service once it consumes the grant records.
func (s *GamificationService) GrantReward(externalUserID, rewardID string, source models.RewardSource, sourceRef string) error {
	record := models.UserReward{
		ExternalUserID: externalUserID,
		RewardID:       rewardID,
		Source:         source,
		SourceRef:      sourceRef,
	}
	if err := s.DB.Create(&record).Error; err != nil {
		return fmt.Errorf("record reward %q: %w", rewardID, err)
	}

	switch {
	case strings.HasPrefix(rewardID, "gems_"):
		log.Printf("[rewards] gems grant recorded for %s: %s", externalUserID, rewardID)
	case strings.HasPrefix(rewardID, "avatar_frame_"):
		log.Printf("[rewards] avatar frame grant recorded for %s: %s", externalUserID, rewardID)
	case rewardID == "streak_freeze":
		log.Printf("[rewards] streak freeze grant recorded for %s", externalUserID)
	default:
		log.Printf("[rewards] unhandled reward type %q recorded for %s", rewardID, externalUserID)
	}
	return nil
}

// UserGamificationData is the aggregate read returned to the client UI.
type UserGamificationData struct {
	Level        models.UserLevel         `json:"level"`
	Badges       []models.UserBadge       `json:"badges"`
	Achievements []models.UserAchievement `json:"achievements"`
	Rewards      []models.UserReward      `json:"rewards"`
	Stats        map[string]float64       `json:"stats"`
}

// GetUserGamificationData assembles the user's full gamification state.
// Stats come through the cache here; staleness up to the TTL is acceptable
// for display reads.
func (s *GamificationService) GetUserGamificationData(externalUserID string) (*UserGamificationData, error) {
	lvl, err := s.EnsureUserLevel(externalUserID)
	if err != nil {
		return nil, err
	}

	var badges []models.UserBadge
	if err := s.DB.Preload("Badge").
		Where("external_user_id = ?", externalUserID).
		Order("granted_at DESC").
		Find(&badges).Error; err != nil {
		return nil, fmt.Errorf("load badges: %w", err)
	}

	var achievements []models.UserAchievement
	if err := s.DB.Preload("Achievement").
		Where("external_user_id = ?", externalUserID).
		Order("granted_at DESC").
		Find(&achievements).Error; err != nil {
		return nil, fmt.Errorf("load achievements: %w", err)
	}

	var rewards []models.UserReward
	if err := s.DB.Where("external_user_id = ?", externalUserID).
		Order("granted_at DESC").
		Find(&rewards).Error; err != nil {
		return nil, fmt.Errorf("load rewards: %w", err)
	}

	stats, err := s.Stats.GetUserStats(externalUserID)
	if err != nil {
		return nil, err
	}

	return &UserGamificationData{
		Level:        *lvl,
		Badges:       badges,
		Achievements: achievements,
		Rewards:      rewards,
		Stats:        stats,
	}, nil
}

package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"edu-gamification-service/metrics"
	"edu-gamification-service/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompetitionService manages the competition lifecycle: create, join, score
// updates with full leaderboard recompute, and finish-and-reward.
type CompetitionService struct {
	DB           *gorm.DB
	Gamification *GamificationService
	Notifier     Notifier
}

func NewCompetitionService(db *gorm.DB, gamification *GamificationService, notifier Notifier) *CompetitionService {
	return &CompetitionService{DB: db, Gamification: gamification, Notifier: notifier}
}

type CreateCompetitionInput struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Type            string            `json:"type"`
	StartDate       time.Time         `json:"start_date"`
	EndDate         time.Time         `json:"end_date"`
	MaxParticipants int               `json:"max_participants"`
	Rewards         map[string]string `json:"rewards"` // rank ("1","2","3") or "participation" → reward id
	Criteria        string            `json:"criteria"`
}

func (s *CompetitionService) CreateCompetition(in CreateCompetitionInput) (*models.Competition, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.EndDate.IsZero() || in.StartDate.IsZero() || !in.EndDate.After(in.StartDate) {
		return nil, fmt.Errorf("%w: end_date must be after start_date", ErrValidation)
	}

	status := models.CompetitionUpcoming
	if !in.StartDate.After(time.Now()) {
		status = models.CompetitionActive
	}

	var rewards datatypes.JSON
	if in.Rewards != nil {
		raw, err := json.Marshal(in.Rewards)
		if err != nil {
			return nil, fmt.Errorf("%w: rewards not serializable: %v", ErrValidation, err)
		}
		rewards = datatypes.JSON(raw)
	}

	comp := models.Competition{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Slug:            slug.Make(in.Name),
		Description:     in.Description,
		Type:            in.Type,
		Status:          status,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		MaxParticipants: in.MaxParticipants,
		Rewards:         rewards,
		Criteria:        in.Criteria,
	}
	if comp.Type == "" {
		comp.Type = "weekly"
	}
	if err := s.DB.Create(&comp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: a competition named %q already exists", ErrPreconditionFailed, in.Name)
		}
		return nil, fmt.Errorf("create competition: %w", err)
	}
	log.Printf("[competitions] created %q (%s) status=%s", comp.Name, comp.ID, comp.Status)
	return &comp, nil
}

func (s *CompetitionService) GetCompetition(competitionID string) (*models.Competition, error) {
	var comp models.Competition
	if err := s.DB.First(&comp, "id = ?", competitionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: competition %s", ErrNotFound, competitionID)
		}
		return nil, err
	}
	return &comp, nil
}

// GetActiveCompetitions lists ACTIVE competitions with participant counts.
func (s *CompetitionService) GetActiveCompetitions() ([]models.Competition, error) {
	var comps []models.Competition
	if err := s.DB.Where("status = ?", models.CompetitionActive).
		Order("end_date ASC").
		Find(&comps).Error; err != nil {
		return nil, err
	}
	for i := range comps {
		var count int64
		s.DB.Model(&models.CompetitionParticipant{}).
			Where("competition_id = ?", comps[i].ID).
			Count(&count)
		comps[i].ParticipantsCount = count
		if comps[i].MaxParticipants > 0 {
			comps[i].AvailableSlots = int64(comps[i].MaxParticipants) - count
		}
	}
	return comps, nil
}

// JoinCompetition adds the user to an ACTIVE competition with free capacity.
func (s *CompetitionService) JoinCompetition(externalUserID, competitionID string) (*models.CompetitionParticipant, error) {
	comp, err := s.GetCompetition(competitionID)
	if err != nil {
		return nil, err
	}
	if comp.Status != models.CompetitionActive {
		return nil, fmt.Errorf("%w: competition is %s, not ACTIVE", ErrPreconditionFailed, comp.Status)
	}

	if comp.MaxParticipants > 0 {
		var count int64
		if err := s.DB.Model(&models.CompetitionParticipant{}).
			Where("competition_id = ?", competitionID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if int(count) >= comp.MaxParticipants {
			return nil, fmt.Errorf("%w: competition is full", ErrPreconditionFailed)
		}
	}

	participant := models.CompetitionParticipant{
		CompetitionID:  competitionID,
		ExternalUserID: externalUserID,
	}
	if err := s.DB.Create(&participant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: already joined", ErrPreconditionFailed)
		}
		return nil, fmt.Errorf("join competition: %w", err)
	}
	return &participant, nil
}

// LeaveCompetition removes the participant and their leaderboard entry, then
// recomputes the remaining ranks.
func (s *CompetitionService) LeaveCompetition(externalUserID, competitionID string) error {
	res := s.DB.Where("competition_id = ? AND external_user_id = ?", competitionID, externalUserID).
		Delete(&models.CompetitionParticipant{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: not a participant", ErrNotFound)
	}
	if err := s.DB.Where("competition_id = ? AND external_user_id = ?", competitionID, externalUserID).
		Delete(&models.LeaderboardEntry{}).Error; err != nil {
		return err
	}
	return s.recomputeLeaderboard(competitionID)
}

// UpdateScore overwrites the participant's score and recomputes the full
// leaderboard for the competition.
func (s *CompetitionService) UpdateScore(externalUserID, competitionID string, score int64) error {
	comp, err := s.GetCompetition(competitionID)
	if err != nil {
		return err
	}
	if comp.Status != models.CompetitionActive {
		return fmt.Errorf("%w: competition is %s, not ACTIVE", ErrPreconditionFailed, comp.Status)
	}

	res := s.DB.Model(&models.CompetitionParticipant{}).
		Where("competition_id = ? AND external_user_id = ?", competitionID, externalUserID).
		Update("score", score)
	if res.Error != nil {
		return fmt.Errorf("update score: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: not a participant", ErrNotFound)
	}

	return s.recomputeLeaderboard(competitionID)
}

// AssignRanks turns participants, already ordered by descending score (ties
// by earlier join), into leaderboard entries ranked 1..N.
func AssignRanks(participants []models.CompetitionParticipant) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, len(participants))
	for i, p := range participants {
		entries[i] = models.LeaderboardEntry{
			CompetitionID:  p.CompetitionID,
			ExternalUserID: p.ExternalUserID,
			Score:          p.Score,
			Rank:           i + 1,
		}
	}
	return entries
}

func (s *CompetitionService) recomputeLeaderboard(competitionID string) error {
	var participants []models.CompetitionParticipant
	if err := s.DB.Where("competition_id = ?", competitionID).
		Order("score DESC, joined_at ASC").
		Find(&participants).Error; err != nil {
		return fmt.Errorf("load participants: %w", err)
	}

	for _, entry := range AssignRanks(participants) {
		if err := s.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "competition_id"}, {Name: "external_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "rank", "updated_at"}),
		}).Create(&entry).Error; err != nil {
			return fmt.Errorf("upsert leaderboard entry: %w", err)
		}
	}
	return nil
}

// GetLeaderboard returns the top entries for a competition, best rank first.
func (s *CompetitionService) GetLeaderboard(competitionID string, limit int) ([]models.LeaderboardEntry, error) {
	if _, err := s.GetCompetition(competitionID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var entries []models.LeaderboardEntry
	if err := s.DB.Where("competition_id = ?", competitionID).
		Order("rank ASC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FinishCompetition pays out podium and participation rewards and closes the
// competition. A competition already FINISHED or CANCELLED is rejected, so
// rewards cannot be granted twice.
func (s *CompetitionService) FinishCompetition(competitionID string) error {
	comp, err := s.GetCompetition(competitionID)
	if err != nil {
		return err
	}
	if comp.Status == models.CompetitionFinished || comp.Status == models.CompetitionCancelled {
		return fmt.Errorf("%w: competition already %s", ErrPreconditionFailed, comp.Status)
	}

	rewards := map[string]string{}
	if len(comp.Rewards) > 0 {
		if err := json.Unmarshal(comp.Rewards, &rewards); err != nil {
			return fmt.Errorf("parse reward table: %w", err)
		}
	}

	top, err := s.GetLeaderboard(competitionID, 10)
	if err != nil {
		return err
	}

	for _, entry := range top {
		if entry.Rank > 3 {
			continue
		}
		if rewardID, ok := rewards[strconv.Itoa(entry.Rank)]; ok {
			if err := s.Gamification.GrantReward(entry.ExternalUserID, rewardID, models.RewardSourceCompetition, comp.ID); err != nil {
				return err
			}
		}
		if err := s.Gamification.RecordCompetitionWin(entry.ExternalUserID, comp.ID, entry.Rank); err != nil {
			return err
		}
	}

	var participants []models.CompetitionParticipant
	if err := s.DB.Where("competition_id = ?", competitionID).Find(&participants).Error; err != nil {
		return fmt.Errorf("load participants: %w", err)
	}
	participationReward, hasParticipation := rewards["participation"]
	for _, p := range participants {
		if hasParticipation {
			if err := s.Gamification.GrantReward(p.ExternalUserID, participationReward, models.RewardSourceParticipation, comp.ID); err != nil {
				return err
			}
		}
		s.Notifier.Notify(p.ExternalUserID, NotifyCompetitionResult, map[string]interface{}{
			"competition_id": comp.ID,
			"name":           comp.Name,
		})
	}

	if err := s.DB.Model(comp).Update("status", models.CompetitionFinished).Error; err != nil {
		return fmt.Errorf("mark finished: %w", err)
	}
	metrics.CompetitionsFinished.Inc()
	log.Printf("[competitions] finished %q (%s), %d participants", comp.Name, comp.ID, len(participants))
	return nil
}

// CancelCompetition marks an UPCOMING or ACTIVE competition CANCELLED.
func (s *CompetitionService) CancelCompetition(competitionID string) error {
	comp, err := s.GetCompetition(competitionID)
	if err != nil {
		return err
	}
	if comp.Status != models.CompetitionUpcoming && comp.Status != models.CompetitionActive {
		return fmt.Errorf("%w: competition already %s", ErrPreconditionFailed, comp.Status)
	}
	return s.DB.Model(comp).Update("status", models.CompetitionCancelled).Error
}

// ActivateDueCompetitions flips UPCOMING competitions whose start date has
// passed to ACTIVE. Called from the scheduler.
func (s *CompetitionService) ActivateDueCompetitions() (int, error) {
	res := s.DB.Model(&models.Competition{}).
		Where("status = ? AND start_date <= ?", models.CompetitionUpcoming, time.Now()).
		Update("status", models.CompetitionActive)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

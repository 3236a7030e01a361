package services

import (
	"log"
	"time"

	"edu-gamification-service/models"

	"github.com/go-co-op/gocron/v2"
)

// EventRetentionDays: gamification events older than this are swept.
const EventRetentionDays = 30

// Scheduler runs the periodic maintenance jobs: competition activation and the
// event retention sweep.
type Scheduler struct {
	competitions *CompetitionService
	sched        gocron.Scheduler
}

func NewScheduler(competitions *CompetitionService) *Scheduler {
	return &Scheduler{competitions: competitions}
}

func (s *Scheduler) Start() {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("[scheduler] failed to start: %v", err)
		return
	}
	s.sched = sched
	sched.Start()

	// Every minute: activate UPCOMING competitions whose start date passed
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			n, err := s.competitions.ActivateDueCompetitions()
			if err != nil {
				log.Printf("[scheduler] competition activation failed: %v", err)
				return
			}
			if n > 0 {
				log.Printf("[scheduler] activated %d competition(s)", n)
			}
		}),
	)

	// Hourly: sweep events past the retention window
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			cutoff := time.Now().AddDate(0, 0, -EventRetentionDays)
			res := s.competitions.DB.
				Where("created_at < ?", cutoff).
				Delete(&models.GamificationEvent{})
			if res.Error != nil {
				log.Printf("[scheduler] retention sweep failed: %v", res.Error)
				return
			}
			if res.RowsAffected > 0 {
				log.Printf("[scheduler] swept %d event(s) older than %d days", res.RowsAffected, EventRetentionDays)
			}
		}),
	)
}

func (s *Scheduler) Stop() {
	if s.sched != nil {
		_ = s.sched.Shutdown()
	}
}

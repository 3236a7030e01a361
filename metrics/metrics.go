package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	EventsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "gamification_events_total", Help: "Total gamification events recorded"},
		[]string{"type"},
	)
	BadgesGranted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "gamification_badges_granted_total", Help: "Total badges granted"},
	)
	AchievementsGranted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "gamification_achievements_granted_total", Help: "Total achievements granted"},
	)
	LevelUps = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "gamification_level_ups_total", Help: "Total level-up transitions"},
	)
	CompetitionsFinished = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "gamification_competitions_finished_total", Help: "Total competitions finished"},
	)
)

func Register() {
	prometheus.MustRegister(EventsRecorded, BadgesGranted, AchievementsGranted, LevelUps, CompetitionsFinished)
}

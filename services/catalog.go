package services

import (
	"fmt"
	"log"

	"edu-gamification-service/models"

	"gorm.io/gorm"
)

// LevelTier maps a cumulative experience threshold to a level, a title and the
// rewards granted on reaching it.
type LevelTier struct {
	Level              int
	ExperienceRequired int64
	Title              string
	Rewards            []string
}

// LevelTiers is the static level table. ExperienceRequired is strictly
// increasing; users start at level 1.
var LevelTiers = []LevelTier{
	{Level: 1, ExperienceRequired: 0, Title: "Estudiante", Rewards: nil},
	{Level: 2, ExperienceRequired: 100, Title: "Aprendiz", Rewards: []string{"gems_25"}},
	{Level: 3, ExperienceRequired: 250, Title: "Explorador", Rewards: []string{"gems_50", "avatar_frame_bronze"}},
	{Level: 4, ExperienceRequired: 500, Title: "Aventurero", Rewards: []string{"gems_75"}},
	{Level: 5, ExperienceRequired: 1000, Title: "Conquistador", Rewards: []string{"gems_100", "streak_freeze"}},
	{Level: 6, ExperienceRequired: 2000, Title: "Maestro", Rewards: []string{"gems_150", "avatar_frame_silver"}},
	{Level: 7, ExperienceRequired: 3500, Title: "Erudito", Rewards: []string{"gems_200"}},
	{Level: 8, ExperienceRequired: 5500, Title: "Sabio", Rewards: []string{"gems_300", "avatar_frame_gold"}},
	{Level: 9, ExperienceRequired: 8000, Title: "Leyenda", Rewards: []string{"gems_400", "streak_freeze"}},
	{Level: 10, ExperienceRequired: 12000, Title: "Gran Maestro", Rewards: []string{"gems_500", "avatar_frame_diamond"}},
}

// TierForExperience returns the highest tier whose threshold is met by exp.
func TierForExperience(exp int64) LevelTier {
	tier := LevelTiers[0]
	for _, t := range LevelTiers {
		if exp >= t.ExperienceRequired {
			tier = t
		}
	}
	return tier
}

// LevelForExperience is monotonically non-decreasing in exp.
func LevelForExperience(exp int64) int {
	return TierForExperience(exp).Level
}

// BadgeCatalog: static badge definitions seeded at startup.
var BadgeCatalog = []models.Badge{
	{
		Name:        "Primera Lección",
		Description: "Completaste tu primera lección",
		Category:    "lessons",
		StatName:    "lessons_completed",
		Comparator:  models.ComparatorGreaterThan,
		Threshold:   "0",
		Points:      10,
		IsActive:    true,
	},
	{
		Name:        "Estudiante Dedicado",
		Description: "Completaste 25 lecciones",
		Category:    "lessons",
		StatName:    "lessons_completed",
		Comparator:  models.ComparatorGreaterThan,
		Threshold:   "24",
		Points:      50,
		IsActive:    true,
	},
	{
		Name:        "Maratonista",
		Description: "Completaste 100 lecciones",
		Category:    "lessons",
		StatName:    "lessons_completed",
		Comparator:  models.ComparatorGreaterThan,
		Threshold:   "99",
		Points:      150,
		IsActive:    true,
	},
	{
		Name:        "Perfeccionista",
		Description: "Obtuviste 10 puntuaciones perfectas",
		Category:    "assessments",
		StatName:    "perfect_scores",
		Comparator:  models.ComparatorGreaterThan,
		Threshold:   "9",
		Points:      100,
		IsActive:    true,
	},
	{
		Name:        "Racha de Fuego",
		Description: "Estudiaste 7 días seguidos",
		Category:    "streaks",
		StatName:    "study_streak",
		Comparator:  models.ComparatorGreaterThan,
		Threshold:   "6",
		Points:      75,
		IsActive:    true,
	},
	{
		Name:        "Mano Amiga",
		Description: "Ayudaste a otros estudiantes 10 veces",
		Category:    "community",
		StatName:    "help_others",
		Comparator:  models.ComparatorGreaterThan,
		Threshold:   "9",
		Points:      60,
		IsActive:    true,
	},
	{
		Name:        "Políglota",
		Description: "Estudiaste 3 idiomas distintos",
		Category:    "languages",
		StatName:    "languages_learned",
		Comparator:  models.ComparatorGreaterThan,
		Threshold:   "2",
		Points:      120,
		IsActive:    true,
	},
	{
		Name:        "Embajador Cultural",
		Description: "Participaste en 5 actividades culturales",
		Category:    "culture",
		StatName:    "cultural_activities",
		Comparator:  models.ComparatorGreaterThan,
		Threshold:   "4",
		Points:      80,
		IsActive:    true,
	},
}

// AchievementCatalog: same mechanism as badges, surfaced separately.
var AchievementCatalog = []models.Achievement{
	{
		Name:        "Primer Examen",
		Description: "Aprobaste tu primera evaluación",
		Category:    "assessments",
		StatName:    "assessments_passed",
		Comparator:  models.ComparatorEquals,
		Threshold:   "1",
		Points:      20,
		IsActive:    true,
	},
	{
		Name:        "Evaluador Experto",
		Description: "Aprobaste 50 evaluaciones",
		Category:    "assessments",
		StatName:    "assessments_passed",
		Comparator:  models.ComparatorGreaterThan,
		Threshold:   "49",
		Points:      150,
		IsActive:    true,
	},
	{
		Name:        "Mentor",
		Description: "Ayudaste a 5 estudiantes distintos",
		Category:    "community",
		StatName:    "students_helped",
		Comparator:  models.ComparatorGreaterThan,
		Threshold:   "4",
		Points:      90,
		IsActive:    true,
	},
	{
		Name:        "Constancia de Hierro",
		Description: "Mantuviste una racha de 30 días",
		Category:    "streaks",
		StatName:    "study_streak",
		Comparator:  models.ComparatorGreaterThan,
		Threshold:   "29",
		Points:      200,
		IsActive:    true,
	},
	{
		Name:        "Mariposa Social",
		Description: "Interactuaste 20 veces con la comunidad",
		Category:    "community",
		StatName:    "social_interactions",
		Comparator:  models.ComparatorGreaterThan,
		Threshold:   "19",
		Points:      40,
		IsActive:    true,
	},
}

// SeedCatalog inserts badge and achievement definitions that are not already
// present. Name is the identity, so repeated startup calls are idempotent.
func SeedCatalog(db *gorm.DB) error {
	for _, def := range BadgeCatalog {
		var count int64
		if err := db.Model(&models.Badge{}).Where("name = ?", def.Name).Count(&count).Error; err != nil {
			return fmt.Errorf("check badge %q: %w", def.Name, err)
		}
		if count == 0 {
			if err := db.Create(&def).Error; err != nil {
				return fmt.Errorf("seed badge %q: %w", def.Name, err)
			}
			log.Printf("[catalog] seeded badge: %s", def.Name)
		}
	}

	for _, def := range AchievementCatalog {
		var count int64
		if err := db.Model(&models.Achievement{}).Where("name = ?", def.Name).Count(&count).Error; err != nil {
			return fmt.Errorf("check achievement %q: %w", def.Name, err)
		}
		if count == 0 {
			if err := db.Create(&def).Error; err != nil {
				return fmt.Errorf("seed achievement %q: %w", def.Name, err)
			}
			log.Printf("[catalog] seeded achievement: %s", def.Name)
		}
	}

	return nil
}

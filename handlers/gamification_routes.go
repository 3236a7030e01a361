package handlers

import (
	"edu-gamification-service/middleware"
	"edu-gamification-service/models"
	"edu-gamification-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGamificationRoutes(app *fiber.App, gamification *services.GamificationService, stats *services.StatsService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/user/gamification", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		data, err := gamification.GetUserGamificationData(userID)
		if err != nil {
			return errJSON(c, err)
		}
		return c.JSON(data)
	})

	secured.Get("/user/stats", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		userStats, err := stats.GetUserStats(userID)
		if err != nil {
			return errJSON(c, err)
		}
		return c.JSON(userStats)
	})

	secured.Get("/user/badges", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		data, err := gamification.GetUserGamificationData(userID)
		if err != nil {
			return errJSON(c, err)
		}
		return c.JSON(fiber.Map{
			"badges":       data.Badges,
			"achievements": data.Achievements,
		})
	})

	secured.Get("/user/rewards", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		data, err := gamification.GetUserGamificationData(userID)
		if err != nil {
			return errJSON(c, err)
		}
		return c.JSON(data.Rewards)
	})

	// Per-activity recording helpers: the caller supplies the activity facts,
	// the point formulas live here.
	secured.Post("/user/activities/lesson", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var req struct {
			LessonID  string `json:"lesson_id"`
			Language  string `json:"language"`
			Score     int    `json:"score"`
			TimeSpent int    `json:"time_spent"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if err := gamification.RecordLessonCompletion(userID, req.LessonID, req.Language, req.Score, req.TimeSpent); err != nil {
			return errJSON(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "lesson recorded"})
	})

	secured.Post("/user/activities/assessment", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var req struct {
			AssessmentID string `json:"assessment_id"`
			Score        int    `json:"score"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if err := gamification.RecordAssessmentPassed(userID, req.AssessmentID, req.Score); err != nil {
			return errJSON(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "assessment recorded"})
	})

	secured.Post("/user/activities/cultural", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var req struct {
			ActivityID string `json:"activity_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if err := gamification.RecordCulturalActivity(userID, req.ActivityID); err != nil {
			return errJSON(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "activity recorded"})
	})

	secured.Post("/user/activities/help", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var req struct {
			HelpedUserID string `json:"helped_user_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if err := gamification.RecordHelpGiven(userID, req.HelpedUserID); err != nil {
			return errJSON(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "help recorded"})
	})

	secured.Post("/user/activities/social", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var req struct {
			Interaction string `json:"interaction"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if err := gamification.RecordSocialInteraction(userID, req.Interaction); err != nil {
			return errJSON(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "interaction recorded"})
	})

	// Raw event entry point, for trusted internal callers only.
	admin := secured.Group("/admin", middleware.RequireRole("admin"))
	admin.Post("/events", func(c *fiber.Ctx) error {
		var req struct {
			ExternalUserID string                 `json:"external_user_id"`
			Type           models.EventType       `json:"type"`
			Points         int64                  `json:"points"`
			Metadata       map[string]interface{} `json:"metadata"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if err := gamification.RecordEvent(req.ExternalUserID, req.Type, req.Points, req.Metadata); err != nil {
			return errJSON(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "event recorded"})
	})
}

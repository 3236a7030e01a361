package handlers

import (
	"strconv"

	"edu-gamification-service/middleware"
	"edu-gamification-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCompetitionRoutes(app *fiber.App, competitions *services.CompetitionService) {
	// Public within the gateway: listing and leaderboards need no user context
	app.Get("/competitions/active", func(c *fiber.Ctx) error {
		comps, err := competitions.GetActiveCompetitions()
		if err != nil {
			return errJSON(c, err)
		}
		return c.JSON(comps)
	})

	app.Get("/competitions/:id/leaderboard", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "50"))
		entries, err := competitions.GetLeaderboard(c.Params("id"), limit)
		if err != nil {
			return errJSON(c, err)
		}
		return c.JSON(entries)
	})

	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/user/competitions/:id/join", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		participant, err := competitions.JoinCompetition(userID, c.Params("id"))
		if err != nil {
			return errJSON(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(participant)
	})

	secured.Delete("/user/competitions/:id/join", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if err := competitions.LeaveCompetition(userID, c.Params("id")); err != nil {
			return errJSON(c, err)
		}
		return c.JSON(fiber.Map{"message": "left competition"})
	})

	secured.Put("/user/competitions/:id/score", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var req struct {
			Score int64 `json:"score"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if err := competitions.UpdateScore(userID, c.Params("id"), req.Score); err != nil {
			return errJSON(c, err)
		}
		return c.JSON(fiber.Map{"message": "score updated"})
	})

	admin := secured.Group("/admin", middleware.RequireRole("admin"))

	admin.Post("/competitions", func(c *fiber.Ctx) error {
		var req services.CreateCompetitionInput
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		comp, err := competitions.CreateCompetition(req)
		if err != nil {
			return errJSON(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(comp)
	})

	admin.Post("/competitions/:id/finish", func(c *fiber.Ctx) error {
		if err := competitions.FinishCompetition(c.Params("id")); err != nil {
			return errJSON(c, err)
		}
		return c.JSON(fiber.Map{"message": "competition finished"})
	})

	admin.Post("/competitions/:id/cancel", func(c *fiber.Ctx) error {
		if err := competitions.CancelCompetition(c.Params("id")); err != nil {
			return errJSON(c, err)
		}
		return c.JSON(fiber.Map{"message": "competition cancelled"})
	})
}

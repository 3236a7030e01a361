package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"edu-gamification-service/handlers"
	"edu-gamification-service/metrics"
	"edu-gamification-service/middleware"
	"edu-gamification-service/models"
	"edu-gamification-service/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment variables directly")
	}

	app := fiber.New()

	// Unauthenticated operational endpoints, registered before the gateway guard
	metrics.Register()
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Only Gateway requests allowed past this point
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID, X-User-ID, X-User-Roles",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.UserLevel{},
		&models.Badge{},
		&models.UserBadge{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.GamificationEvent{},
		&models.Competition{},
		&models.CompetitionParticipant{},
		&models.LeaderboardEntry{},
		&models.UserReward{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := services.SeedCatalog(db); err != nil {
		log.Fatal("failed to seed rule catalog:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier := services.NewLogNotifier()
	go notifier.Start(ctx)

	statsService := services.NewStatsService(db)
	gamificationService := services.NewGamificationService(db, statsService, notifier)
	competitionService := services.NewCompetitionService(db, gamificationService, notifier)

	scheduler := services.NewScheduler(competitionService)
	scheduler.Start()
	defer scheduler.Stop()

	// Competition routes first: their public listing/leaderboard endpoints
	// must register ahead of the user-context group.
	handlers.SetupCompetitionRoutes(app, competitionService)
	handlers.SetupGamificationRoutes(app, gamificationService, statsService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "7300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("server error: %v", err)
		}
	}()

	log.Printf("gamification service running on http://localhost:%s", port)

	<-ctx.Done()
	log.Println("shutting down...")
	_ = app.Shutdown()
}

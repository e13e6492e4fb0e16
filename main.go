package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"intake-backend/controllers"
	"intake-backend/database"
	"intake-backend/middlewares"
	"intake-backend/notify"
	"intake-backend/ratelimit"
	"intake-backend/routes"
	"intake-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
)

func main() {
	// ---- Database
	database.Connect()
	database.AutoMigrate()
	if err := database.EnsureAdminUser(); err != nil {
		log.Fatalf("admin bootstrap failed: %v", err)
	}

	// ---- Notification dispatcher (email + intake webhook)
	mailer := notify.NewSMTPMailerFromEnv()
	if !mailer.Configured() {
		log.Println("SMTP relay not configured; confirmation emails disabled")
	}
	controllers.Notifier = notify.NewDispatcher(database.DB, mailer, os.Getenv("INTAKE_WEBHOOK_URL"))

	// ---- Rate limiter (configurable via env; Redis when shared counters are needed)
	rlMax := utils.ParseIntDefault(os.Getenv("RATE_LIMIT_MAX"), 5)
	rlWindow := time.Duration(utils.ParseIntDefault(os.Getenv("RATE_LIMIT_WINDOW_SECONDS"), 60)) * time.Second

	var limiter ratelimit.Store
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD")})
		limiter = ratelimit.NewRedisStore(rdb, rlMax, rlWindow)
	} else {
		mem := ratelimit.NewMemoryStore(rlMax, rlWindow)
		mem.StartJanitor(context.Background(), 2*time.Minute)
		limiter = mem
	}

	// ---- Limits (configurable via env)
	// Fiber default BodyLimit is 4 * 1024 * 1024 bytes if unset (per docs).
	bodyLimitBytes := utils.ParseIntDefault(os.Getenv("BODY_LIMIT_BYTES"), 0)
	if bodyLimitBytes <= 0 {
		bodyLimitBytes = utils.ParseIntDefault(os.Getenv("BODY_LIMIT_MB"), 4) * 1024 * 1024
	}

	// ---- Fiber app with global error handler + body limit
	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    bodyLimitBytes,
	})

	// ---- CORS
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: false, // using Bearer tokens, not cookies
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
	}))

	// ---- Routes
	routes.Register(app, limiter)

	// ---- Start
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(":" + port); err != nil {
		panic(err)
	}
	fmt.Println("API server started on port", port)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"intake-backend/controllers"
	"intake-backend/middlewares"
	"intake-backend/ratelimit"
)

// methodNotAllowed answers non-POST hits on the form endpoints.
func methodNotAllowed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
		"error":   "Method not allowed",
		"message": "This endpoint only accepts POST requests.",
	})
}

// Register wires all HTTP routes. limiter guards the public form endpoints.
func Register(app *fiber.App, limiter ratelimit.Store) {
	api := app.Group("/api")

	rl := middlewares.RateLimit(limiter)

	// Lead intake funnel
	api.Post("/requests", rl, middlewares.Idempotency(), controllers.CreateRequest)
	api.All("/requests", methodNotAllowed)

	// Contact form
	api.Post("/contact", rl, controllers.CreateContact)
	api.All("/contact", methodNotAllowed)

	// Build-my-site helpers
	api.Get("/domain-check", controllers.CheckDomain)
	api.Post("/generate-logo", controllers.GenerateLogo)
	api.Post("/nodes/vercel-deployer", controllers.VercelDeploy)

	// Admin (JWT auth)
	api.Post("/login", controllers.Login)

	protected := api.Group("/admin")
	protected.Use(middlewares.RequireAuth())
	protected.Get("/requests", controllers.GetRequests)
	protected.Get("/requests/:id", controllers.GetRequest)
	protected.Get("/contacts", controllers.GetContacts)
}

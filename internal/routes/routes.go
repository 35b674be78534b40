package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/interviewmate/backend/internal/handlers"
	"github.com/interviewmate/backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	store *session.Store,
	authHandler *handlers.AuthHandler,
	interviewHandler *handlers.InterviewHandler,
	assistHandler *handlers.AssistHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/health", healthHandler.Check)

	api := app.Group("/ai")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Credential routes get a stricter limit: 10 req/min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	user := api.Group("/user")
	user.Post("/register", authLimiter, authHandler.Register)
	user.Post("/login", authLimiter, authHandler.Login)
	user.Post("/logout", authHandler.Logout)
	user.Get("/session", authHandler.Session)

	interviews := api.Group("/interviews", middleware.RequireSession(store))
	interviews.Post("/create/:userId", middleware.RequireSelf(), interviewHandler.Create)
	interviews.Get("/analysis/:id", interviewHandler.Analysis)
	interviews.Get("/trend/:userId", middleware.RequireSelf(), interviewHandler.Trend)
	interviews.Put("/update/:id", interviewHandler.Update)
	interviews.Delete("/delete/:userId/:interviewId", middleware.RequireSelf(), interviewHandler.Delete)
	interviews.Post("/addAttempt/:id", interviewHandler.AddAttempt)
	// Registered last so it doesn't shadow the routes above.
	interviews.Get("/:userId", middleware.RequireSelf(), interviewHandler.List)

	assist := api.Group("/assist", middleware.RequireSession(store))
	assist.Post("/questions", assistHandler.GenerateQuestions)
	assist.Post("/evaluations", assistHandler.EvaluateAnswers)
}

package server

import (
	"errors"

	"github.com/suka712/anvago-travel-planning/internal/auth"
	"github.com/suka712/anvago-travel-planning/internal/config"
	"github.com/suka712/anvago-travel-planning/internal/demo"
	"github.com/suka712/anvago-travel-planning/internal/itinerary"
	"github.com/suka712/anvago-travel-planning/internal/location"
	"github.com/suka712/anvago-travel-planning/internal/profile"
	"github.com/suka712/anvago-travel-planning/internal/rewards"
	"github.com/suka712/anvago-travel-planning/internal/stream"
	"github.com/suka712/anvago-travel-planning/internal/template"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
	Auth   *auth.Service
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
		Auth:   auth.NewService(cfg.JWTSecret, db),
	}

	registerRoutes(s)
	return s
}

// errorHandler writes the failure half of the response envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	return c.Status(code).JSON(fiber.Map{"success": false, "error": err.Error()})
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	optionalJWT := auth.OptionalJWT(s.Cfg.JWTSecret)
	adminOnly := auth.RequireAdmin(s.Auth)

	auth.RegisterRoutes(s.App.Group("/auth"), s.Auth)
	profile.RegisterRoutes(s.App.Group("/users"), profile.NewService(s.DB), s.Auth, jwtMiddleware)
	location.RegisterRoutes(s.App.Group("/locations"), location.NewService(s.DB))

	// templates before the itinerary group so /itineraries/templates is
	// not swallowed by /itineraries/:id
	template.RegisterRoutes(s.App.Group("/itineraries/templates"), template.NewService(s.DB, s.Redis))
	itinerary.RegisterRoutes(s.App.Group("/itineraries"), itinerary.NewService(s.DB, s.Stream),
		jwtMiddleware, optionalJWT)

	rewards.RegisterRoutes(s.App.Group("/rewards"), rewards.NewService(s.DB), jwtMiddleware)
	demo.RegisterRoutes(s.App.Group("/admin"), demo.NewService(s.DB, s.Stream), jwtMiddleware, adminOnly)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}

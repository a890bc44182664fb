package server

import (
	"github.com/doech/Wherenow/internal/auth"
	"github.com/doech/Wherenow/internal/category"
	"github.com/doech/Wherenow/internal/circle"
	"github.com/doech/Wherenow/internal/config"
	"github.com/doech/Wherenow/internal/event"
	"github.com/doech/Wherenow/internal/joinrequest"
	"github.com/doech/Wherenow/internal/mailer"
	"github.com/doech/Wherenow/internal/media"
	"github.com/doech/Wherenow/internal/notify"
	"github.com/doech/Wherenow/internal/search"
	"github.com/doech/Wherenow/internal/user"

	"github.com/gofiber/fiber/v2"
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
	Notify *notify.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Notify: notify.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	authSvc := auth.NewService(s.Cfg.JWTSecret, s.DB)
	var verifier *auth.Verifier
	if s.Redis != nil {
		verifier = auth.NewVerifier(s.Redis, mailer.NewSMTPSender(s.Cfg), authSvc)
	}
	auth.RegisterRoutes(s.App.Group("/auth"), authSvc, verifier)

	events := s.App.Group("/events")
	event.RegisterRoutes(events, event.NewService(s.DB), jwtMiddleware)
	joinrequest.RegisterRoutes(events, joinrequest.NewService(s.DB, s.Notify), jwtMiddleware)

	circle.RegisterRoutes(s.App.Group("/circles"), circle.NewService(s.DB), jwtMiddleware)
	user.RegisterRoutes(s.App.Group("/users"), user.NewService(s.DB), jwtMiddleware)
	category.RegisterRoutes(s.App.Group("/categories"), category.NewService(s.DB))
	search.RegisterRoutes(s.App.Group("/search"), search.NewService(s.DB))
	media.RegisterRoutes(s.App.Group("/media"), media.NewService(s.DB), jwtMiddleware)
	notify.RegisterRoutes(s.App.Group("/notify"), s.Notify)
}

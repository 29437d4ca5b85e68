package server

import (
	"time"

	"backend-trailmap/internal/config"
	"backend-trailmap/internal/export"
	"backend-trailmap/internal/poi"
	"backend-trailmap/internal/stream"
	"backend-trailmap/internal/trail"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	Redis  *redis.Client
	Stream *stream.Hub
	POI    *poi.Service
	Trails *trail.Service
}

func NewServer(cfg config.Config, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 64 * 1024 * 1024, // photo batches
	})
	app.Use(recover.New())
	app.Use(logger.New())

	hub := stream.NewHub(redisClient)
	s := &Server{
		App:    app,
		Cfg:    cfg,
		Redis:  redisClient,
		Stream: hub,
		POI:    poi.NewService(cfg.POISourceURLs(), time.Duration(cfg.POIFetchTimeoutSec)*time.Second),
		Trails: trail.NewService(hub),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	poi.RegisterRoutes(s.App.Group("/pois"), s.POI)

	trails := s.App.Group("/trails")
	trail.RegisterRoutes(trails, s.Trails)
	export.RegisterRoutes(trails, s.Trails)

	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}

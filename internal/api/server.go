package api

import (
	"fmt"
	"log"
	"net/http"

	"confera/internal/cache"
	"confera/internal/config"
	"confera/internal/database"
	"confera/internal/handlers"
	"confera/internal/messaging"
	"confera/internal/metrics"
	"confera/internal/middleware"
	"confera/internal/repository"
	"confera/internal/service"

	"github.com/gin-gonic/gin"
)

// Server представляет HTTP сервер API
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	nats     *messaging.NATSClient
	valkey   *cache.ValkeyClient
	services *service.Services
	repos    *repository.Repositories
}

// NewServer создает новый экземпляр сервера
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}

	// Кеш опционален: без него все запросы идут в БД
	valkeyClient, err := cache.NewValkeyClient(cfg.Valkey)
	if err != nil {
		log.Printf("Valkey unavailable, running without cache: %v", err)
		valkeyClient = nil
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, natsClient)

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(metrics.Middleware())

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		nats:     natsClient,
		valkey:   valkeyClient,
		services: services,
		repos:    repos,
	}

	server.setupRoutes()

	return server
}

// setupRoutes настраивает все API роуты
func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.valkey)

	api := s.router.Group("/api")
	// Обязательная Basic Auth для всех API роутов
	api.Use(middleware.BasicAuth(s.repos.Users, s.valkey))
	{
		events := api.Group("/events")
		{
			events.POST("", h.CreateEvent)
			events.GET("", h.ListEvents)
			events.GET("/:id", h.GetEvent)
			events.PUT("/:id", h.UpdateEvent)
			events.DELETE("/:id", h.DeleteEvent)
			events.POST("/:id/register", h.RegisterForEvent)
			events.GET("/:id/tracks", h.ListTracks)
			events.POST("/:id/tracks", h.CreateTrack)
		}

		tracks := api.Group("/tracks")
		{
			tracks.GET("/:id", h.GetTrack)
			tracks.PUT("/:id", h.UpdateTrack)
			tracks.DELETE("/:id", h.DeleteTrack)
			tracks.GET("/:id/sessions", h.ListSessions)
			tracks.POST("/:id/sessions", h.CreateSession)
		}

		sessions := api.Group("/sessions")
		{
			sessions.GET("/:id", h.GetSession)
			sessions.PUT("/:id", h.UpdateSession)
			sessions.DELETE("/:id", h.DeleteSession)
			sessions.POST("/:id/register", h.RegisterForSession)
		}

		registrations := api.Group("/registrations")
		{
			registrations.POST("", h.CreateRegistration)
			registrations.GET("", h.ListRegistrations)
			registrations.GET("/:id", h.GetRegistration)
			registrations.PATCH("/:id", h.UpdateRegistration)
			registrations.POST("/:id/approve", h.ApproveRegistration)
			registrations.POST("/:id/cancel", h.CancelRegistration)
		}

		sessionRegistrations := api.Group("/session-registrations")
		{
			sessionRegistrations.POST("", h.CreateSessionRegistration)
			sessionRegistrations.GET("", h.ListSessionRegistrations)
			sessionRegistrations.GET("/:id", h.GetSessionRegistration)
			sessionRegistrations.POST("/:id/cancel", h.CancelSessionRegistration)
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", metrics.Handler())
}

// healthCheck обрабатывает health check запросы
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "confera-api",
		"version": "1.0.0",
	})
}

// Run запускает HTTP сервер
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter возвращает роутер для тестирования
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup закрывает соединения
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			log.Printf("Error closing NATS connection: %v", err)
		}
	}

	if s.valkey != nil {
		if err := s.valkey.Close(); err != nil {
			log.Printf("Error closing Valkey connection: %v", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
			return err
		}
	}

	return nil
}

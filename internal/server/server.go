package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"taskhub/internal/auth"
	"taskhub/internal/config"
	"taskhub/internal/middleware"
	"taskhub/internal/version"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	mongo  *mongo.Client
}

// New creates a new server instance: store connection, token verifier,
// layer wiring and bootstrap admin promotion.
func New(cfg *config.Config) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		mongoClient *mongo.Client
		repos       *Repositories
	)
	if cfg.Mongo.UseMemoryStore() {
		logrus.Warn("using in-memory store; data will not survive a restart")
		repos = InitMemoryRepositories()
	} else {
		client, err := Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		mongoClient = client
		repos = InitRepositories(client.Database(cfg.Mongo.Database))
	}

	verifier, err := auth.NewVerifier(ctx, cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to build token verifier: %w", err)
	}

	services := InitServices(verifier, repos)
	handlers := InitHandlers(services)

	if err := BootstrapAdmin(ctx, cfg, services.Users); err != nil {
		return nil, err
	}

	router := setupRouter(cfg, handlers, services)

	return &Server{
		cfg:    cfg,
		router: router,
		mongo:  mongoClient,
	}, nil
}

// Connect opens and pings the MongoDB client under a bounded context
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

// Close disconnects the MongoDB client
func (s *Server) Close() error {
	if s.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.mongo.Disconnect(ctx)
	}
	return nil
}

// Run starts the server
func (s *Server) Run() error {
	logrus.WithFields(logrus.Fields{
		"addr":    s.cfg.Server.Address(),
		"version": version.Version,
	}).Info("server listening")
	return s.router.Run(s.cfg.Server.Address())
}

func setupRouter(cfg *config.Config, h *Handlers, s *Services) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"status":  "ok",
			"version": version.Get(),
		})
	})

	// Everything else requires a verified bearer token
	timeout := time.Duration(cfg.RequestTimeoutSec) * time.Second
	protected := r.Group("")
	protected.Use(middleware.RequestTimeout(timeout))
	protected.Use(middleware.AuthMiddleware(s.Identity))

	tasks := protected.Group("/tasks")
	{
		tasks.GET("", h.Task.List)
		tasks.POST("", h.Task.Create)
		tasks.PUT("/:id", h.Task.Update)
		tasks.DELETE("/:id", h.Task.Delete)
	}

	users := protected.Group("/users")
	{
		users.GET("/profile", h.User.GetProfile)
		users.PUT("/profile", h.User.UpdateProfile)
		users.GET("/all", h.User.ListAll)
		users.PUT("/:userId/role", h.User.UpdateRole)
	}

	return r
}

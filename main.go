package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/handlers"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/config"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/content"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/database"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/models"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/settings"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/storage"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/users"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/pkg/logger"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/pkg/metrics"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// LOG_LEVEL env controls verbosity: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: env=%s mongo=%v redis=%v", cfg.Server.Environment, cfg.MongoDB.URI != "", cfg.Redis.Host != "")

	r := gin.New()
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate limiter can use it when configured
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			rdb = nil
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// MongoDB with retry/backoff to tolerate container startup races
	ctx := context.Background()
	const maxAttempts = 5
	backoff := time.Second
	var client *mongo.Client
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, err = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err == nil {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if err != nil {
		logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, err)
	}
	defer func() { _ = client.Disconnect(ctx) }()
	db := client.Database(cfg.MongoDB.Database)

	userSvc := users.NewService(users.NewMongoUserRepository(db.Collection("adminusers")))

	stores := make([]*content.Store, 0, len(content.Types()))
	for _, t := range content.Types() {
		stores = append(stores, content.NewStore(t, content.NewMongoRepository(db.Collection(t.Collection))))
	}

	settingsStore := settings.NewStore(db.Collection("settings"))
	if err := settingsStore.Load(ctx); err != nil {
		logger.Fatalf("failed to load settings: %v", err)
	}

	// Object storage for image uploads; routes answer 503 when not configured
	var uploads *storage.MinIOStorage
	if mc := storage.LoadMinIOConfig(); mc.Endpoint != "" {
		uploads, err = storage.NewMinIOStorage(mc)
		if err != nil {
			logger.Warnf("failed to initialize MinIO (%s): %v", mc.Endpoint, err)
			uploads = nil
		} else {
			logger.Infof("image uploads backed by MinIO bucket %q", mc.Bucket)
		}
	}

	auth := middleware.RequireAuth(cfg, userSvc)
	admin := middleware.RequireRole(models.RoleAdmin)
	superAdmin := middleware.RequireRole(models.RoleSuperAdmin)

	api := r.Group("/api")
	handlers.NewAuthHandler(cfg, userSvc).Register(api, auth, superAdmin)
	handlers.NewContentHandler(cfg, stores, uploads).Register(api, auth, admin)
	handlers.NewSettingsHandler(cfg, settingsStore).Register(api, auth, admin)

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "OK",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": cfg.Server.Environment,
		})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}

// corsMiddleware allows the configured frontend origins and answers
// preflight requests.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	allowedSet := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		allowedSet[o] = true
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowedSet[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

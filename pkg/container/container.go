package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"commerce-admin-backend/internal/config"
	"commerce-admin-backend/internal/domains/order/gateway"
	refundHandler "commerce-admin-backend/internal/domains/refund/handler"
	refundRepo "commerce-admin-backend/internal/domains/refund/repository"
	refundService "commerce-admin-backend/internal/domains/refund/service"
	infraCache "commerce-admin-backend/internal/infrastructure/cache"
	"commerce-admin-backend/internal/infrastructure/database"
	"commerce-admin-backend/pkg/cache"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the application's dependency graph. Initialization
// order matters: config, infrastructure, gateway, repositories,
// services, handlers.
type Container struct {
	// Infrastructure - singletons shared across domains
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	// Outbound gateway to the commerce platform
	Commerce gateway.CommerceGateway

	// Repository layer
	AuditRepo refundRepo.AuditRepoInterface

	// Service layer
	SessionStore  refundService.SessionStore
	RefundService refundService.RefundService

	// Handler layer
	RefundHandler *refundHandler.RefundHandler
}

// ========================================
// CONSTRUCTOR
// ========================================

func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// Step 1: configuration
	log.Println("📋 Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// Step 2: database
	log.Println("🗄️  Connecting to PostgreSQL...")
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	// Step 3: cache
	log.Println("🔴 Connecting to Redis...")
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	redisAvailable := true
	if err := redisCache.Connect(context.Background()); err != nil {
		// Non-critical: refund sessions fall back to the in-process
		// store, losing cross-instance sharing but nothing else.
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
		redisAvailable = false
	} else {
		log.Println("✅ Redis connected")
	}
	c.Cache = redisCache

	// Step 4: commerce platform gateway
	log.Println("🌐 Initializing commerce platform gateway...")
	c.Commerce = gateway.NewCommerceClient(
		cfg.Commerce.BaseURL,
		cfg.Commerce.APIKey,
		cfg.Commerce.Timeout,
	)

	// Step 5: repositories
	log.Println("📦 Initializing repositories...")
	c.AuditRepo = refundRepo.NewAuditRepository(db.Pool)

	// Step 6: services
	if redisAvailable {
		c.SessionStore = refundService.NewCacheSessionStore(c.Cache)
	} else {
		c.SessionStore = refundService.NewMemorySessionStore()
	}
	c.RefundService = refundService.NewRefundService(c.Commerce, c.SessionStore, c.AuditRepo)

	// Step 7: handlers
	c.RefundHandler = refundHandler.NewRefundHandler(c.RefundService)

	log.Println("✅ DI Container initialized")
	return c, nil
}

// Cleanup releases all held connections; called on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("failed to close redis client: %v", err)
		}
	}
}

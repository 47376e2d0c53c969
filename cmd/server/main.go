package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"wellness/planner/internal/api"
	"wellness/planner/internal/cache"
	"wellness/planner/internal/completion"
	"wellness/planner/internal/config"
	"wellness/planner/internal/lock"
	"wellness/planner/internal/logger"
	"wellness/planner/internal/planning"
	"wellness/planner/internal/repository"
	"wellness/planner/internal/repository/memory"
	"wellness/planner/internal/repository/mongo"
	"wellness/planner/internal/repository/postgres"
	"wellness/planner/internal/service"
	"wellness/planner/internal/storage"
)

// @title Wellness Planner API
// @version 1.0
// @description Personalised health plans generated from onboarding profiles.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	appLogger, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("FATAL: Could not build logger: %v", err)
	}
	defer appLogger.Sync()
	appLogger.Info("Starting Wellness Planner server...", "planStore", cfg.Plans.Store, "redis", cfg.Redis.Enabled)

	if cfg.JWT.Secret == "" {
		appLogger.Fatal("JWT secret is not configured (JWT_SECRET)")
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		appLogger.Fatal("Could not connect to MongoDB", "error", err)
	}
	defer func() {
		appLogger.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			appLogger.Error("Failed to disconnect MongoDB", "error", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			appLogger.Warn("Index creation incomplete", "error", err)
			return
		}
		appLogger.Info("Index creation process completed.")
	}()

	// --- Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	planRepo, err := openPlanStore(cfg, appDB)
	if err != nil {
		appLogger.Fatal("Could not open plan store", "store", cfg.Plans.Store, "error", err)
	}

	// --- Cache and lock ---
	var (
		profileCache cache.Cache
		locker       lock.Locker
	)
	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			appLogger.Fatal("Could not connect to Redis", "addr", cfg.Redis.Addr, "error", err)
		}
		defer closeRedis(appLogger, rdb)
		profileCache = cache.NewRedis(rdb, "wellness:cache:")
		locker = lock.NewRedis(rdb, "wellness:lock:", cfg.Redis.LockTTL, appLogger)
	} else {
		profileCache = cache.NewMemory(time.Minute)
		locker = lock.NewMemory()
	}
	defer profileCache.Close()

	// --- Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.BucketName != "" {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize S3 storage", "error", err)
		}
	} else {
		appLogger.Warn("No S3 bucket configured, plan exports stay in memory")
		fileStorage = storage.NewMemory("local")
	}

	// --- Services ---
	invoker := completion.NewRouterFromConfig(cfg.Completion)
	generator := planning.NewGenerator(invoker, appLogger)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration, appLogger)
	profileService := service.NewProfileService(profileRepo, profileCache, cfg.Cache.ProfileTTL, appLogger)
	persister := service.NewPersister(planRepo, memory.NewPlanRepo(), appLogger)
	planService := service.NewPlanService(profileService, generator, persister, locker, fileStorage, appLogger)
	advisorService := service.NewAdvisorService(generator)

	// --- HTTP ---
	if cfg.Log.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(appLogger), api.CORS(cfg.Server.AllowedOrigins))
	api.SetupRoutes(router, cfg.JWT.Secret, authService, profileService, planService, advisorService, appLogger)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		appLogger.Info("Server starting", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("ListenAndServe error", "error", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
	}
	appLogger.Info("Server exiting.")
}

func openPlanStore(cfg config.Config, db *mongodriver.Database) (repository.PlanRepository, error) {
	switch cfg.Plans.Store {
	case "", "mongo":
		return mongo.NewMongoPlanRepository(db), nil
	case "postgres":
		gdb, err := postgres.Open(cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		return postgres.NewPlanRepo(gdb), nil
	case "memory":
		return memory.NewPlanRepo(), nil
	default:
		return nil, fmt.Errorf("unknown plan store %q", cfg.Plans.Store)
	}
}

func closeRedis(appLogger *logger.Logger, rdb *goredis.Client) {
	if err := rdb.Close(); err != nil {
		appLogger.Error("Failed to close Redis client", "error", err)
	}
}

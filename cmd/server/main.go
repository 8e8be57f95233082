package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/megaJingHua/PixelGym/internal/api"
	"github.com/megaJingHua/PixelGym/internal/config"
	"github.com/megaJingHua/PixelGym/internal/domain"
	mongorepo "github.com/megaJingHua/PixelGym/internal/repository/mongo"
	redisrepo "github.com/megaJingHua/PixelGym/internal/repository/redis"
	"github.com/megaJingHua/PixelGym/internal/service"
	"github.com/megaJingHua/PixelGym/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("FATAL: Could not initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	logger.Info("Starting Pixel Gym server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatalw("Could not load config", "error", err)
	}
	logger.Info("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongorepo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatalw("Could not connect to MongoDB", "error", err)
	}
	defer func() {
		logger.Info("Disconnecting MongoDB...")
		if err := mongorepo.DisconnectDB(dbClient); err != nil {
			logger.Errorw("Failed to disconnect MongoDB", "error", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongorepo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongorepo.EnsureLogIndexes(ctx, appDB.Collection("logs"))
		mongorepo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		mongorepo.EnsureBattleIndexes(ctx, appDB.Collection("battles"))
		logger.Info("Index creation process completed.")
	}()

	// --- Session Store ---
	redisClient, err := redisrepo.Connect(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatalw("Could not connect to Redis", "error", err)
	}
	defer redisClient.Close()
	sessionRepo := redisrepo.NewRedisSessionRepository(redisClient, cfg.JWT.Expiration)
	logger.Info("Session store connection established.")

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, logger)
	if err != nil {
		logger.Fatalw("Failed to initialize S3 storage", "error", err)
	}

	// --- Initialize Repositories ---
	userRepo := mongorepo.NewMongoUserRepository(appDB)
	logRepo := mongorepo.NewMongoLogRepository(appDB)
	exerciseRepo := mongorepo.NewMongoExerciseRepository(appDB)
	battleRepo := mongorepo.NewMongoBattleRepository(appDB)
	achievementRepo := mongorepo.NewMongoAchievementRepository(appDB)

	// Seed the built-in achievements. $setOnInsert keeps any thresholds the
	// super-admin already edited.
	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := achievementRepo.Seed(ctx, domain.SystemAchievements()); err != nil {
			cancel()
			logger.Fatalw("Failed to seed system achievements", "error", err)
		}
		cancel()
	}

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, sessionRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	accountService := service.NewAccountService(userRepo, sessionRepo, logger)
	logService := service.NewLogService(logRepo, userRepo)
	exerciseService := service.NewExerciseService(exerciseRepo)
	battleService := service.NewBattleService(battleRepo, userRepo)
	achievementService := service.NewAchievementService(achievementRepo, userRepo, logRepo)

	// --- Initialize Gin Engine ---
	router := gin.Default()

	// --- Setup Routes ---
	api.SetupRoutes(
		router,
		cfg.JWT.Secret,
		sessionRepo,
		userRepo,
		authService,
		accountService,
		logService,
		exerciseService,
		battleService,
		achievementService,
		fileStorage,
	)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Infow("Server starting", "address", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("ListenAndServe error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatalw("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exiting.")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/api"
	"github.com/Amaan112005/mindmate/internal/config"
	"github.com/Amaan112005/mindmate/internal/db"
	"github.com/Amaan112005/mindmate/internal/llm"
	"github.com/Amaan112005/mindmate/internal/observ"
	pgstore "github.com/Amaan112005/mindmate/internal/repository/postgres"
	sqlitestore "github.com/Amaan112005/mindmate/internal/repository/sqlite"
	"github.com/Amaan112005/mindmate/internal/service"
	"github.com/Amaan112005/mindmate/internal/stats"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Care store: Postgres, with migrations applied at startup.
	careDB, err := db.NewCareDB(context.Background(), cfg.CareDatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("connect to care store: %w", err)
	}
	defer careDB.Close()

	if err := db.Migrate(context.Background(), careDB.Pool(), logger); err != nil {
		return fmt.Errorf("migrate care store: %w", err)
	}

	// Wellness store: embedded SQLite.
	wellnessDB, err := db.NewWellnessDB(context.Background(), cfg.WellnessDBPath, logger)
	if err != nil {
		return fmt.Errorf("open wellness store: %w", err)
	}
	defer wellnessDB.Close()

	// Redis backs the stats cache and the chat token budget.
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	pool := careDB.Pool()
	profileRepo := pgstore.NewProfileStore(pool)
	requestRepo := pgstore.NewRequestStore(pool)
	relationshipRepo := pgstore.NewRelationshipStore(pool)
	messageRepo := pgstore.NewMessageStore(pool)
	notificationRepo := pgstore.NewNotificationStore(pool)
	sessionNoteRepo := pgstore.NewSessionNoteStore(pool)
	activityRepo := pgstore.NewActivityStore(pool)

	wdb := wellnessDB.DB()
	userRepo := sqlitestore.NewUserStore(wdb)
	journalRepo := sqlitestore.NewJournalStore(wdb)
	moodRepo := sqlitestore.NewMoodStore(wdb)
	sleepRepo := sqlitestore.NewSleepStore(wdb)
	meditationRepo := sqlitestore.NewMeditationStore(wdb)
	goalRepo := sqlitestore.NewGoalStore(wdb)
	communityRepo := sqlitestore.NewCommunityStore(wdb)
	chatRepo := sqlitestore.NewChatStore(wdb)
	rpgRepo := sqlitestore.NewRPGStore(wdb)

	careSvc := service.NewCareService(profileRepo, requestRepo, relationshipRepo, notificationRepo, logger)
	messagingSvc := service.NewMessagingService(messageRepo, relationshipRepo, logger)
	wellnessSvc := service.NewWellnessService(journalRepo, moodRepo, sleepRepo, meditationRepo, goalRepo, logger)

	// The cache loads through the wellness service, which in turn
	// invalidates the cache on writes, so the two are linked after
	// construction.
	statsCache := stats.New(rdb, wellnessSvc, logger)
	wellnessSvc.SetCache(statsCache)

	llmClient := llm.NewClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel, logger)
	chatBudget := llm.NewBudget(rdb, cfg.ChatDailyTokenBudget)
	chatSvc := service.NewChatService(chatRepo, llmClient, chatBudget, logger)
	rpgSvc := service.NewRPGService(rpgRepo, logger)

	router := api.NewRouter(api.Handlers{
		Auth:         api.NewAuthHandler(userRepo, activityRepo, cfg.JWTSecret, logger),
		Therapist:    api.NewTherapistHandler(careSvc, profileRepo, sessionNoteRepo, cfg.JWTSecret, logger),
		Profile:      api.NewProfileHandler(profileRepo, activityRepo, logger),
		Request:      api.NewRequestHandler(careSvc, logger),
		Relationship: api.NewRelationshipHandler(careSvc, logger),
		Message:      api.NewMessageHandler(messagingSvc, logger),
		Notification: api.NewNotificationHandler(notificationRepo, logger),
		Journal:      api.NewJournalHandler(wellnessSvc, logger),
		Tracker:      api.NewTrackerHandler(wellnessSvc, logger),
		Goal:         api.NewGoalHandler(wellnessSvc, logger),
		Community:    api.NewCommunityHandler(communityRepo, logger),
		Chat:         api.NewChatHandler(chatSvc, logger),
		RPG:          api.NewRPGHandler(rpgSvc, logger),
		HealthCheck:  healthCheck(careDB, wellnessDB, rdb),
		JWTSecret:    cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting MindMate",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// healthCheck reports liveness of the two stores and redis. Any failure
// flips the whole check to 503 so the balancer stops routing here.
func healthCheck(care *db.CareDB, wellness *db.WellnessDB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{"care": "ok", "wellness": "ok", "redis": "ok"}
		healthy := true

		if err := care.Health(ctx); err != nil {
			checks["care"] = err.Error()
			healthy = false
		}
		if err := wellness.Health(ctx); err != nil {
			checks["wellness"] = err.Error()
			healthy = false
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, checks)
	}
}

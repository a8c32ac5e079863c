package main

import (
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordlearner/internal/config"
	"wordlearner/internal/database"
	"wordlearner/internal/handler"
	"wordlearner/internal/logging"
	"wordlearner/internal/repository"
	"wordlearner/internal/repository/postgres"
	"wordlearner/internal/repository/sqlite"
	"wordlearner/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := logging.New(cfg.LogLevel, "stdout")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting wordlearner bot", zap.String("storage", cfg.StorageDriver))

	if err := cfg.RequireBot(); err != nil {
		logger.Fatal("Invalid bot configuration", zap.Error(err))
	}

	// Connect to database with retries
	opts := database.DefaultOptions()
	if cfg.StorageDriver == config.StorageSQLite {
		opts.MaxRetries = 1
	}
	db, err := database.Connect(cfg.SQLDriver(), cfg.DSN(), opts, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := database.Migrate(db, cfg.SQLDriver(), cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	userRepo, slotRepo := newRepositories(cfg, db)

	// Initialize services
	authService, err := service.NewAuthService(userRepo, cfg.BotPassword)
	if err != nil {
		logger.Fatal("Failed to initialize auth", zap.Error(err))
	}
	store := service.NewWordStore(slotRepo, cfg.Import.Delimiter, logger)
	sessions := service.NewSessions(store, cfg.StateSlot)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.Error(err)}
			if c != nil && c.Sender() != nil {
				fields = append(fields, zap.Int64("user_id", c.Sender().ID))
			}
			logger.Error("Handler failed", fields...)
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Initialize handler
	h := handler.NewHandler(bot, authService, sessions, logger)
	h.RegisterHandlers()

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	bot.Stop()

	logger.Info("Bot stopped gracefully")
}

// newRepositories picks the repository implementations for the storage driver
func newRepositories(cfg *config.Config, db *sql.DB) (repository.UserRepository, repository.StateSlot) {
	if cfg.StorageDriver == config.StorageSQLite {
		return sqlite.NewUserRepo(db), sqlite.NewSlotRepo(db)
	}
	return postgres.NewUserRepo(db), postgres.NewSlotRepo(db)
}

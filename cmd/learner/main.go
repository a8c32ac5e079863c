package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"wordlearner/internal/config"
	"wordlearner/internal/database"
	"wordlearner/internal/gesture"
	"wordlearner/internal/logging"
	"wordlearner/internal/repository"
	"wordlearner/internal/repository/file"
	"wordlearner/internal/repository/postgres"
	"wordlearner/internal/repository/sqlite"
	"wordlearner/internal/service"
	"wordlearner/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func main() {
	importPath := flag.String("import", "", "import a delimited word file before starting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file
	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, *importPath, logger); err != nil {
		logger.Error("Learner stopped with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, importPath string, logger *zap.Logger) error {
	ctx := context.Background()

	slot, closeSlot, err := newSlot(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSlot()

	store := service.NewWordStore(slot, cfg.Import.Delimiter, logger)
	session := store.OpenSession(ctx, cfg.StateSlot)

	if importPath != "" {
		content, err := os.ReadFile(importPath)
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}
		count, err := session.Import(ctx, string(content))
		if err != nil {
			logger.Warn("Imported words were not saved", zap.Error(err))
		}
		logger.Info("Import file processed", zap.String("path", importPath), zap.Int("count", count))
	}

	recognizer := gesture.NewRecognizer(gesture.Config{
		CommitFraction: cfg.Gesture.CommitFraction,
		MinVelocity:    cfg.Gesture.MinVelocity,
		MaxDuration:    cfg.Gesture.MaxDuration,
	}, 0, gesture.Bell(os.Stderr))

	logger.Info("Starting learner",
		zap.String("storage", cfg.StorageDriver),
		zap.String("slot", cfg.StateSlot),
		zap.Int("words", session.Stats().Total),
	)

	p := tea.NewProgram(
		tui.New(ctx, session, recognizer, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}

	logger.Info("Learner stopped")
	return nil
}

// newSlot opens the configured storage and returns a func that releases it
func newSlot(cfg *config.Config, logger *zap.Logger) (repository.StateSlot, func(), error) {
	if cfg.StorageDriver == config.StorageFile {
		slot, err := file.NewSlotRepo(cfg.StateDir)
		if err != nil {
			return nil, nil, err
		}
		return slot, func() {}, nil
	}

	opts := database.DefaultOptions()
	opts.MaxRetries = 1
	db, err := database.Connect(cfg.SQLDriver(), cfg.DSN(), opts, logger)
	if err != nil {
		return nil, nil, err
	}

	if err := database.Migrate(db, cfg.SQLDriver(), cfg.MigrationsPath, logger); err != nil {
		db.Close()
		return nil, nil, err
	}

	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}

	if cfg.StorageDriver == config.StorageSQLite {
		return sqlite.NewSlotRepo(db), closeDB, nil
	}
	return postgres.NewSlotRepo(db), closeDB, nil
}

// Package logging builds the zap loggers of both front-ends
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a production JSON logger at level writing to outputPaths
// (file paths, "stdout" or "stderr").
func New(level string, outputPaths ...string) (*zap.Logger, error) {
	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = atomic
	if len(outputPaths) > 0 {
		cfg.OutputPaths = outputPaths
		cfg.ErrorOutputPaths = outputPaths
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

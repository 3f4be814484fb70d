package logging

import (
	"strings"

	"go.uber.org/zap"
)

// New builds the process-wide logger. Development environments get the
// human-readable console encoder, everything else structured JSON.
func New(env string) (*zap.Logger, error) {
	if strings.EqualFold(strings.TrimSpace(env), "development") {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Must is New with a production fallback so startup never runs logger-less.
func Must(env string) *zap.Logger {
	logger, err := New(env)
	if err != nil {
		logger, _ = zap.NewProduction()
		logger.Warn("logger build failed, fallback to zap production logger", zap.Error(err))
	}
	return logger
}

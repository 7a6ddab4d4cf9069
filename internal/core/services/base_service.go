package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/transaction_service/internal/middleware"
)

// Clock returns the current time. Services take it as a dependency so that
// date-window operations are testable.
type Clock func() time.Time

// BaseService provides common functionality for all services
type BaseService struct {
	now Clock
}

func newBaseService(clock Clock) BaseService {
	if clock == nil {
		clock = time.Now
	}
	return BaseService{now: clock}
}

// Now returns the current time from the injected clock.
func (s *BaseService) Now() time.Time {
	return s.now()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.ErrorContext(ctx, msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).InfoContext(ctx, msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).DebugContext(ctx, msg, keyvals...)
}

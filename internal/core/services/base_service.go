package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/cherry_dining/internal/apperrors"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	"github.com/SscSPs/cherry_dining/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// Now is the service clock. Nil means time.Now.
	Now func() time.Time
}

func (s *BaseService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
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
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// logUnlessNotFound logs err at error level unless it is a not-found.
func (s *BaseService) logUnlessNotFound(ctx context.Context, err error, msg string, keyvals ...any) {
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, msg, keyvals...)
	}
}

// runInTx runs fn in a transaction when a manager is configured, and directly otherwise.
func runInTx(ctx context.Context, tx portsrepo.TransactionManager, fn func(ctx context.Context) error) error {
	if tx == nil {
		return fn(ctx)
	}
	return tx.RunInTx(ctx, fn)
}

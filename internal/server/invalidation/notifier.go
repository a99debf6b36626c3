// Package invalidation signals that a rendered view is stale. Signals are
// best effort: callers log a failed Invalidate and carry on.
package invalidation

import (
	"context"
	"errors"

	"github.com/maaz2022/ourtracker/internal/logging"
)

// Notifier marks the view at path stale.
type Notifier interface {
	Invalidate(ctx context.Context, path string) error
}

// Log records invalidations in the diagnostic log only.
type Log struct {
	logger logging.Logger
}

func NewLog(l logging.Logger) *Log {
	return &Log{logger: l.With("module", "invalidation")}
}

func (n *Log) Invalidate(ctx context.Context, path string) error {
	n.logger.Info(ctx, "view invalidated", "path", path)
	return nil
}

// Multi fans an invalidation out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Invalidate(ctx context.Context, path string) error {
	var errs []error
	for _, n := range m {
		if err := n.Invalidate(ctx, path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

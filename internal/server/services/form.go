// Package services holds the action layer: each action validates its input,
// talks to the repositories and, on success, invalidates the affected view.
package services

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/maaz2022/ourtracker/internal/logging"
	"github.com/maaz2022/ourtracker/internal/server/invalidation"
)

// Form is a submitted key/value form. url.Values satisfies it.
type Form interface {
	Get(key string) string
}

// number parses a numeric form field. Empty or unparseable input is 0.
func number(f Form, key string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(f.Get(key)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// invalidate signals the view and only logs a failure.
func invalidate(ctx context.Context, n invalidation.Notifier, l logging.Logger, path string) {
	if err := n.Invalidate(ctx, path); err != nil {
		l.Warn(ctx, "view invalidation failed", "path", path, "err", err)
	}
}

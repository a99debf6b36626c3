// Package images decides what an inventory row keeps in its image column:
// the submitted base64 payload itself, or the key of an object holding the
// decoded bytes.
package images

import (
	"context"
	"strings"
)

// Store persists an image payload and returns the value to keep on the
// inventory row. An empty payload yields nil.
type Store interface {
	Put(ctx context.Context, payload string) (*string, error)
}

// Inline keeps the payload in the database unchanged.
type Inline struct{}

func (Inline) Put(_ context.Context, payload string) (*string, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, nil
	}
	return &payload, nil
}

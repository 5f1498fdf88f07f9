package api

import (
	"context"
	"time"
)

// RenderTimeout bounds a single document generation
const RenderTimeout = 20 * time.Second

// WithRenderTimeout creates a context with the render timeout
func WithRenderTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, RenderTimeout)
}

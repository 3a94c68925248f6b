package media

import (
	"context"

	"marketmate-be/internal/logger"

	"go.uber.org/zap"
)

// Remover deletes a hosted product image by its public id.
type Remover interface {
	Remove(ctx context.Context, publicID string) error
}

type noopRemover struct{}

// NewNoopRemover is used when no image host is configured.
func NewNoopRemover() Remover {
	return noopRemover{}
}

func (noopRemover) Remove(ctx context.Context, publicID string) error {
	logger.FromCtx(ctx).Debug("image host not configured, skipping removal",
		zap.String("public_id", publicID),
	)
	return nil
}

package mock

import (
	"context"

	"github.com/startuppulse/harvest"
)

var _ harvest.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of harvest.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return c.CountTokensFn(ctx, text)
}

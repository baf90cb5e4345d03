package llm

import (
	"context"
	"fmt"
	"log"
	"time"
)

// ModelChain tries an ordered list of models against one backend,
// returning the first successful response. Order is meaningful: the
// preferred model comes first and later entries are progressively
// cheaper or more available fallbacks. Every attempt gets its own
// timeout so one hung model cannot eat the whole request budget.
type ModelChain struct {
	provider       LLMProvider
	models         []string
	attemptTimeout time.Duration
	logger         *log.Logger
}

var _ LLMProvider = &ModelChain{}

// NewModelChain wraps a provider with ordered model fallback. An empty
// model list delegates to the provider's default model.
func NewModelChain(provider LLMProvider, models []string, attemptTimeout time.Duration, logger *log.Logger) *ModelChain {
	if attemptTimeout <= 0 {
		attemptTimeout = 60 * time.Second
	}
	return &ModelChain{
		provider:       provider,
		models:         models,
		attemptTimeout: attemptTimeout,
		logger:         logger,
	}
}

// Models returns the configured fallback order
func (c *ModelChain) Models() []string {
	return c.models
}

func (c *ModelChain) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	if len(c.models) == 0 {
		return c.provider.Chat(ctx, history, options...)
	}

	var lastErr error
	for _, model := range c.models {
		attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
		opts := append(append([]Option{}, options...), WithModel(model))
		response, err := c.provider.Chat(attemptCtx, history, opts...)
		cancel()

		if err == nil {
			return response, nil
		}
		lastErr = err
		c.logger.Printf("[WARN] Model %s failed, trying next in chain: %v", model, err)

		// A canceled parent context means the caller is gone; stop
		// burning attempts.
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", fmt.Errorf("all %d models in chain failed: %w", len(c.models), lastErr)
}

func (c *ModelChain) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return c.Chat(ctx, []Message{{Role: "user", Content: prompt}}, options...)
}

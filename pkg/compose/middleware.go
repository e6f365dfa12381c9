package compose

import (
	"context"
	"log/slog"
	"time"

	"github.com/blockmail/composer/pkg/core"
)

// PerformanceBudget is the wall-clock budget for one engine pass. The
// performance guard only warns when a pass exceeds it; nothing is aborted.
const PerformanceBudget = 50 * time.Millisecond

// Next continues the middleware chain with the (possibly transformed)
// block list.
type Next func(ctx context.Context, blocks []core.Block) ([]core.Block, error)

// Middleware wraps one engine pass. Each middleware receives the block list
// and must call next to continue the chain; a middleware that returns without
// calling next short-circuits the pass. Middlewares never alter rule
// selection, but they may transform the block list wholesale before rules run.
type Middleware func(ctx context.Context, blocks []core.Block, next Next) ([]core.Block, error)

// chain composes middlewares onion-style around a terminal handler:
// the first middleware is the outermost layer.
func chain(middlewares []Middleware, terminal Next) Next {
	handler := terminal
	for i := len(middlewares) - 1; i >= 0; i-- {
		mw := middlewares[i]
		inner := handler
		handler = func(ctx context.Context, blocks []core.Block) ([]core.Block, error) {
			return mw(ctx, blocks, inner)
		}
	}
	return handler
}

// LoggingMiddleware logs the wall-clock duration of each pass.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return func(ctx context.Context, blocks []core.Block, next Next) ([]core.Block, error) {
		start := time.Now()
		logger.Debug("composition pass started", "blocks", len(blocks))
		out, err := next(ctx, blocks)
		logger.Debug("composition pass finished", "blocks", len(blocks), "duration", time.Since(start))
		return out, err
	}
}

// PerformanceGuard warns when a pass exceeds PerformanceBudget. It never
// cancels the pass; the budget is advisory.
func PerformanceGuard(logger *slog.Logger) Middleware {
	return PerformanceGuardWithBudget(logger, PerformanceBudget)
}

// PerformanceGuardWithBudget is PerformanceGuard with a custom budget.
func PerformanceGuardWithBudget(logger *slog.Logger, budget time.Duration) Middleware {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return func(ctx context.Context, blocks []core.Block, next Next) ([]core.Block, error) {
		start := time.Now()
		out, err := next(ctx, blocks)
		if elapsed := time.Since(start); elapsed > budget {
			logger.Warn("composition pass exceeded budget",
				"duration", elapsed, "budget", budget, "blocks", len(blocks))
		}
		return out, err
	}
}

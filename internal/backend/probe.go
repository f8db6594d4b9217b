package backend

import (
	"context"
	"time"

	"github.com/cloudwego/eino/components/model"
	"go.uber.org/zap"
)

// SelectConfig feeds startup probing.
type SelectConfig struct {
	// ChatModel is the live client, nil when credentials are absent.
	ChatModel model.ChatModel
	// Binary and Timeout configure the subprocess fallback.
	Binary  string
	Timeout time.Duration
	// Seed drives the scripted stand-in's latency source.
	Seed int64
}

// Select probes live, then subprocess, then settles on the scripted
// stand-in. It runs exactly once per process; the returned Selection is
// immutable and injected into every consumer, so backend choice stays
// stable for the whole run.
func Select(ctx context.Context, cfg SelectConfig, logger *zap.Logger) *Selection {
	if cfg.ChatModel != nil {
		live, err := NewLive(ctx, cfg.ChatModel)
		if err != nil {
			logger.Warn("live backend unavailable", zap.Error(err))
		} else if err := live.Probe(ctx); err == nil {
			logger.Info("generation backend selected", zap.String("method", string(MethodLive)))
			return NewSelection(live)
		} else {
			logger.Warn("live backend probe failed", zap.Error(err))
		}
	} else {
		logger.Info("live backend not configured, skipping probe")
	}

	sub := NewSubprocess(cfg.Binary, cfg.Timeout)
	if err := sub.Probe(ctx); err == nil {
		logger.Info("generation backend selected", zap.String("method", string(MethodSubprocess)))
		return NewSelection(sub)
	} else {
		logger.Warn("subprocess backend probe failed", zap.Error(err))
	}

	logger.Info("generation backend selected", zap.String("method", string(MethodScripted)))
	return NewSelection(NewScripted(cfg.Seed))
}

package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/h204812/meltpoint/internal/model"
	"github.com/h204812/meltpoint/internal/store"
)

// initStore opens the configured run-history backend.
func initStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
}

// recordRun persists a stage invocation. History is operator visibility,
// not pipeline state: an unavailable store is logged and the stage result
// stands.
func recordRun(ctx context.Context, run *model.Run) {
	st, err := initStore(ctx)
	if err != nil {
		zap.L().Warn("run history unavailable", zap.Error(err))
		return
	}
	defer st.Close() //nolint:errcheck

	if err := st.Migrate(ctx); err != nil {
		zap.L().Warn("run history migrate failed", zap.Error(err))
		return
	}
	if err := st.RecordRun(ctx, run); err != nil {
		zap.L().Warn("record run failed", zap.Error(err))
	}
}

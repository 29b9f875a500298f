// Package store persists pipeline run history for operator visibility.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/h204812/meltpoint/internal/model"
	"github.com/h204812/meltpoint/internal/table"
)

// Filter specifies criteria for listing runs.
type Filter struct {
	Stage model.Stage
	Limit int
}

// Store defines the run-history persistence interface.
type Store interface {
	RecordRun(ctx context.Context, run *model.Run) error
	ListRuns(ctx context.Context, filter Filter) ([]model.Run, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver. SQLite takes a file path
// as its DSN; Postgres takes a connection URL.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite":
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, dsn)
	default:
		return nil, eris.Wrapf(table.ErrInvalidConfiguration, "store: unknown driver %q", driver)
	}
}

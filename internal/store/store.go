// Package store persists scheduling runs. It defines the Store interface
// and a SQLite implementation, following the teacher codebase's
// database/sql + modernc.org/sqlite pattern.
package store

import (
	"context"

	"github.com/kjorgen/schedcore/pkg/model"
)

// Store defines the persistence layer for schedcore runs.
type Store interface {
	SaveRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
	ListRuns(ctx context.Context, opts model.ListOptions) ([]*model.Run, int, error)

	Close() error
	Migrate(ctx context.Context) error
}

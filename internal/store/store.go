// Package store persists settings profiles and the conversion history.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/asselect/internal/model"
	"github.com/sells-group/asselect/internal/settings"
)

// ErrNotFound is returned when a named record does not exist.
var ErrNotFound = eris.New("store: not found")

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status  model.RunStatus `json:"status,omitempty"`
	Profile string          `json:"profile,omitempty"`
	Limit   int             `json:"limit,omitempty"`
	Offset  int             `json:"offset,omitempty"`
}

// Store defines the persistence interface.
type Store interface {
	// Profiles
	SaveProfile(ctx context.Context, name string, s settings.Settings) (*model.Profile, error)
	GetProfile(ctx context.Context, name string) (*model.Profile, error)
	ListProfiles(ctx context.Context) ([]model.Profile, error)
	DeleteProfile(ctx context.Context, name string) error

	// Runs
	CreateRun(ctx context.Context, run *model.Run) error
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open returns a migrated store for the given driver ("sqlite" or
// "postgres").
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	var (
		st  Store
		err error
	)
	switch driver {
	case "", "sqlite":
		st, err = NewSQLite(dsn)
	case "postgres":
		st, err = NewPostgres(ctx, dsn, nil)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

func validProfileName(name string) error {
	if name == "" {
		return eris.New("store: profile name required")
	}
	return nil
}

func listLimit(filter RunFilter) int {
	if filter.Limit <= 0 {
		return 100
	}
	return filter.Limit
}

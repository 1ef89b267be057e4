// Package sqlite provides the public constructor for the SQLite entry
// store while keeping implementation details internal.
package sqlite

import (
	"log/slog"

	"github.com/mesh-intelligence/gentry/internal/sqlite"
	"github.com/mesh-intelligence/gentry/pkg/types"
)

// NewBackend creates a SQLite entry store that reads and writes entries
// against profile. Stored elements the profile does not declare are kept
// verbatim. The store is not attached; call Attach with a Config.
//
// Example:
//
//	profile, _ := extensions.NewProfile()
//	store := sqlite.NewBackend(profile, nil)
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".gentry-db",
//	})
//	defer store.Detach()
func NewBackend(profile *types.Profile, logger *slog.Logger) types.Store {
	if logger == nil {
		return sqlite.NewBackend(profile)
	}
	return sqlite.NewBackend(profile, sqlite.WithLogger(logger))
}

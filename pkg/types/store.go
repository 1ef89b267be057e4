package types

import "errors"

// Store defines backend-agnostic access to stored entries. Callers attach
// to a backend, use the entry table, and detach when done.
type Store interface {
	// Entries returns the entry table.
	// Returns ErrStoreDetached if the store is not attached.
	Entries() (EntryTable, error)

	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, table operations return ErrStoreDetached.
	Detach() error
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

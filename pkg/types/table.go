package types

import "errors"

// EntryTable provides CRUD operations over stored entries.
type EntryTable interface {
	// Get retrieves the entry with the given ID.
	// Returns ErrNotFound if no entry exists with that ID.
	Get(id string) (*Entry, error)

	// Set creates or replaces an entry. When both id and the entry's ID are
	// empty a urn:uuid ID is generated. Returns the ID used.
	Set(id string, e *Entry) (string, error)

	// Delete removes the entry with the given ID.
	// Returns ErrNotFound if no entry exists with that ID.
	Delete(id string) error

	// Fetch returns the entries matching every key in the filter. An empty
	// filter returns every entry.
	Fetch(filter Filter) ([]*Entry, error)
}

// Filter selects entries in EntryTable.Fetch.
type Filter map[string]string

// Filter keys.
const (
	FilterKind   = "kind"   // entry type
	FilterScheme = "scheme" // category scheme; pair with FilterTerm
	FilterTerm   = "term"   // category term
	FilterTitle  = "title"  // exact title
)

// Table operation errors.
var (
	ErrNotFound      = errors.New("entry not found")
	ErrInvalidID     = errors.New("invalid entry ID")
	ErrInvalidData   = errors.New("invalid entry data")
	ErrInvalidFilter = errors.New("invalid filter key")
)

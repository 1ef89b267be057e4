// Package sqlite implements the entry store on SQLite, with entries.jsonl
// as the source of truth. SQLite is a query index rebuilt from the JSONL
// file on every attach; writes go to both.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/gentry/internal/atom"
	"github.com/mesh-intelligence/gentry/pkg/types"
)

// dbFile is the SQLite database inside the data directory.
const dbFile = "gentry.db"

var _ types.Store = (*Backend)(nil)

// Backend implements types.Store.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	entries  *entryTable

	profile *types.Profile
	decoder *atom.Decoder
	encoder *atom.Encoder
	logger  *slog.Logger
	metrics *Metrics

	// Sync strategy state.
	syncStrategy  string
	pendingWrites int // writes not yet persisted to entries.jsonl

	// Lines of entries.jsonl that did not load; written back verbatim.
	quarantined []json.RawMessage
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) { b.logger = l }
}

// WithMetrics sets the store metrics.
func WithMetrics(m *Metrics) Option {
	return func(b *Backend) { b.metrics = m }
}

// WithCodecMetrics sets the metrics passed to the document codec.
func WithCodecMetrics(m *atom.Metrics) Option {
	return func(b *Backend) {
		b.decoder.Metrics = m
		b.encoder.Metrics = m
	}
}

// NewBackend creates a backend that reads and writes entries against
// profile. The backend is not attached; call Attach with a Config.
func NewBackend(profile *types.Profile, opts ...Option) *Backend {
	b := &Backend{
		profile: profile,
		logger:  slog.Default(),
		encoder: &atom.Encoder{},
	}
	// Stored documents were written by this store, so anything the profile
	// no longer declares is kept rather than lost.
	b.decoder = &atom.Decoder{Profile: profile, Policy: atom.PolicyPreserve}
	for _, opt := range opts {
		opt(b)
	}
	b.decoder.Logger = b.logger
	return b
}

// Entries returns the entry table.
// Returns ErrStoreDetached if the backend is not attached.
func (b *Backend) Entries() (types.EntryTable, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return b.entries, nil
}

// Attach initializes the backend with the given configuration. It creates
// DataDir if needed, builds a fresh SQLite schema and loads entries.jsonl.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}

	dbPath := filepath.Join(dataDir, dbFile)
	// The database is a derived index; start from an empty one.
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	// One connection keeps per-connection pragmas in force and serializes
	// writers the way SQLite does anyway.
	db.SetMaxOpenConns(1)
	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}

	if err := initJSONLFile(dataDir); err != nil {
		db.Close()
		return err
	}
	res, err := b.loadJSONL(db, dataDir)
	if err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	config.DataDir = dataDir
	b.db = db
	b.config = config
	b.syncStrategy = config.EffectiveSyncStrategy()
	b.pendingWrites = 0
	b.quarantined = res.quarantined
	b.entries = &entryTable{backend: b}
	b.attached = true

	b.metrics.loaded(res.loaded)
	if len(res.quarantined) > 0 {
		b.logger.Warn("entries.jsonl has records that did not load; they are kept as is",
			"data_dir", dataDir,
			"records", len(res.quarantined))
	}
	b.logger.Debug("store attached",
		"data_dir", dataDir,
		"entries", res.loaded,
		"sync_strategy", b.syncStrategy)
	return nil
}

// Detach flushes pending writes and closes the database. After Detach, all
// operations return ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if err := b.flushPendingWritesLocked(); err != nil {
		return fmt.Errorf("flush pending writes: %w", err)
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.entries = nil
	b.quarantined = nil
	b.logger.Debug("store detached", "data_dir", b.config.DataDir)
	return nil
}

func createSchema(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enabling foreign keys: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}

// newEntryID returns a urn:uuid ID built on a UUID v7.
func newEntryID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fall back to v4 if v7 generation fails.
		return "urn:uuid:" + uuid.New().String()
	}
	return "urn:uuid:" + id.String()
}

// Sync strategy methods.

// shouldPersistImmediately reports whether writes rewrite entries.jsonl
// right away.
func (b *Backend) shouldPersistImmediately() bool {
	return b.syncStrategy == types.SyncImmediate || b.syncStrategy == ""
}

// afterWriteLocked persists or queues a completed write. The caller must
// hold b.mu for writing.
func (b *Backend) afterWriteLocked() error {
	if b.shouldPersistImmediately() {
		return b.persistEntriesLocked()
	}
	b.pendingWrites++
	return nil
}

// flushPendingWritesLocked persists queued writes. entries.jsonl is written
// whole, so any number of queued writes costs one rewrite. The caller must
// hold b.mu for writing.
func (b *Backend) flushPendingWritesLocked() error {
	if b.pendingWrites == 0 {
		return nil
	}
	if err := b.persistEntriesLocked(); err != nil {
		// Keep the queue so a later Detach can retry.
		return err
	}
	b.pendingWrites = 0
	return nil
}

package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mesh-intelligence/gentry/pkg/types"
)

// entryTable implements types.EntryTable over the entries and
// entry_categories tables.
type entryTable struct {
	backend *Backend
}

// Get retrieves an entry by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *entryTable) Get(id string) (e *types.Entry, err error) {
	defer func() { t.backend.metrics.op("get", err) }()
	if id == "" {
		return nil, types.ErrInvalidID
	}
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	var doc string
	err = b.db.QueryRow("SELECT document FROM entries WHERE entry_id = ?", id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying entry: %w", err)
	}
	return t.decode(id, doc)
}

// Set creates or replaces an entry. The id argument wins over e.ID; when
// both are empty a new urn:uuid ID is generated. Set stamps Updated, writes
// the ID back to e and marks it clean. Entries that fail validation against
// their owner's declarations are rejected.
func (t *entryTable) Set(id string, e *types.Entry) (_ string, err error) {
	defer func() { t.backend.metrics.op("set", err) }()
	if e == nil {
		return "", types.ErrInvalidData
	}
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return "", types.ErrStoreDetached
	}
	if e.Profile() != b.profile {
		return "", fmt.Errorf("%w: entry was built with another profile", types.ErrInvalidData)
	}

	if id == "" {
		id = e.ID
	}
	if id == "" {
		id = newEntryID()
	}

	// Work on a copy so a failed write leaves e untouched.
	staged := types.NewEntryFrom(e.Owner(), e)
	staged.ID = id
	staged.Updated = time.Now().UTC()

	var buf strings.Builder
	if err := b.encoder.Encode(&buf, staged); err != nil {
		return "", fmt.Errorf("%w: %w", types.ErrInvalidData, err)
	}

	tx, err := b.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()
	if err := insertEntry(tx, staged, buf.String()); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing entry: %w", err)
	}

	e.ID = staged.ID
	e.Updated = staged.Updated
	e.MarkClean()

	if err := b.afterWriteLocked(); err != nil {
		return id, fmt.Errorf("persisting %s: %w", entriesFile, err)
	}
	return id, nil
}

// Delete removes an entry by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *entryTable) Delete(id string) (err error) {
	defer func() { t.backend.metrics.op("delete", err) }()
	if id == "" {
		return types.ErrInvalidID
	}
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entry_categories WHERE entry_id = ?", id); err != nil {
		return fmt.Errorf("deleting categories: %w", err)
	}
	res, err := tx.Exec("DELETE FROM entries WHERE entry_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return types.ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}

	if err := b.afterWriteLocked(); err != nil {
		return fmt.Errorf("persisting %s: %w", entriesFile, err)
	}
	return nil
}

// Fetch returns the entries matching every key in filter, ordered by ID.
// Returns ErrInvalidFilter for unknown keys.
func (t *entryTable) Fetch(filter types.Filter) (_ []*types.Entry, err error) {
	defer func() { t.backend.metrics.op("fetch", err) }()
	query, args, err := buildFetchQuery(filter)
	if err != nil {
		return nil, err
	}

	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	type row struct{ id, doc string }
	var found []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.doc); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*types.Entry, 0, len(found))
	for _, r := range found {
		e, err := t.decode(r.id, r.doc)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// buildFetchQuery turns a filter into a SELECT over entries.
func buildFetchQuery(filter types.Filter) (string, []any, error) {
	var (
		where []string
		args  []any
	)
	for key := range filter {
		switch key {
		case types.FilterKind, types.FilterScheme, types.FilterTerm, types.FilterTitle:
		default:
			return "", nil, fmt.Errorf("%w: %q", types.ErrInvalidFilter, key)
		}
	}
	if v, ok := filter[types.FilterKind]; ok {
		where = append(where, "e.kind = ?")
		args = append(args, v)
	}
	if v, ok := filter[types.FilterTitle]; ok {
		where = append(where, "e.title = ?")
		args = append(args, v)
	}

	// Scheme and term must match on the same category row.
	var catWhere []string
	if v, ok := filter[types.FilterScheme]; ok {
		catWhere = append(catWhere, "c.scheme = ?")
		args = append(args, v)
	}
	if v, ok := filter[types.FilterTerm]; ok {
		catWhere = append(catWhere, "c.term = ?")
		args = append(args, v)
	}
	if len(catWhere) > 0 {
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM entry_categories c WHERE c.entry_id = e.entry_id AND %s)",
			strings.Join(catWhere, " AND ")))
	}

	query := "SELECT e.entry_id, e.document FROM entries e"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY e.entry_id"
	return query, args, nil
}

func (t *entryTable) decode(id, doc string) (*types.Entry, error) {
	e, err := t.backend.decoder.DecodeBytes([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("decoding entry %s: %w", id, err)
	}
	if e.ID == "" {
		e.ID = id
	}
	return e, nil
}

// persistEntriesLocked rewrites entries.jsonl from the entries table,
// followed by the quarantined lines. The caller must hold b.mu.
func (b *Backend) persistEntriesLocked() error {
	rows, err := b.db.Query(
		"SELECT entry_id, kind, title, updated_at, document FROM entries ORDER BY entry_id")
	if err != nil {
		return fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var r entryJSON
		if err := rows.Scan(&r.EntryID, &r.Kind, &r.Title, &r.UpdatedAt, &r.Document); err != nil {
			return fmt.Errorf("scanning entry: %w", err)
		}
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshaling entry %s: %w", r.EntryID, err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	records = append(records, b.quarantined...)

	if err := writeJSONL(filepath.Join(b.config.DataDir, entriesFile), records); err != nil {
		return err
	}
	b.metrics.flushed()
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}


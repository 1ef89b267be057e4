package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/gentry/pkg/types"
)

// loadResult is what loadJSONL read from entries.jsonl.
type loadResult struct {
	loaded int

	// quarantined holds lines that could not be loaded, verbatim and in
	// file order. They are written back on every rewrite of entries.jsonl
	// so a record this build cannot read is never dropped.
	quarantined []json.RawMessage
}

// loadJSONL reads entries.jsonl and inserts every entry into db. Loading is
// transactional: all succeed or the database remains empty. Malformed lines
// and documents that no longer decode are logged and quarantined; unknown
// JSON fields are ignored.
func (b *Backend) loadJSONL(db *sql.DB, dataDir string) (loadResult, error) {
	var res loadResult
	lines, err := readJSONLLines(filepath.Join(dataDir, entriesFile))
	if err != nil {
		return res, err
	}

	tx, err := db.Begin()
	if err != nil {
		return res, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	quarantine := func(line json.RawMessage, msg string, args ...any) {
		b.logger.Warn(msg, args...)
		res.quarantined = append(res.quarantined, line)
	}
	for i, line := range lines {
		var row entryJSON
		if err := json.Unmarshal(line, &row); err != nil {
			quarantine(line, "keeping malformed entry record", "line", i+1, "error", err)
			continue
		}
		e, err := b.decoder.DecodeBytes([]byte(row.Document))
		if err != nil {
			quarantine(line, "keeping undecodable entry", "entry_id", row.EntryID, "error", err)
			continue
		}
		if e.ID == "" {
			e.ID = row.EntryID
		}
		if e.ID == "" {
			quarantine(line, "keeping entry without ID", "line", i+1)
			continue
		}
		if err := insertEntry(tx, e, row.Document); err != nil {
			quarantine(line, "keeping unindexable entry", "entry_id", e.ID, "error", err)
			continue
		}
		res.loaded++
	}

	if err := tx.Commit(); err != nil {
		return loadResult{}, fmt.Errorf("committing load transaction: %w", err)
	}
	return res, nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// insertEntry upserts e and replaces its category rows. document is the
// encoded form of e.
func insertEntry(tx execer, e *types.Entry, document string) error {
	_, err := tx.Exec(
		`INSERT INTO entries (entry_id, kind, title, updated_at, document)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(entry_id) DO UPDATE SET
			kind = excluded.kind,
			title = excluded.title,
			updated_at = excluded.updated_at,
			document = excluded.document`,
		e.ID, string(e.Owner()), e.Title, formatTime(e.Updated), document)
	if err != nil {
		return fmt.Errorf("upserting entry: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM entry_categories WHERE entry_id = ?", e.ID); err != nil {
		return fmt.Errorf("clearing categories: %w", err)
	}

	cats := e.Categories().All()
	if len(cats) == 0 {
		return nil
	}
	cols := []string{"entry_id", "position", "scheme", "term", "label"}
	placeholders := make([]string, len(cols))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf("INSERT INTO entry_categories (%s) VALUES (%s)",
		joinColumns(cols), joinColumns(placeholders))
	for i, c := range cats {
		if _, err := tx.Exec(insertSQL, e.ID, i, c.Scheme, c.Term, c.Label); err != nil {
			return fmt.Errorf("inserting category %s: %w", c, err)
		}
	}
	return nil
}

// joinColumns joins column names with commas.
func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

package sqlite

// Schema DDL. The database is rebuilt from entries.jsonl on every attach.
const (
	createEntries = `CREATE TABLE entries (
    entry_id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    title TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    document TEXT NOT NULL
);`

	createEntryCategories = `CREATE TABLE entry_categories (
    entry_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    scheme TEXT NOT NULL,
    term TEXT NOT NULL,
    label TEXT NOT NULL,
    PRIMARY KEY (entry_id, position),
    FOREIGN KEY (entry_id) REFERENCES entries(entry_id) ON DELETE CASCADE
);`
)

// Index DDL for the filters Fetch supports.
const (
	idxEntriesKind           = `CREATE INDEX idx_entries_kind ON entries(kind);`
	idxEntriesTitle          = `CREATE INDEX idx_entries_title ON entries(title);`
	idxEntryCategoriesTerm   = `CREATE INDEX idx_entry_categories_term ON entry_categories(term, scheme);`
	idxEntryCategoriesScheme = `CREATE INDEX idx_entry_categories_scheme ON entry_categories(scheme);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createEntries,
	createEntryCategories,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxEntriesKind,
	idxEntriesTitle,
	idxEntryCategoriesTerm,
	idxEntryCategoriesScheme,
}

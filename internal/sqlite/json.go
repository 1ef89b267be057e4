package sqlite

// entryJSON is one line of entries.jsonl. The document is authoritative;
// the other fields are copies kept so the file can be read without an XML
// parser.
type entryJSON struct {
	EntryID   string `json:"entry_id"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	UpdatedAt string `json:"updated_at"`
	Document  string `json:"document"`
}

// Package history provides SQLite storage for registry fetch and download
// history.
package history

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Fetch history table
-- Tracks registry lookups per SIREN and data kind
CREATE TABLE IF NOT EXISTS fetch_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    fetch_type TEXT NOT NULL,          -- 'company', 'financials' or 'documents'
    siren TEXT NOT NULL,               -- 9 digits
    outcome TEXT NOT NULL,             -- 'ok' or 'error'
    detail TEXT,                       -- error text or extra context
    fetched_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_fetch_history_siren
    ON fetch_history(siren, fetch_type);

-- Downloads table
-- Tracks PDF documents written to disk
CREATE TABLE IF NOT EXISTS downloads (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    siren TEXT NOT NULL,
    document_id TEXT NOT NULL,         -- registry document ID
    document_type TEXT NOT NULL,       -- 'bilan' or 'acte'
    file_path TEXT NOT NULL,
    downloaded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(document_id, file_path)
);

CREATE INDEX IF NOT EXISTS idx_downloads_siren
    ON downloads(siren);

-- Metadata table
-- Stores key-value metadata about fetch runs
CREATE TABLE IF NOT EXISTS fetch_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}

package history

import (
	"database/sql"
	"fmt"
	"time"
)

// FetchType represents the kind of registry lookup.
type FetchType string

const (
	FetchTypeCompany    FetchType = "company"
	FetchTypeFinancials FetchType = "financials"
	FetchTypeDocuments  FetchType = "documents"
)

// DocumentType represents the kind of downloaded document.
type DocumentType string

const (
	DocumentTypeBilan DocumentType = "bilan"
	DocumentTypeActe  DocumentType = "acte"
)

// FetchRecord is one registry lookup.
type FetchRecord struct {
	ID        int64
	FetchType FetchType
	Siren     string
	Outcome   string
	Detail    sql.NullString
	FetchedAt time.Time
}

// DownloadRecord is one PDF written to disk.
type DownloadRecord struct {
	ID           int64
	Siren        string
	DocumentID   string
	DocumentType DocumentType
	FilePath     string
	DownloadedAt time.Time
}

// Ledger manages fetch and download history operations.
type Ledger struct {
	conn *Connection
}

// NewLedger creates a new Ledger instance.
func NewLedger(conn *Connection) *Ledger {
	return &Ledger{conn: conn}
}

// RecordFetch records a registry lookup.
func (l *Ledger) RecordFetch(fetchType FetchType, siren, outcome, detail string) error {
	query := `
		INSERT INTO fetch_history (fetch_type, siren, outcome, detail)
		VALUES (?, ?, ?, ?)
	`

	var detailValue any
	if detail != "" {
		detailValue = detail
	}

	if _, err := l.conn.Exec(query, string(fetchType), siren, outcome, detailValue); err != nil {
		return fmt.Errorf("failed to record fetch: %w", err)
	}
	return nil
}

// RecordDownload records a PDF download.
// Re-downloading the same document to the same path refreshes the row.
func (l *Ledger) RecordDownload(record DownloadRecord) error {
	query := `
		INSERT INTO downloads (siren, document_id, document_type, file_path)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(document_id, file_path) DO UPDATE SET
			downloaded_at = CURRENT_TIMESTAMP
	`

	_, err := l.conn.Exec(query,
		record.Siren,
		record.DocumentID,
		string(record.DocumentType),
		record.FilePath,
	)
	if err != nil {
		return fmt.Errorf("failed to record download: %w", err)
	}
	return nil
}

// WasFetched checks whether a SIREN was ever looked up for a data kind.
func (l *Ledger) WasFetched(fetchType FetchType, siren string) (bool, error) {
	query := `
		SELECT COUNT(*) FROM fetch_history
		WHERE fetch_type = ? AND siren = ?
	`

	var count int
	if err := l.conn.QueryRow(query, string(fetchType), siren).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check fetch history: %w", err)
	}
	return count > 0, nil
}

// FetchesBySiren retrieves all lookups recorded for a SIREN, newest first.
func (l *Ledger) FetchesBySiren(siren string) ([]FetchRecord, error) {
	query := `
		SELECT id, fetch_type, siren, outcome, detail, fetched_at
		FROM fetch_history
		WHERE siren = ?
		ORDER BY fetched_at DESC
	`

	rows, err := l.conn.Query(query, siren)
	if err != nil {
		return nil, fmt.Errorf("failed to get fetch records: %w", err)
	}
	defer rows.Close()

	var records []FetchRecord
	for rows.Next() {
		var record FetchRecord
		var fetchTypeStr string

		if err := rows.Scan(
			&record.ID,
			&fetchTypeStr,
			&record.Siren,
			&record.Outcome,
			&record.Detail,
			&record.FetchedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan fetch record: %w", err)
		}

		record.FetchType = FetchType(fetchTypeStr)
		records = append(records, record)
	}

	return records, rows.Err()
}

// DownloadsBySiren retrieves all downloads recorded for a SIREN, newest
// first.
func (l *Ledger) DownloadsBySiren(siren string) ([]DownloadRecord, error) {
	query := `
		SELECT id, siren, document_id, document_type, file_path, downloaded_at
		FROM downloads
		WHERE siren = ?
		ORDER BY downloaded_at DESC
	`

	rows, err := l.conn.Query(query, siren)
	if err != nil {
		return nil, fmt.Errorf("failed to get download records: %w", err)
	}
	defer rows.Close()

	var records []DownloadRecord
	for rows.Next() {
		var record DownloadRecord
		var documentTypeStr string

		if err := rows.Scan(
			&record.ID,
			&record.Siren,
			&record.DocumentID,
			&documentTypeStr,
			&record.FilePath,
			&record.DownloadedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan download record: %w", err)
		}

		record.DocumentType = DocumentType(documentTypeStr)
		records = append(records, record)
	}

	return records, rows.Err()
}

// IsDownloaded checks whether a document has already been written to disk.
func (l *Ledger) IsDownloaded(documentID string) (bool, error) {
	query := `
		SELECT COUNT(*) FROM downloads
		WHERE document_id = ?
	`

	var count int
	if err := l.conn.QueryRow(query, documentID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check download history: %w", err)
	}
	return count > 0, nil
}

// Stats represents ledger statistics.
type Stats struct {
	TotalFetches   int
	TotalCompanies int
	TotalDownloads int
	LastFetch      sql.NullString
}

// GetStats retrieves ledger statistics.
func (l *Ledger) GetStats() (*Stats, error) {
	var stats Stats

	err := l.conn.QueryRow(`SELECT COUNT(*) FROM fetch_history`).Scan(&stats.TotalFetches)
	if err != nil {
		return nil, fmt.Errorf("failed to get fetch count: %w", err)
	}

	err = l.conn.QueryRow(`SELECT COUNT(DISTINCT siren) FROM fetch_history`).Scan(&stats.TotalCompanies)
	if err != nil {
		return nil, fmt.Errorf("failed to get company count: %w", err)
	}

	err = l.conn.QueryRow(`SELECT COUNT(*) FROM downloads`).Scan(&stats.TotalDownloads)
	if err != nil {
		return nil, fmt.Errorf("failed to get download count: %w", err)
	}

	err = l.conn.QueryRow(`SELECT MAX(fetched_at) FROM fetch_history`).Scan(&stats.LastFetch)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last fetch time: %w", err)
	}

	return &stats, nil
}

// GetMetadata retrieves a metadata value.
func (l *Ledger) GetMetadata(key string) (string, error) {
	query := `SELECT value FROM fetch_metadata WHERE key = ?`

	var value string
	err := l.conn.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}

	return value, nil
}

// SetMetadata sets a metadata value.
func (l *Ledger) SetMetadata(key, value string) error {
	query := `
		INSERT INTO fetch_metadata (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := l.conn.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}
	return nil
}

package history

import (
	"path/filepath"
	"testing"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()

	conn, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return NewLedger(conn)
}

func TestRecordFetch(t *testing.T) {
	ledger := openTestLedger(t)

	if err := ledger.RecordFetch(FetchTypeCompany, "552032534", "ok", ""); err != nil {
		t.Fatalf("RecordFetch() error: %v", err)
	}
	if err := ledger.RecordFetch(FetchTypeFinancials, "552032534", "error", "status 404"); err != nil {
		t.Fatalf("RecordFetch() error: %v", err)
	}

	fetched, err := ledger.WasFetched(FetchTypeCompany, "552032534")
	if err != nil {
		t.Fatalf("WasFetched() error: %v", err)
	}
	if !fetched {
		t.Error("WasFetched() = false, expected true")
	}

	fetched, err = ledger.WasFetched(FetchTypeDocuments, "552032534")
	if err != nil {
		t.Fatalf("WasFetched() error: %v", err)
	}
	if fetched {
		t.Error("WasFetched() = true for type never fetched")
	}

	records, err := ledger.FetchesBySiren("552032534")
	if err != nil {
		t.Fatalf("FetchesBySiren() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("FetchesBySiren() returned %d records, expected 2", len(records))
	}

	for _, record := range records {
		if record.FetchType == FetchTypeFinancials {
			if !record.Detail.Valid || record.Detail.String != "status 404" {
				t.Errorf("financials record detail = %v, expected 'status 404'", record.Detail)
			}
		}
	}
}

func TestRecordDownload(t *testing.T) {
	ledger := openTestLedger(t)

	record := DownloadRecord{
		Siren:        "552032534",
		DocumentID:   "B1",
		DocumentType: DocumentTypeBilan,
		FilePath:     "/tmp/bilan_2023.pdf",
	}
	if err := ledger.RecordDownload(record); err != nil {
		t.Fatalf("RecordDownload() error: %v", err)
	}

	// Same document and path again only refreshes the timestamp.
	if err := ledger.RecordDownload(record); err != nil {
		t.Fatalf("RecordDownload() repeat error: %v", err)
	}

	downloads, err := ledger.DownloadsBySiren("552032534")
	if err != nil {
		t.Fatalf("DownloadsBySiren() error: %v", err)
	}
	if len(downloads) != 1 {
		t.Fatalf("DownloadsBySiren() returned %d records, expected 1", len(downloads))
	}
	if downloads[0].DocumentType != DocumentTypeBilan {
		t.Errorf("document type = %q, expected %q", downloads[0].DocumentType, DocumentTypeBilan)
	}

	downloaded, err := ledger.IsDownloaded("B1")
	if err != nil {
		t.Fatalf("IsDownloaded() error: %v", err)
	}
	if !downloaded {
		t.Error("IsDownloaded(B1) = false, expected true")
	}
}

func TestGetStats(t *testing.T) {
	ledger := openTestLedger(t)

	if err := ledger.RecordFetch(FetchTypeCompany, "552032534", "ok", ""); err != nil {
		t.Fatal(err)
	}
	if err := ledger.RecordFetch(FetchTypeCompany, "732829320", "ok", ""); err != nil {
		t.Fatal(err)
	}
	if err := ledger.RecordDownload(DownloadRecord{
		Siren:        "552032534",
		DocumentID:   "A1",
		DocumentType: DocumentTypeActe,
		FilePath:     "/tmp/statuts.pdf",
	}); err != nil {
		t.Fatal(err)
	}

	stats, err := ledger.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error: %v", err)
	}

	if stats.TotalFetches != 2 {
		t.Errorf("TotalFetches = %d, expected 2", stats.TotalFetches)
	}
	if stats.TotalCompanies != 2 {
		t.Errorf("TotalCompanies = %d, expected 2", stats.TotalCompanies)
	}
	if stats.TotalDownloads != 1 {
		t.Errorf("TotalDownloads = %d, expected 1", stats.TotalDownloads)
	}
	if !stats.LastFetch.Valid {
		t.Error("LastFetch should be set")
	}
}

func TestMetadata(t *testing.T) {
	ledger := openTestLedger(t)

	if err := ledger.SetMetadata("last_run", "2025-01-15"); err != nil {
		t.Fatalf("SetMetadata() error: %v", err)
	}
	if err := ledger.SetMetadata("last_run", "2025-02-01"); err != nil {
		t.Fatalf("SetMetadata() update error: %v", err)
	}

	value, err := ledger.GetMetadata("last_run")
	if err != nil {
		t.Fatalf("GetMetadata() error: %v", err)
	}
	if value != "2025-02-01" {
		t.Errorf("GetMetadata() = %q, expected %q", value, "2025-02-01")
	}

	missing, err := ledger.GetMetadata("never_set")
	if err != nil {
		t.Fatalf("GetMetadata() error: %v", err)
	}
	if missing != "" {
		t.Errorf("GetMetadata() for unset key = %q, expected empty", missing)
	}
}

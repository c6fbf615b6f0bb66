package pathutil

import (
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	resolver := New(Config{})

	if got := resolver.GetDownloadsRoot(); got != "downloads" {
		t.Errorf("GetDownloadsRoot() = %q, expected %q", got, "downloads")
	}

	expected := filepath.Join("downloads", ".history", "rne.db")
	if got := resolver.GetDatabasePath(); got != expected {
		t.Errorf("GetDatabasePath() = %q, expected %q", got, expected)
	}
}

func TestGetCompanyDir(t *testing.T) {
	resolver := New(Config{DownloadsRoot: "/data/rne"})

	dir, err := resolver.GetCompanyDir("552032534")
	if err != nil {
		t.Fatalf("GetCompanyDir() error: %v", err)
	}
	if expected := filepath.Join("/data/rne", "552032534"); dir != expected {
		t.Errorf("GetCompanyDir() = %q, expected %q", dir, expected)
	}

	if _, err := resolver.GetCompanyDir("not-a-siren"); err == nil {
		t.Error("GetCompanyDir() expected error for invalid SIREN")
	}
}

func TestGetDocumentPath(t *testing.T) {
	resolver := New(Config{DownloadsRoot: "/data/rne"})

	path, err := resolver.GetDocumentPath("552032534", "actes", "statuts_2022.pdf")
	if err != nil {
		t.Fatalf("GetDocumentPath() error: %v", err)
	}
	expected := filepath.Join("/data/rne", "552032534", "actes", "statuts_2022.pdf")
	if path != expected {
		t.Errorf("GetDocumentPath() = %q, expected %q", path, expected)
	}

	if _, err := resolver.GetDocumentPath("552032534", "", "x.pdf"); err == nil {
		t.Error("GetDocumentPath() expected error for empty kind")
	}
}

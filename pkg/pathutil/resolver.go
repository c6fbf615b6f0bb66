// Package pathutil provides centralized path management for downloaded
// documents and the history database.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ouestdata/rne-client/pkg/siren"
)

// PathResolver manages paths for downloaded PDFs and the history database.
type PathResolver struct {
	downloadsRoot string
	databasePath  string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// DownloadsRoot is the root directory for downloaded documents.
	DownloadsRoot string
	// DatabasePath is the path to the SQLite history database file.
	DatabasePath string
}

// New creates a new PathResolver with the given configuration.
// If DownloadsRoot is empty, it defaults to ./downloads.
// If DatabasePath is empty, it defaults to {DownloadsRoot}/.history/rne.db.
func New(config Config) *PathResolver {
	downloadsRoot := config.DownloadsRoot
	if downloadsRoot == "" {
		downloadsRoot = "downloads"
	}

	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(downloadsRoot, ".history", "rne.db")
	}

	return &PathResolver{
		downloadsRoot: downloadsRoot,
		databasePath:  dbPath,
	}
}

// GetDownloadsRoot returns the downloads root directory.
func (p *PathResolver) GetDownloadsRoot() string {
	return p.downloadsRoot
}

// GetDatabasePath returns the history database file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.databasePath
}

// GetCompanyDir returns the download directory for a SIREN.
// Example: downloads/552032534
func (p *PathResolver) GetCompanyDir(sirenCode string) (string, error) {
	validated, err := siren.ValidateSiren(sirenCode)
	if err != nil {
		return "", err
	}
	return filepath.Join(p.downloadsRoot, validated), nil
}

// GetDocumentPath returns the file path for a downloaded document.
// Example: downloads/552032534/actes/statuts_2022.pdf
func (p *PathResolver) GetDocumentPath(sirenCode, kind, fileName string) (string, error) {
	if kind == "" {
		return "", fmt.Errorf("document kind is required")
	}
	companyDir, err := p.GetCompanyDir(sirenCode)
	if err != nil {
		return "", err
	}
	return filepath.Join(companyDir, kind, fileName), nil
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	return p.EnsureDir(filepath.Dir(filePath))
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ouestdata/rne-client/pkg/history"
	"github.com/ouestdata/rne-client/pkg/pathutil"
	"github.com/ouestdata/rne-client/pkg/rne"
)

var (
	downloadType   string
	downloadName   string
	downloadRecord bool
)

// downloadCmd represents the download command.
var downloadCmd = &cobra.Command{
	Use:   "download <siren> <document-id>",
	Short: "Download a filed document as PDF",
	Long: `Download a legal document (acte) or a scanned annual-accounts
filing (bilan) by document ID. Files are written under the downloads
directory, one subdirectory per SIREN.

Example:
  rne-fetch download 552032534 68b5e1c2a94f3c0001d7e210
  rne-fetch download 552032534 68b5e1c2a94f3c0001d7e210 --type bilan --record`,
	Args: cobra.ExactArgs(2),
	Run:  runDownload,
}

func init() {
	downloadCmd.Flags().StringVar(&downloadType, "type", "acte", "document type: acte or bilan")
	downloadCmd.Flags().StringVar(&downloadName, "name", "", "output file name without extension (default: the document ID)")
	downloadCmd.Flags().BoolVar(&downloadRecord, "record", false, "record the download in the history database")
}

func runDownload(cmd *cobra.Command, args []string) {
	cfg, opts, err := loadOptions()
	exitOnError(err, "failed to load configuration")

	sirenCode, documentID := args[0], args[1]

	name := downloadName
	if name == "" {
		name = documentID
	}

	resolver := pathutil.New(pathutil.Config{
		DownloadsRoot: cfg.History.DownloadsDir,
		DatabasePath:  cfg.History.DBPath,
	})

	var (
		path    string
		docType history.DocumentType
	)

	switch downloadType {
	case "acte":
		docType = history.DocumentTypeActe

		client, err := rne.NewActesClient(cmd.Context(), opts, sirenCode)
		exitOnError(err, "failed to initialize documents client")
		defer client.Close()

		dir, err := resolver.GetCompanyDir(client.Siren())
		exitOnError(err, "failed to resolve download directory")

		path, err = client.DownloadPDF(cmd.Context(), documentID, filepath.Join(dir, "actes"), name)
		exitOnError(err, "failed to download document")

	case "bilan":
		docType = history.DocumentTypeBilan

		client, err := rne.NewAnnualAccountsClient(cmd.Context(), opts, sirenCode)
		exitOnError(err, "failed to initialize financial statements client")
		defer client.Close()

		dir, err := resolver.GetCompanyDir(client.Siren())
		exitOnError(err, "failed to resolve download directory")

		path, err = client.DownloadBilanPDF(cmd.Context(), documentID, filepath.Join(dir, "bilans"), name)
		exitOnError(err, "failed to download filing")

	default:
		exitOnError(fmt.Errorf("unknown document type %q", downloadType), "invalid --type")
	}

	if downloadRecord {
		conn, err := history.Open(resolver.GetDatabasePath())
		exitOnError(err, "failed to open history database")
		defer conn.Close()

		ledger := history.NewLedger(conn)
		err = ledger.RecordDownload(history.DownloadRecord{
			Siren:        sirenCode,
			DocumentID:   documentID,
			DocumentType: docType,
			FilePath:     path,
		})
		exitOnError(err, "failed to record download")
	}

	fmt.Printf("Downloaded to %s\n", path)
}

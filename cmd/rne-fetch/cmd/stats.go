package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ouestdata/rne-client/pkg/config"
	"github.com/ouestdata/rne-client/pkg/history"
	"github.com/ouestdata/rne-client/pkg/pathutil"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display fetch and download statistics",
	Long: `Display statistics from the local history database.

Shows:
- Total number of recorded lookups
- Number of distinct companies looked up
- Total number of downloaded documents
- Last lookup timestamp

Example:
  rne-fetch stats`,
	Run: runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	resolver := pathutil.New(pathutil.Config{
		DownloadsRoot: cfg.History.DownloadsDir,
		DatabasePath:  cfg.History.DBPath,
	})

	dbPath := resolver.GetDatabasePath()
	slog.Debug("Opening database", "path", dbPath)

	conn, err := history.Open(dbPath)
	exitOnError(err, "failed to open history database")
	defer conn.Close()

	ledger := history.NewLedger(conn)

	stats, err := ledger.GetStats()
	exitOnError(err, "failed to get statistics")

	fmt.Println("\n=== Fetch Statistics ===")
	fmt.Printf("Total lookups:       %d\n", stats.TotalFetches)
	fmt.Printf("Distinct companies:  %d\n", stats.TotalCompanies)
	fmt.Printf("Downloaded files:    %d\n", stats.TotalDownloads)

	if stats.LastFetch.Valid {
		fmt.Printf("Last lookup:         %s\n", stats.LastFetch.String)
	} else {
		fmt.Printf("Last lookup:         (never)\n")
	}

	fmt.Println()
}

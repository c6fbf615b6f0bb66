package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ouestdata/rne-client/pkg/batch"
	"github.com/ouestdata/rne-client/pkg/history"
	"github.com/ouestdata/rne-client/pkg/pathutil"
	"github.com/ouestdata/rne-client/pkg/referential"
)

var (
	fetchFile        string
	fetchRecord      bool
	fetchReferential string
)

// fetchCmd represents the fetch command.
var fetchCmd = &cobra.Command{
	Use:   "fetch [siren|siret...]",
	Short: "Fetch company records and headline financials",
	Long: `Fetch the company record and the latest financial metrics for one
or more SIREN codes. SIRET codes (14 digits) are reduced to their SIREN.

Identifiers come from the arguments or from a file (one per line, blank
lines and # comments skipped). One failing identifier does not stop the
run.

Example:
  rne-fetch fetch 552032534
  rne-fetch fetch 552032534 732829320
  rne-fetch fetch --file sirens.txt --record`,
	Run: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchFile, "file", "", "file with one SIREN or SIRET per line")
	fetchCmd.Flags().BoolVar(&fetchRecord, "record", false, "record lookups in the history database")
	fetchCmd.Flags().StringVar(&fetchReferential, "referentials", "", "YAML referential file for code labels")
}

func runFetch(cmd *cobra.Command, args []string) {
	cfg, opts, err := loadOptions()
	exitOnError(err, "failed to load configuration")

	inputs := args
	if fetchFile != "" {
		fileInputs, err := batch.ReadIdentifiersFile(fetchFile)
		exitOnError(err, "failed to read identifiers file")
		inputs = append(inputs, fileInputs...)
	}
	if len(inputs) == 0 {
		exitOnError(fmt.Errorf("no identifiers given"), "nothing to fetch")
	}

	var ledger *history.Ledger
	if fetchRecord {
		resolver := pathutil.New(pathutil.Config{
			DownloadsRoot: cfg.History.DownloadsDir,
			DatabasePath:  cfg.History.DBPath,
		})

		conn, err := history.Open(resolver.GetDatabasePath())
		exitOnError(err, "failed to open history database")
		defer conn.Close()

		ledger = history.NewLedger(conn)
	}

	runner := batch.NewRunner(opts, ledger, slog.Default())
	report := runner.Run(cmd.Context(), inputs)

	if fetchReferential != "" {
		resolver, err := referential.NewResolver(fetchReferential)
		exitOnError(err, "failed to load referentials")
		for i := range report.Items {
			report.Items[i].LegalForm = resolver.LegalFormLabel(report.Items[i].LegalForm)
		}
	}

	report.RenderTable(os.Stdout)

	if report.Failed > 0 {
		os.Exit(1)
	}
}

// Package cmd provides CLI commands for rne-fetch.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ouestdata/rne-client/pkg/config"
	"github.com/ouestdata/rne-client/pkg/rne"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "rne-fetch",
	Short: "Fetch French company data from the RNE registry",
	Long: `rne-fetch is a CLI tool that reads company records, annual
financial statements and legal documents from the INPI Registre
National des Entreprises API.

It supports:
- Company lookups by SIREN or SIRET, single or in batch
- Financial metrics extracted from machine-readable filings
- Listing and downloading filed PDF documents
- Tracking lookups and downloads in a SQLite history

Example:
  rne-fetch fetch 552032534
  rne-fetch fetch --file sirens.txt --record
  rne-fetch documents 552032534
  rne-fetch stats`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup logging
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(financialsCmd)
	rootCmd.AddCommand(documentsCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(statsCmd)
}

// Helper function to get config file path.
func getConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "" // Will use default .env loading
}

// loadOptions loads and validates the configuration, returning the API
// client options.
func loadOptions() (*config.Config, rne.Options, error) {
	cfg, err := config.Load(getConfigFile())
	if err != nil {
		return nil, rne.Options{}, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, rne.Options{}, err
	}

	opts := rne.Options{
		BaseURL:  cfg.INPI.BaseURL,
		Username: cfg.INPI.Username,
		Password: cfg.INPI.Password,
		Timeout:  cfg.INPI.Timeout,
	}
	return cfg, opts, nil
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}

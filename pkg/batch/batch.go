// Package batch runs registry lookups for a list of SIREN codes and
// produces a summary report.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ouestdata/rne-client/pkg/history"
	"github.com/ouestdata/rne-client/pkg/rne"
	"github.com/ouestdata/rne-client/pkg/siren"
)

// Item is the outcome of one lookup.
type Item struct {
	// Input is the identifier as read from the source, before
	// normalization.
	Input string
	// Siren is the normalized SIREN, empty when validation failed.
	Siren string

	Name      string
	LegalForm string
	Filings   int
	Revenue   *int64

	Err error
}

// Report aggregates the outcomes of a run.
type Report struct {
	Succeeded int
	Failed    int
	Items     []Item
}

// Runner fetches company data for a list of SIREN codes. One failing item
// does not stop the run.
type Runner struct {
	opts   rne.Options
	ledger *history.Ledger
	logger *slog.Logger
}

// NewRunner creates a Runner. The ledger is optional; pass nil to skip
// history recording.
func NewRunner(opts rne.Options, ledger *history.Ledger, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{opts: opts, ledger: ledger, logger: logger}
}

// ReadIdentifiers reads SIREN or SIRET codes from r, one per line. Blank
// lines and lines starting with # are skipped.
func ReadIdentifiers(r io.Reader) ([]string, error) {
	var identifiers []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		identifiers = append(identifiers, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read identifiers: %w", err)
	}

	return identifiers, nil
}

// ReadIdentifiersFile reads SIREN or SIRET codes from a file.
func ReadIdentifiersFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open identifiers file: %w", err)
	}
	defer f.Close()

	return ReadIdentifiers(f)
}

// normalize turns an input identifier into a SIREN. 14-digit inputs are
// treated as SIRET codes and reduced to their SIREN part.
func normalize(input string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, input)

	if len(digits) == 14 {
		return siren.SirenFromSiret(input)
	}
	return siren.ValidateSiren(input)
}

// Run looks up every identifier and returns the aggregated report. Items
// keep the input order.
func (r *Runner) Run(ctx context.Context, inputs []string) *Report {
	report := &Report{Items: make([]Item, 0, len(inputs))}

	for _, input := range inputs {
		item := r.lookup(ctx, input)
		if item.Err != nil {
			report.Failed++
			r.logger.Warn("lookup failed", "input", input, "error", item.Err)
		} else {
			report.Succeeded++
			r.logger.Info("lookup done", "siren", item.Siren, "name", item.Name)
		}
		report.Items = append(report.Items, item)
	}

	return report
}

// RunFile reads identifiers from a file and runs the lookups.
func (r *Runner) RunFile(ctx context.Context, path string) (*Report, error) {
	inputs, err := ReadIdentifiersFile(path)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, inputs), nil
}

func (r *Runner) lookup(ctx context.Context, input string) Item {
	item := Item{Input: input}

	sirenCode, err := normalize(input)
	if err != nil {
		item.Err = err
		return item
	}
	item.Siren = sirenCode

	companies, err := rne.NewCompaniesClient(ctx, r.opts, sirenCode)
	if err != nil {
		item.Err = err
		r.recordFetch(history.FetchTypeCompany, sirenCode, err)
		return item
	}
	defer companies.Close()
	r.recordFetch(history.FetchTypeCompany, sirenCode, nil)

	if name, err := companies.CompanyName(); err == nil {
		item.Name = name
	}
	if form, err := companies.LegalForm(); err == nil {
		item.LegalForm = form
	}

	accounts, err := rne.NewAnnualAccountsClient(ctx, r.opts, sirenCode)
	if err != nil {
		// The company record is still a success; financials are
		// best-effort.
		r.recordFetch(history.FetchTypeFinancials, sirenCode, err)
		return item
	}
	defer accounts.Close()
	r.recordFetch(history.FetchTypeFinancials, sirenCode, nil)

	item.Filings = accounts.BilansSaisisLen()
	if item.Filings > 0 {
		if revenue, err := accounts.Revenue(0); err == nil {
			item.Revenue = &revenue
		}
	}

	return item
}

func (r *Runner) recordFetch(fetchType history.FetchType, sirenCode string, fetchErr error) {
	if r.ledger == nil {
		return
	}

	outcome, detail := "ok", ""
	if fetchErr != nil {
		outcome, detail = "error", fetchErr.Error()
	}
	if err := r.ledger.RecordFetch(fetchType, sirenCode, outcome, detail); err != nil {
		r.logger.Warn("failed to record fetch history", "siren", sirenCode, "error", err)
	}
}

// RenderTable writes the report as a text table.
func (report *Report) RenderTable(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "SIREN", "Name", "Legal form", "Filings", "Revenue", "Status"})

	for i, item := range report.Items {
		status := "ok"
		if item.Err != nil {
			status = item.Err.Error()
		}

		revenue := ""
		if item.Revenue != nil {
			revenue = fmt.Sprintf("%d", *item.Revenue)
		}

		sirenCode := item.Siren
		if sirenCode == "" {
			sirenCode = item.Input
		}

		t.AppendRow(table.Row{i + 1, sirenCode, item.Name, item.LegalForm, item.Filings, revenue, status})
	}

	t.AppendFooter(table.Row{"", "", "", "", "", "succeeded / failed",
		fmt.Sprintf("%d / %d", report.Succeeded, report.Failed)})
	t.Render()
}

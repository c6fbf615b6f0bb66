package rne

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ouestdata/rne-client/pkg/siren"
)

// AnnualAccountsClient reads the annual-accounts filings of a single
// SIREN: scanned PDF filings (bilans) and machine-readable ones (bilans
// saisis).
//
// The attachments index is fetched once at construction; positional
// accessors read the snapshot and make no network calls. Lookups by
// document ID and PDF downloads do go to the API.
type AnnualAccountsClient struct {
	api   *Client
	siren string
	doc   *AttachmentsDoc
}

// NewAnnualAccountsClient validates the SIREN, authenticates, and fetches
// the attachments index. Release the client with Close.
func NewAnnualAccountsClient(ctx context.Context, opts Options, sirenCode string) (*AnnualAccountsClient, error) {
	validated, err := siren.ValidateSiren(sirenCode)
	if err != nil {
		return nil, err
	}

	api := NewClient(opts)
	if err := api.Authenticate(ctx); err != nil {
		api.Close()
		return nil, err
	}

	var doc AttachmentsDoc
	if err := api.getJSON(ctx, "/companies/"+validated+"/attachments", &doc); err != nil {
		api.Close()
		return nil, fmt.Errorf("failed to fetch financial statement data for SIREN %s: %w", validated, err)
	}

	return &AnnualAccountsClient{api: api, siren: validated, doc: &doc}, nil
}

// Close releases the underlying HTTP resources.
func (c *AnnualAccountsClient) Close() {
	c.api.Close()
}

// Siren returns the SIREN the client is bound to.
func (c *AnnualAccountsClient) Siren() string {
	return c.siren
}

// Raw returns the full decoded attachments index.
func (c *AnnualAccountsClient) Raw() *AttachmentsDoc {
	return c.doc
}

// FilingListing is one line of a filings summary: the position in the
// index, the closing date of the exercise and the document ID.
type FilingListing struct {
	Position    int
	DateCloture string
	ID          string
}

// Scanned PDF filings.

// BilansPDF returns the scanned filings in index order, most recent first.
func (c *AnnualAccountsClient) BilansPDF() []BilanPDF {
	return c.doc.Bilans
}

// BilansPDFLen returns the number of scanned filings.
func (c *AnnualAccountsClient) BilansPDFLen() int {
	return len(c.doc.Bilans)
}

// BilanPDFAt returns the scanned filing at position.
func (c *AnnualAccountsClient) BilanPDFAt(position int) (*BilanPDF, error) {
	if position < 0 || position >= len(c.doc.Bilans) {
		return nil, &NotFoundError{Field: fmt.Sprintf("bilans[%d]", position)}
	}
	return &c.doc.Bilans[position], nil
}

// BilansPDFListing returns position, closing date and document ID for each
// scanned filing.
func (c *AnnualAccountsClient) BilansPDFListing() []FilingListing {
	listing := make([]FilingListing, 0, len(c.doc.Bilans))
	for i, b := range c.doc.Bilans {
		listing = append(listing, FilingListing{Position: i, DateCloture: b.DateCloture, ID: b.ID})
	}
	return listing
}

// BilanPDFMetadata fetches the metadata of a scanned filing by document ID.
func (c *AnnualAccountsClient) BilanPDFMetadata(ctx context.Context, id string) (map[string]any, error) {
	var meta map[string]any
	if err := c.api.getJSON(ctx, "/bilans/"+id, &meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// DownloadBilanPDF downloads the scanned filing with the given document ID
// into dir under name (the .pdf extension is appended). It returns the
// path of the written file. Disk failures are reported as a DownloadError.
func (c *AnnualAccountsClient) DownloadBilanPDF(ctx context.Context, id, dir, name string) (string, error) {
	body, err := c.api.getBytes(ctx, "/bilans/"+id+"/download")
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, name+".pdf")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &DownloadError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", &DownloadError{Path: path, Err: err}
	}
	return path, nil
}

// Machine-readable filings (bilans saisis).

// BilansSaisis returns the machine-readable filings in index order, most
// recent first.
func (c *AnnualAccountsClient) BilansSaisis() []BilanSaisi {
	return c.doc.BilansSaisis
}

// BilansSaisisLen returns the number of machine-readable filings.
func (c *AnnualAccountsClient) BilansSaisisLen() int {
	return len(c.doc.BilansSaisis)
}

// BilanSaisiAt returns the machine-readable filing at position.
func (c *AnnualAccountsClient) BilanSaisiAt(position int) (*BilanSaisi, error) {
	if position < 0 || position >= len(c.doc.BilansSaisis) {
		return nil, &NotFoundError{Field: fmt.Sprintf("bilansSaisis[%d]", position)}
	}
	return &c.doc.BilansSaisis[position], nil
}

// BilansSaisisListing returns position, closing date and document ID for
// each machine-readable filing.
func (c *AnnualAccountsClient) BilansSaisisListing() []FilingListing {
	listing := make([]FilingListing, 0, len(c.doc.BilansSaisis))
	for i, b := range c.doc.BilansSaisis {
		listing = append(listing, FilingListing{Position: i, DateCloture: b.DateCloture, ID: b.ID})
	}
	return listing
}

// LookupBilanSaisi fetches a machine-readable filing by document ID.
func (c *AnnualAccountsClient) LookupBilanSaisi(ctx context.Context, id string) (*BilanSaisi, error) {
	var entry BilanSaisi
	if err := c.api.getJSON(ctx, "/bilans-saisis/"+id, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// TypeBilan returns the declared statement layout of the filing at
// position.
func (c *AnnualAccountsClient) TypeBilan(position int) (BilanType, error) {
	entry, err := c.BilanSaisiAt(position)
	if err != nil {
		return "", err
	}
	if entry.TypeBilan == "" {
		return "", &NotFoundError{Field: fmt.Sprintf("bilansSaisis[%d].typeBilan", position)}
	}
	return BilanType(entry.TypeBilan), nil
}

// TypeBilanByID fetches a filing by document ID and returns its declared
// statement layout.
func (c *AnnualAccountsClient) TypeBilanByID(ctx context.Context, id string) (BilanType, error) {
	entry, err := c.LookupBilanSaisi(ctx, id)
	if err != nil {
		return "", err
	}
	if entry.TypeBilan == "" {
		return "", &NotFoundError{Field: "typeBilan"}
	}
	return BilanType(entry.TypeBilan), nil
}

// DateCloture returns the exercise closing date of the filing at position.
func (c *AnnualAccountsClient) DateCloture(position int) (string, error) {
	entry, err := c.BilanSaisiAt(position)
	if err != nil {
		return "", err
	}
	return entry.DateCloture, nil
}

// DateDepot returns the filing date of the filing at position.
func (c *AnnualAccountsClient) DateDepot(position int) (string, error) {
	entry, err := c.BilanSaisiAt(position)
	if err != nil {
		return "", err
	}
	return entry.DateDepot, nil
}

// NumChrono returns the registry chrono number of the filing at position.
func (c *AnnualAccountsClient) NumChrono(position int) (string, error) {
	entry, err := c.BilanSaisiAt(position)
	if err != nil {
		return "", err
	}
	return entry.NumChrono, nil
}

// Confidentiality returns the confidentiality status of the filing at
// position.
func (c *AnnualAccountsClient) Confidentiality(position int) (string, error) {
	entry, err := c.BilanSaisiAt(position)
	if err != nil {
		return "", err
	}
	return entry.Confidentiality, nil
}

// UpdatedAt returns the last-update timestamp of the filing at position.
func (c *AnnualAccountsClient) UpdatedAt(position int) (string, error) {
	entry, err := c.BilanSaisiAt(position)
	if err != nil {
		return "", err
	}
	return entry.UpdatedAt, nil
}

// BilanSaisiID returns the document ID of the filing at position.
func (c *AnnualAccountsClient) BilanSaisiID(position int) (string, error) {
	entry, err := c.BilanSaisiAt(position)
	if err != nil {
		return "", err
	}
	return entry.ID, nil
}

// Version returns the schema version of the filing body at position.
func (c *AnnualAccountsClient) Version(position int) (string, error) {
	entry, err := c.BilanSaisiAt(position)
	if err != nil {
		return "", err
	}
	if entry.BilanSaisi == nil {
		return "", &NotFoundError{Field: fmt.Sprintf("bilansSaisis[%d].bilanSaisi.version", position)}
	}
	return entry.BilanSaisi.Version, nil
}

// identiteAt returns the identity header of the filing body at position.
func (c *AnnualAccountsClient) identiteAt(position int) (*BilanIdentite, error) {
	entry, err := c.BilanSaisiAt(position)
	if err != nil {
		return nil, err
	}
	if entry.BilanSaisi == nil || entry.BilanSaisi.Bilan == nil || entry.BilanSaisi.Bilan.Identite == nil {
		return nil, &NotFoundError{Field: fmt.Sprintf("bilansSaisis[%d].bilanSaisi.bilan.identite", position)}
	}
	return entry.BilanSaisi.Bilan.Identite, nil
}

// FilingAddress returns the address declared in the filing header.
func (c *AnnualAccountsClient) FilingAddress(position int) (string, error) {
	id, err := c.identiteAt(position)
	if err != nil {
		return "", err
	}
	return id.Adresse, nil
}

// InfoTraitement returns the processing information of the filing header.
func (c *AnnualAccountsClient) InfoTraitement(position int) (string, error) {
	id, err := c.identiteAt(position)
	if err != nil {
		return "", err
	}
	return id.InfoTraitement, nil
}

// CodeConfidentialite returns the confidentiality code of the filing
// header.
func (c *AnnualAccountsClient) CodeConfidentialite(position int) (string, error) {
	id, err := c.identiteAt(position)
	if err != nil {
		return "", err
	}
	return id.CodeConfidentialite, nil
}

// CodeSaisie returns the keying-in code of the filing header.
func (c *AnnualAccountsClient) CodeSaisie(position int) (string, error) {
	id, err := c.identiteAt(position)
	if err != nil {
		return "", err
	}
	return id.CodeSaisie, nil
}

// CodeDevise returns the currency code of the filing header.
func (c *AnnualAccountsClient) CodeDevise(position int) (string, error) {
	id, err := c.identiteAt(position)
	if err != nil {
		return "", err
	}
	return id.CodeDevise, nil
}

// CodeOrigineDevise returns the currency origin code of the filing header.
func (c *AnnualAccountsClient) CodeOrigineDevise(position int) (string, error) {
	id, err := c.identiteAt(position)
	if err != nil {
		return "", err
	}
	return id.CodeOrigineDevise, nil
}

// CodeTypeBilan returns the statement layout code of the filing header.
// It normally matches the index-level typeBilan.
func (c *AnnualAccountsClient) CodeTypeBilan(position int) (string, error) {
	id, err := c.identiteAt(position)
	if err != nil {
		return "", err
	}
	return id.CodeTypeBilan, nil
}

// CodeGreffe returns the commercial-court registry code of the filing
// header.
func (c *AnnualAccountsClient) CodeGreffe(position int) (string, error) {
	id, err := c.identiteAt(position)
	if err != nil {
		return "", err
	}
	return id.CodeGreffe, nil
}

// NumGestion returns the registry management number of the filing header.
func (c *AnnualAccountsClient) NumGestion(position int) (string, error) {
	id, err := c.identiteAt(position)
	if err != nil {
		return "", err
	}
	return id.NumGestion, nil
}

// NumDepot returns the deposit number of the filing header.
func (c *AnnualAccountsClient) NumDepot(position int) (string, error) {
	id, err := c.identiteAt(position)
	if err != nil {
		return "", err
	}
	return id.NumDepot, nil
}

// DateClotureExercice returns the closing date of the current exercise as
// declared in the filing header.
func (c *AnnualAccountsClient) DateClotureExercice(position int) (string, error) {
	id, err := c.identiteAt(position)
	if err != nil {
		return "", err
	}
	return id.DateClotureExercice, nil
}

// DureeExerciceN returns the duration in months of the current exercise.
func (c *AnnualAccountsClient) DureeExerciceN(position int) (int, error) {
	id, err := c.identiteAt(position)
	if err != nil {
		return 0, err
	}
	if id.DureeExerciceN == nil {
		return 0, &NotFoundError{Field: fmt.Sprintf("bilansSaisis[%d].bilanSaisi.bilan.identite.dureeExerciceN", position)}
	}
	return *id.DureeExerciceN, nil
}

// DateClotureExercicePrecedent returns the closing date of the previous
// exercise as declared in the filing header.
func (c *AnnualAccountsClient) DateClotureExercicePrecedent(position int) (string, error) {
	id, err := c.identiteAt(position)
	if err != nil {
		return "", err
	}
	return id.DateClotureExerciceNMoins1, nil
}

// DureeExercicePrecedent returns the duration in months of the previous
// exercise.
func (c *AnnualAccountsClient) DureeExercicePrecedent(position int) (int, error) {
	id, err := c.identiteAt(position)
	if err != nil {
		return 0, err
	}
	if id.DureeExerciceNMoins1 == nil {
		return 0, &NotFoundError{Field: fmt.Sprintf("bilansSaisis[%d].bilanSaisi.bilan.identite.dureeExerciceNMoins1", position)}
	}
	return *id.DureeExerciceNMoins1, nil
}

// Financial metrics. These dispatch on the statement layout the filing
// itself declares; use the Extract functions directly to force a layout.

// Revenue returns the revenue of the filing at position for the current
// exercise.
func (c *AnnualAccountsClient) Revenue(position int) (int64, error) {
	return c.metric(position, false, ExtractRevenue)
}

// RevenuePreviousYear returns the revenue of the filing at position for
// the previous exercise.
func (c *AnnualAccountsClient) RevenuePreviousYear(position int) (int64, error) {
	return c.metric(position, true, ExtractRevenue)
}

// Equity returns the equity of the filing at position for the current
// exercise.
func (c *AnnualAccountsClient) Equity(position int) (int64, error) {
	return c.metric(position, false, ExtractEquity)
}

// EquityPreviousYear returns the equity of the filing at position for the
// previous exercise.
func (c *AnnualAccountsClient) EquityPreviousYear(position int) (int64, error) {
	return c.metric(position, true, ExtractEquity)
}

// ProfitLoss returns the profit or loss of the filing at position for the
// current exercise.
func (c *AnnualAccountsClient) ProfitLoss(position int) (int64, error) {
	return c.metric(position, false, ExtractProfitLoss)
}

// ProfitLossPreviousYear returns the profit or loss of the filing at
// position for the previous exercise.
func (c *AnnualAccountsClient) ProfitLossPreviousYear(position int) (int64, error) {
	return c.metric(position, true, ExtractProfitLoss)
}

// Headcount returns the employee count of the filing at position for the
// current exercise.
func (c *AnnualAccountsClient) Headcount(position int) (int64, error) {
	return c.metric(position, false, ExtractHeadcount)
}

// HeadcountPreviousYear returns the employee count of the filing at
// position for the previous exercise.
func (c *AnnualAccountsClient) HeadcountPreviousYear(position int) (int64, error) {
	return c.metric(position, true, ExtractHeadcount)
}

func (c *AnnualAccountsClient) metric(position int, previousYear bool, extract func(*AttachmentsDoc, int, BilanType, bool) (int64, error)) (int64, error) {
	typ, err := c.TypeBilan(position)
	if err != nil {
		return 0, err
	}
	return extract(c.doc, position, typ, previousYear)
}

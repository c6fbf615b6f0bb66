package rne

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ouestdata/rne-client/pkg/siren"
)

// ActesClient reads the legal documents (actes) filed against a single
// SIREN.
//
// The attachments index is fetched once at construction, the same way the
// other domain clients do. Metadata lookups by document ID and PDF
// downloads go to the API.
type ActesClient struct {
	api   *Client
	siren string
	doc   *AttachmentsDoc
}

// DocumentListing is one line of an actes summary: the position in the
// index, the filing date, the document ID and the filing type.
type DocumentListing struct {
	Position  int
	DateDepot string
	ID        string
	TypeRdd   string
}

// NewActesClient validates the SIREN, authenticates, and fetches the
// attachments index. Release the client with Close.
func NewActesClient(ctx context.Context, opts Options, sirenCode string) (*ActesClient, error) {
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
		return nil, fmt.Errorf("failed to fetch document data for SIREN %s: %w", validated, err)
	}

	return &ActesClient{api: api, siren: validated, doc: &doc}, nil
}

// Close releases the underlying HTTP resources.
func (c *ActesClient) Close() {
	c.api.Close()
}

// Siren returns the SIREN the client is bound to.
func (c *ActesClient) Siren() string {
	return c.siren
}

// Raw returns the full decoded attachments index.
func (c *ActesClient) Raw() *AttachmentsDoc {
	return c.doc
}

// Actes returns the filed documents in index order.
func (c *ActesClient) Actes() []Acte {
	return c.doc.Actes
}

// ActesLen returns the number of filed documents.
func (c *ActesClient) ActesLen() int {
	return len(c.doc.Actes)
}

// ActeAt returns the filed document at position.
func (c *ActesClient) ActeAt(position int) (*Acte, error) {
	if position < 0 || position >= len(c.doc.Actes) {
		return nil, &NotFoundError{Field: fmt.Sprintf("actes[%d]", position)}
	}
	return &c.doc.Actes[position], nil
}

// Listing returns position, filing date, document ID and filing type for
// each acte.
func (c *ActesClient) Listing() []DocumentListing {
	listing := make([]DocumentListing, 0, len(c.doc.Actes))
	for i, a := range c.doc.Actes {
		listing = append(listing, DocumentListing{
			Position:  i,
			DateDepot: a.DateDepot,
			ID:        a.ID,
			TypeRdd:   a.TypeRdd,
		})
	}
	return listing
}

// ActeMetadata fetches the metadata of a filed document by ID.
func (c *ActesClient) ActeMetadata(ctx context.Context, id string) (map[string]any, error) {
	var meta map[string]any
	if err := c.api.getJSON(ctx, "/actes/"+id, &meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// DownloadPDF downloads the filed document with the given ID into dir
// under name (the .pdf extension is appended). It returns the path of the
// written file. Disk failures are reported as a DownloadError.
func (c *ActesClient) DownloadPDF(ctx context.Context, id, dir, name string) (string, error) {
	body, err := c.api.getBytes(ctx, "/actes/"+id+"/download")
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

package batch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ouestdata/rne-client/pkg/history"
	"github.com/ouestdata/rne-client/pkg/rne"
)

func TestReadIdentifiers(t *testing.T) {
	input := `
# holding companies
552032534

55203253400054
# trailing comment
`

	identifiers, err := ReadIdentifiers(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, []string{"552032534", "55203253400054"}, identifiers)
}

func newRegistryServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/sso/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "tok"})
	})

	mux.HandleFunc("/companies/552032534", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"formality": {
				"formeJuridique": "5710",
				"content": {
					"personneMorale": {
						"identite": {
							"entreprise": {"denomination": "ACME HOLDING"}
						}
					}
				}
			}
		}`))
	})

	mux.HandleFunc("/companies/552032534/attachments", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"bilansSaisis": [
				{
					"id": "BS1",
					"typeBilan": "C",
					"dateCloture": "2023-12-31",
					"bilanSaisi": {
						"bilan": {
							"detail": {
								"pages": [{"liasses": [{"code": "FJ", "m3": "125000"}]}]
							}
						}
					}
				}
			]
		}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRunToleratesBadItems(t *testing.T) {
	srv := newRegistryServer(t)

	opts := rne.Options{BaseURL: srv.URL, Username: "u", Password: "p"}
	runner := NewRunner(opts, nil, nil)

	// A SIRET normalizing to a known SIREN, plus a malformed identifier.
	report := runner.Run(context.Background(), []string{"55203253400054", "not-a-siren"})

	require.Equal(t, 1, report.Succeeded)
	require.Equal(t, 1, report.Failed)
	require.Len(t, report.Items, 2)

	ok := report.Items[0]
	require.NoError(t, ok.Err)
	require.Equal(t, "552032534", ok.Siren)
	require.Equal(t, "ACME HOLDING", ok.Name)
	require.Equal(t, "5710", ok.LegalForm)
	require.Equal(t, 1, ok.Filings)
	require.NotNil(t, ok.Revenue)
	require.Equal(t, int64(125000), *ok.Revenue)

	bad := report.Items[1]
	require.Error(t, bad.Err)
	require.Empty(t, bad.Siren)
}

func TestRunRecordsHistory(t *testing.T) {
	srv := newRegistryServer(t)

	conn, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer conn.Close()
	ledger := history.NewLedger(conn)

	opts := rne.Options{BaseURL: srv.URL, Username: "u", Password: "p"}
	runner := NewRunner(opts, ledger, nil)

	report := runner.Run(context.Background(), []string{"552032534"})
	require.Equal(t, 1, report.Succeeded)

	fetched, err := ledger.WasFetched(history.FetchTypeCompany, "552032534")
	require.NoError(t, err)
	require.True(t, fetched)

	fetched, err = ledger.WasFetched(history.FetchTypeFinancials, "552032534")
	require.NoError(t, err)
	require.True(t, fetched)
}

func TestRenderTable(t *testing.T) {
	revenue := int64(125000)
	report := &Report{
		Succeeded: 1,
		Failed:    1,
		Items: []Item{
			{Input: "552032534", Siren: "552032534", Name: "ACME HOLDING", LegalForm: "5710", Filings: 1, Revenue: &revenue},
			{Input: "bad", Err: context.DeadlineExceeded},
		},
	}

	var sb strings.Builder
	report.RenderTable(&sb)

	out := sb.String()
	require.Contains(t, out, "ACME HOLDING")
	require.Contains(t, out, "125000")
	require.Contains(t, out, "1 / 1")
}

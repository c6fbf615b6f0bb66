package rne

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ouestdata/rne-client/pkg/siren"
)

const (
	testUser     = "user@example.com"
	testPassword = "secret"
	testToken    = "test-token"
	testSiren    = "552032534"
)

const companyFixture = `{
  "formality": {
    "siren": "552032534",
    "formeJuridique": "5710",
    "content": {
      "personneMorale": {
        "identite": {
          "entreprise": {
            "siren": "552032534",
            "denomination": "ACME HOLDING",
            "codeApe": "6420Z"
          },
          "description": {
            "objet": "Prise de participations dans toutes sociétés.",
            "montantCapital": 100000
          }
        },
        "etablissementPrincipal": {
          "descriptionEtablissement": {
            "siret": "55203253400054",
            "nomCommercial": "ACME"
          },
          "adresse": {
            "pays": "FRANCE",
            "codePays": "FRA",
            "codePostal": "75008",
            "commune": "PARIS",
            "numVoie": "12",
            "typeVoie": "AV",
            "voie": "DES CHAMPS"
          }
        },
        "composition": {
          "pouvoirs": [
            {
              "typeDePersonne": "INDIVIDU",
              "individu": {
                "descriptionPersonne": {
                  "nom": "MARTIN",
                  "prenoms": ["Claire"],
                  "role": "5061",
                  "dateDeNaissance": "1975-04",
                  "nationalite": "Française"
                }
              }
            },
            {
              "typeDePersonne": "ENTREPRISE",
              "roleEntreprise": "5062",
              "entreprise": {
                "denomination": "AUDIT & CO",
                "siren": "732829320"
              }
            }
          ]
        }
      }
    }
  }
}`

const attachmentsFixture = `{
  "bilans": [
    {"id": "B1", "dateCloture": "2023-12-31", "dateDepot": "2024-06-15", "typeBilan": "C"}
  ],
  "bilansSaisis": [
    {
      "id": "BS1",
      "dateCloture": "2023-12-31",
      "dateDepot": "2024-06-15",
      "typeBilan": "C",
      "numChrono": "4521",
      "confidentiality": "Public",
      "updatedAt": "2024-06-16T08:00:00Z",
      "bilanSaisi": {
        "version": "5",
        "bilan": {
          "identite": {
            "siren": "552032534",
            "codeGreffe": "7501",
            "numGestion": "1955B01234",
            "numDepot": "45210",
            "codeDevise": "EUR",
            "codeTypeBilan": "C",
            "dateClotureExercice": "20231231",
            "dureeExerciceN": 12,
            "dateClotureExerciceNMoins1": "20221231",
            "dureeExerciceNMoins1": 12
          },
          "detail": {
            "pages": [
              {
                "liasses": [
                  {"code": "FJ", "m3": "125000", "m4": "118000"},
                  {"code": "DL", "m1": "50000", "m2": "47000"},
                  {"code": "HN", "m1": "3200", "m2": "2800"},
                  {"code": "YP", "m1": "12", "m2": "11"}
                ]
              }
            ]
          }
        }
      }
    }
  ],
  "actes": [
    {"id": "A1", "dateDepot": "2022-03-10", "typeRdd": "Statuts mis à jour"},
    {"id": "A2", "dateDepot": "2021-07-01", "typeRdd": "Procès-verbal d'assemblée"}
  ]
}`

// apiServer is a fake registry API. It counts document fetches so tests
// can assert the single-fetch behaviour of the domain clients.
type apiServer struct {
	srv              *httptest.Server
	companyFetches   int
	documentsFetches int
}

func newAPIServer(t *testing.T) *apiServer {
	t.Helper()

	api := &apiServer{}
	mux := http.NewServeMux()

	mux.HandleFunc("/sso/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil ||
			creds.Username != testUser || creds.Password != testPassword {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": testToken})
	})

	authorized := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			w.WriteHeader(http.StatusUnauthorized)
			return false
		}
		return true
	}

	mux.HandleFunc("/companies/"+testSiren, func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		api.companyFetches++
		w.Write([]byte(companyFixture))
	})

	mux.HandleFunc("/companies/"+testSiren+"/attachments", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		api.documentsFetches++
		w.Write([]byte(attachmentsFixture))
	})

	mux.HandleFunc("/bilans-saisis/BS1", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		w.Write([]byte(`{"id": "BS1", "typeBilan": "C", "dateCloture": "2023-12-31"}`))
	})

	mux.HandleFunc("/bilans/B1", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		w.Write([]byte(`{"id": "B1", "typeBilan": "C", "nomDocument": "bilan_2023"}`))
	})

	mux.HandleFunc("/bilans/B1/download", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		w.Write([]byte("%PDF-1.4 bilan"))
	})

	mux.HandleFunc("/actes/A1", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		w.Write([]byte(`{"id": "A1", "nomDocument": "statuts_2022"}`))
	})

	mux.HandleFunc("/actes/A1/download", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		w.Write([]byte("%PDF-1.4 acte"))
	})

	api.srv = httptest.NewServer(mux)
	t.Cleanup(api.srv.Close)
	return api
}

func (a *apiServer) options() Options {
	return Options{
		BaseURL:  a.srv.URL,
		Username: testUser,
		Password: testPassword,
	}
}

func TestAuthenticate(t *testing.T) {
	api := newAPIServer(t)

	client := NewClient(api.options())
	defer client.Close()

	require.False(t, client.IsAuthenticated())
	require.NoError(t, client.Authenticate(context.Background()))
	require.True(t, client.IsAuthenticated())
	require.Equal(t, testToken, client.Token())
}

func TestAuthenticateRejectedCredentials(t *testing.T) {
	api := newAPIServer(t)

	client := NewClient(Options{BaseURL: api.srv.URL, Username: testUser, Password: "wrong"})
	defer client.Close()

	err := client.Authenticate(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	require.False(t, client.IsAuthenticated())
}

func TestAuthenticateMissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL, Username: testUser, Password: testPassword})
	defer client.Close()

	err := client.Authenticate(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestCompaniesClientAccessors(t *testing.T) {
	api := newAPIServer(t)
	ctx := context.Background()

	client, err := NewCompaniesClient(ctx, api.options(), testSiren)
	require.NoError(t, err)
	defer client.Close()

	name, err := client.CompanyName()
	require.NoError(t, err)
	require.Equal(t, "ACME HOLDING", name)

	form, err := client.LegalForm()
	require.NoError(t, err)
	require.Equal(t, "5710", form)

	ape, err := client.APECode()
	require.NoError(t, err)
	require.Equal(t, "6420Z", ape)

	capital, err := client.ShareCapital()
	require.NoError(t, err)
	require.Equal(t, int64(100000), capital)

	siret, err := client.HeadquartersSiret()
	require.NoError(t, err)
	require.Equal(t, "55203253400054", siret)

	street, err := client.StreetAddress()
	require.NoError(t, err)
	require.Equal(t, "12 AV DES CHAMPS", street)

	city, err := client.City()
	require.NoError(t, err)
	require.Equal(t, "PARIS", city)

	country, err := client.Country()
	require.NoError(t, err)
	require.Equal(t, "FRANCE", country)

	// Every accessor above reads the snapshot taken at construction.
	require.Equal(t, 1, api.companyFetches)
}

func TestCompaniesClientDirectors(t *testing.T) {
	api := newAPIServer(t)
	ctx := context.Background()

	client, err := NewCompaniesClient(ctx, api.options(), testSiren)
	require.NoError(t, err)
	defer client.Close()

	directors, err := client.Directors()
	require.NoError(t, err)
	require.Len(t, directors, 2)

	require.Equal(t, "MARTIN", directors[0].Name)
	require.Equal(t, []string{"Claire"}, directors[0].FirstNames)
	require.Equal(t, "5061", directors[0].Role)
	require.True(t, directors[0].Active)

	require.Equal(t, "AUDIT & CO", directors[1].Name)
	require.Equal(t, "732829320", directors[1].Siren)

	individuals, err := client.IndividualDirectors()
	require.NoError(t, err)
	require.Len(t, individuals, 1)

	corporates, err := client.CorporateDirectors()
	require.NoError(t, err)
	require.Len(t, corporates, 1)
}

func TestCompaniesClientAbsentField(t *testing.T) {
	api := newAPIServer(t)
	ctx := context.Background()

	client, err := NewCompaniesClient(ctx, api.options(), testSiren)
	require.NoError(t, err)
	defer client.Close()

	// The fixture has no cessation data.
	_, err = client.CessationNature()
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestCompaniesClientInvalidSiren(t *testing.T) {
	api := newAPIServer(t)

	_, err := NewCompaniesClient(context.Background(), api.options(), "123")
	require.Error(t, err)
	require.True(t, siren.IsValidationError(err))
	require.Equal(t, 0, api.companyFetches)
}

func TestCompaniesClientUnknownSiren(t *testing.T) {
	api := newAPIServer(t)

	// Valid checksum, but the registry has no record for it.
	_, err := NewCompaniesClient(context.Background(), api.options(), "732829320")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestAnnualAccountsClient(t *testing.T) {
	api := newAPIServer(t)
	ctx := context.Background()

	client, err := NewAnnualAccountsClient(ctx, api.options(), testSiren)
	require.NoError(t, err)
	defer client.Close()

	require.Equal(t, 1, client.BilansPDFLen())
	require.Equal(t, 1, client.BilansSaisisLen())

	listing := client.BilansSaisisListing()
	require.Len(t, listing, 1)
	require.Equal(t, FilingListing{Position: 0, DateCloture: "2023-12-31", ID: "BS1"}, listing[0])

	typ, err := client.TypeBilan(0)
	require.NoError(t, err)
	require.Equal(t, BilanComplet, typ)

	greffe, err := client.CodeGreffe(0)
	require.NoError(t, err)
	require.Equal(t, "7501", greffe)

	devise, err := client.CodeDevise(0)
	require.NoError(t, err)
	require.Equal(t, "EUR", devise)

	duration, err := client.DureeExerciceN(0)
	require.NoError(t, err)
	require.Equal(t, 12, duration)

	revenue, err := client.Revenue(0)
	require.NoError(t, err)
	require.Equal(t, int64(125000), revenue)

	prevRevenue, err := client.RevenuePreviousYear(0)
	require.NoError(t, err)
	require.Equal(t, int64(118000), prevRevenue)

	equity, err := client.Equity(0)
	require.NoError(t, err)
	require.Equal(t, int64(50000), equity)

	profit, err := client.ProfitLoss(0)
	require.NoError(t, err)
	require.Equal(t, int64(3200), profit)

	headcount, err := client.Headcount(0)
	require.NoError(t, err)
	require.Equal(t, int64(12), headcount)

	// The index is fetched once; the metric accessors reuse it.
	require.Equal(t, 1, api.documentsFetches)

	entry, err := client.LookupBilanSaisi(ctx, "BS1")
	require.NoError(t, err)
	require.Equal(t, "C", entry.TypeBilan)

	_, err = client.BilanSaisiAt(5)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestAnnualAccountsDownload(t *testing.T) {
	api := newAPIServer(t)
	ctx := context.Background()

	client, err := NewAnnualAccountsClient(ctx, api.options(), testSiren)
	require.NoError(t, err)
	defer client.Close()

	dir := t.TempDir()
	path, err := client.DownloadBilanPDF(ctx, "B1", dir, "bilan_2023")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "bilan_2023.pdf"), path)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.4 bilan", string(body))
}

func TestActesClient(t *testing.T) {
	api := newAPIServer(t)
	ctx := context.Background()

	client, err := NewActesClient(ctx, api.options(), testSiren)
	require.NoError(t, err)
	defer client.Close()

	require.Equal(t, 2, client.ActesLen())

	listing := client.Listing()
	require.Len(t, listing, 2)
	require.Equal(t, DocumentListing{
		Position:  0,
		DateDepot: "2022-03-10",
		ID:        "A1",
		TypeRdd:   "Statuts mis à jour",
	}, listing[0])

	meta, err := client.ActeMetadata(ctx, "A1")
	require.NoError(t, err)
	require.Equal(t, "statuts_2022", meta["nomDocument"])

	dir := t.TempDir()
	path, err := client.DownloadPDF(ctx, "A1", dir, "statuts")
	require.NoError(t, err)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.4 acte", string(body))

	require.Equal(t, 1, api.documentsFetches)
}

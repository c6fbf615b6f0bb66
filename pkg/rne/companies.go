package rne

import (
	"context"
	"fmt"
	"strings"

	"github.com/ouestdata/rne-client/pkg/siren"
)

// CompaniesClient reads the company record of a single SIREN.
//
// The record is fetched once at construction; every accessor afterwards
// reads the in-memory snapshot and performs no network I/O. A client is
// bound to its SIREN for its whole lifetime.
type CompaniesClient struct {
	api   *Client
	siren string
	doc   *CompanyDoc
}

// NewCompaniesClient validates the SIREN, authenticates, and fetches the
// company record. The returned client owns its base client; release it with
// Close.
func NewCompaniesClient(ctx context.Context, opts Options, sirenCode string) (*CompaniesClient, error) {
	validated, err := siren.ValidateSiren(sirenCode)
	if err != nil {
		return nil, err
	}

	api := NewClient(opts)
	if err := api.Authenticate(ctx); err != nil {
		api.Close()
		return nil, err
	}

	var doc CompanyDoc
	if err := api.getJSON(ctx, "/companies/"+validated, &doc); err != nil {
		api.Close()
		return nil, fmt.Errorf("failed to fetch company data for SIREN %s: %w", validated, err)
	}

	return &CompaniesClient{api: api, siren: validated, doc: &doc}, nil
}

// Close releases the underlying HTTP resources.
func (c *CompaniesClient) Close() {
	c.api.Close()
}

// Siren returns the SIREN the client is bound to.
func (c *CompaniesClient) Siren() string {
	return c.siren
}

// Raw returns the full decoded company document.
func (c *CompaniesClient) Raw() *CompanyDoc {
	return c.doc
}

// content returns the formality content, or a NotFoundError.
func (c *CompaniesClient) content() (*FormalityContent, error) {
	if c.doc == nil || c.doc.Formality == nil || c.doc.Formality.Content == nil {
		return nil, &NotFoundError{Field: "formality.content"}
	}
	return c.doc.Formality.Content, nil
}

// identity returns the identite block of the first populated branch.
func identity(branch *PersonneMorale) *EntrepriseIdentity {
	if branch == nil || branch.Identite == nil {
		return nil
	}
	return branch.Identite.Entreprise
}

// CompanyName returns the registered name (denomination). The registry may
// record it under the personneMorale, exploitation or personnePhysique
// branch; they are tried in that order.
func (c *CompaniesClient) CompanyName() (string, error) {
	content, err := c.content()
	if err != nil {
		return "", err
	}

	for _, branch := range []*PersonneMorale{content.PersonneMorale, content.Exploitation, content.PersonnePhysique} {
		if id := identity(branch); id != nil && id.Denomination != "" {
			return id.Denomination, nil
		}
	}
	return "", &NotFoundError{Field: "identite.entreprise.denomination"}
}

// LegalForm returns the legal form code of the company.
func (c *CompaniesClient) LegalForm() (string, error) {
	if c.doc != nil && c.doc.Formality != nil && c.doc.Formality.FormeJuridique != "" {
		return c.doc.Formality.FormeJuridique, nil
	}

	content, err := c.content()
	if err != nil {
		return "", err
	}
	if content.NatureCreation != nil && content.NatureCreation.FormeJuridique != "" {
		return content.NatureCreation.FormeJuridique, nil
	}
	for _, branch := range []*PersonneMorale{content.PersonneMorale, content.PersonnePhysique} {
		if id := identity(branch); id != nil && id.FormeJuridique != "" {
			return id.FormeJuridique, nil
		}
	}
	return "", &NotFoundError{Field: "formality.formeJuridique"}
}

// APECode returns the activity (APE) code of the company.
func (c *CompaniesClient) APECode() (string, error) {
	content, err := c.content()
	if err != nil {
		return "", err
	}
	for _, branch := range []*PersonneMorale{content.PersonneMorale, content.Exploitation} {
		if id := identity(branch); id != nil && id.CodeApe != "" {
			return id.CodeApe, nil
		}
	}
	return "", &NotFoundError{Field: "identite.entreprise.codeApe"}
}

// TradeName returns the commercial name. The main establishment is
// preferred; names of secondary establishments are joined with commas.
func (c *CompaniesClient) TradeName() (string, error) {
	content, err := c.content()
	if err != nil {
		return "", err
	}
	pm := content.PersonneMorale
	if pm == nil {
		return "", &NotFoundError{Field: "personneMorale"}
	}

	if e := pm.EtablissementPrincipal; e != nil && e.DescriptionEtablissement != nil && e.DescriptionEtablissement.NomCommercial != "" {
		return e.DescriptionEtablissement.NomCommercial, nil
	}
	if id := identity(pm); id != nil && id.NomCommercial != "" {
		return id.NomCommercial, nil
	}

	var names []string
	for _, e := range pm.AutresEtablissements {
		if e.DescriptionEtablissement != nil && e.DescriptionEtablissement.NomCommercial != "" {
			names = append(names, e.DescriptionEtablissement.NomCommercial)
		}
	}
	if len(names) > 0 {
		return strings.Join(names, ", "), nil
	}
	return "", &NotFoundError{Field: "descriptionEtablissement.nomCommercial"}
}

// ShareCapital returns the registered capital amount.
func (c *CompaniesClient) ShareCapital() (int64, error) {
	content, err := c.content()
	if err != nil {
		return 0, err
	}
	pm := content.PersonneMorale
	if pm == nil || pm.Identite == nil || pm.Identite.Description == nil || pm.Identite.Description.MontantCapital == nil {
		return 0, &NotFoundError{Field: "identite.description.montantCapital"}
	}
	return *pm.Identite.Description.MontantCapital, nil
}

// Description returns the detailed corporate purpose, looked up in the
// identity first and then in the declared activities.
func (c *CompaniesClient) Description() (string, error) {
	content, err := c.content()
	if err != nil {
		return "", err
	}
	pm := content.PersonneMorale
	if pm == nil {
		return "", &NotFoundError{Field: "personneMorale"}
	}

	if pm.Identite != nil && pm.Identite.Description != nil && pm.Identite.Description.Objet != "" {
		return strings.TrimSpace(pm.Identite.Description.Objet), nil
	}
	if e := pm.EtablissementPrincipal; e != nil && len(e.Activites) > 0 && e.Activites[0].DescriptionDetaillee != "" {
		return strings.TrimSpace(e.Activites[0].DescriptionDetaillee), nil
	}
	if len(pm.AutresEtablissements) > 0 {
		e := pm.AutresEtablissements[0]
		if len(e.Activites) > 0 && e.Activites[0].DescriptionDetaillee != "" {
			return strings.TrimSpace(e.Activites[0].DescriptionDetaillee), nil
		}
	}
	return "", &NotFoundError{Field: "identite.description.objet"}
}

// HeadquartersSiret returns the SIRET of the main establishment.
func (c *CompaniesClient) HeadquartersSiret() (string, error) {
	content, err := c.content()
	if err != nil {
		return "", err
	}
	pm := content.PersonneMorale
	if pm == nil || pm.EtablissementPrincipal == nil || pm.EtablissementPrincipal.DescriptionEtablissement == nil ||
		pm.EtablissementPrincipal.DescriptionEtablissement.Siret == "" {
		return "", &NotFoundError{Field: "etablissementPrincipal.descriptionEtablissement.siret"}
	}
	return pm.EtablissementPrincipal.DescriptionEtablissement.Siret, nil
}

// mainAddress returns the address of the main establishment.
func (c *CompaniesClient) mainAddress() (*Adresse, error) {
	content, err := c.content()
	if err != nil {
		return nil, err
	}
	pm := content.PersonneMorale
	if pm == nil || pm.EtablissementPrincipal == nil || pm.EtablissementPrincipal.Adresse == nil {
		return nil, &NotFoundError{Field: "etablissementPrincipal.adresse"}
	}
	return pm.EtablissementPrincipal.Adresse, nil
}

// PostalCode returns the postal code of the main establishment.
func (c *CompaniesClient) PostalCode() (string, error) {
	addr, err := c.mainAddress()
	if err != nil {
		return "", err
	}
	if addr.CodePostal == "" {
		return "", &NotFoundError{Field: "adresse.codePostal"}
	}
	return addr.CodePostal, nil
}

// City returns the commune of the main establishment.
func (c *CompaniesClient) City() (string, error) {
	addr, err := c.mainAddress()
	if err != nil {
		return "", err
	}
	if addr.Commune == "" {
		return "", &NotFoundError{Field: "adresse.commune"}
	}
	return addr.Commune, nil
}

// Country returns the country of the company address, trying the main
// establishment, the exploitation branch and the company-level address.
func (c *CompaniesClient) Country() (string, error) {
	content, err := c.content()
	if err != nil {
		return "", err
	}

	if addr, err := c.mainAddress(); err == nil && addr.Pays != "" {
		return addr.Pays, nil
	}
	if e := content.Exploitation; e != nil && e.EtablissementPrincipal != nil && e.EtablissementPrincipal.Adresse != nil &&
		e.EtablissementPrincipal.Adresse.Pays != "" {
		return e.EtablissementPrincipal.Adresse.Pays, nil
	}
	if pm := content.PersonneMorale; pm != nil && pm.AdresseEntreprise != nil && pm.AdresseEntreprise.Adresse != nil &&
		pm.AdresseEntreprise.Adresse.Pays != "" {
		return pm.AdresseEntreprise.Adresse.Pays, nil
	}
	return "", &NotFoundError{Field: "adresse.pays"}
}

// CountryCode returns the ISO country code of the company address, with the
// same fallbacks as Country.
func (c *CompaniesClient) CountryCode() (string, error) {
	content, err := c.content()
	if err != nil {
		return "", err
	}

	if addr, err := c.mainAddress(); err == nil && addr.CodePays != "" {
		return addr.CodePays, nil
	}
	if e := content.Exploitation; e != nil && e.EtablissementPrincipal != nil && e.EtablissementPrincipal.Adresse != nil &&
		e.EtablissementPrincipal.Adresse.CodePays != "" {
		return e.EtablissementPrincipal.Adresse.CodePays, nil
	}
	if pm := content.PersonneMorale; pm != nil && pm.AdresseEntreprise != nil && pm.AdresseEntreprise.Adresse != nil &&
		pm.AdresseEntreprise.Adresse.CodePays != "" {
		return pm.AdresseEntreprise.Adresse.CodePays, nil
	}
	return "", &NotFoundError{Field: "adresse.codePays"}
}

// StreetAddress renders the street part of the main establishment address,
// one location element per line.
func (c *CompaniesClient) StreetAddress() (string, error) {
	addr, err := c.mainAddress()
	if err != nil {
		return "", err
	}

	var parts []string
	if addr.ComplementLocalisation != "" {
		parts = append(parts, addr.ComplementLocalisation)
	}
	street := strings.TrimSpace(strings.Join([]string{addr.NumVoie, addr.TypeVoie, addr.Voie}, " "))
	street = strings.Join(strings.Fields(street), " ")
	if street != "" {
		parts = append(parts, street)
	}
	if addr.DistributionSpeciale != "" {
		parts = append(parts, addr.DistributionSpeciale)
	}

	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}

// CessationNature returns the nature of cessation for a closure formality.
func (c *CompaniesClient) CessationNature() (string, error) {
	content, err := c.content()
	if err != nil {
		return "", err
	}
	if content.NatureCessation == "" {
		return "", &NotFoundError{Field: "content.natureCessation"}
	}
	return content.NatureCessation, nil
}

// CessationDates returns the radiation date and its effective date for a
// closed company.
func (c *CompaniesClient) CessationDates() (radiation, effect string, err error) {
	content, err := c.content()
	if err != nil {
		return "", "", err
	}
	pm := content.PersonneMorale
	if pm == nil || pm.DetailCessationEntreprise == nil {
		return "", "", &NotFoundError{Field: "personneMorale.detailCessationEntreprise"}
	}
	return pm.DetailCessationEntreprise.DateRadiation, pm.DetailCessationEntreprise.DateEffet, nil
}

// Director is a flattened view of one entry of composition.pouvoirs.
type Director struct {
	Position    int
	Type        string // PersonTypeIndividual or PersonTypeCompany
	Name        string // last name, or denomination for a company
	FirstNames  []string
	Role        string
	BirthDate   string
	Nationality string
	Gender      string
	Siren       string // set for corporate directors
	Active      bool
}

// Pouvoirs returns the raw composition.pouvoirs entries, or an empty slice
// when the company has none.
func (c *CompaniesClient) Pouvoirs() ([]Pouvoir, error) {
	content, err := c.content()
	if err != nil {
		return nil, err
	}
	pm := content.PersonneMorale
	if pm == nil || pm.Composition == nil {
		return nil, nil
	}
	return pm.Composition.Pouvoirs, nil
}

// Directors returns a flattened view of all directors, individuals and
// companies alike, in registry order.
func (c *CompaniesClient) Directors() ([]Director, error) {
	pouvoirs, err := c.Pouvoirs()
	if err != nil {
		return nil, err
	}

	directors := make([]Director, 0, len(pouvoirs))
	for i, p := range pouvoirs {
		d := Director{
			Position: i,
			Type:     p.TypeDePersonne,
			Role:     p.RoleEntreprise,
			Active:   p.Actif == nil || *p.Actif,
		}

		switch p.TypeDePersonne {
		case PersonTypeIndividual:
			if p.Individu != nil && p.Individu.DescriptionPersonne != nil {
				dp := p.Individu.DescriptionPersonne
				d.Name = dp.Nom
				d.FirstNames = dp.Prenoms
				d.BirthDate = dp.DateDeNaissance
				d.Nationality = dp.Nationalite
				d.Gender = dp.Genre
				if dp.Role != "" {
					d.Role = dp.Role
				}
			}
		case PersonTypeCompany:
			if p.Entreprise != nil {
				d.Name = p.Entreprise.Denomination
				d.Siren = p.Entreprise.Siren
				if p.Entreprise.RoleEntreprise != "" {
					d.Role = p.Entreprise.RoleEntreprise
				}
			}
		}

		directors = append(directors, d)
	}
	return directors, nil
}

// IndividualDirectors returns only the INDIVIDU entries.
func (c *CompaniesClient) IndividualDirectors() ([]Director, error) {
	return c.directorsOfType(PersonTypeIndividual)
}

// CorporateDirectors returns only the ENTREPRISE entries.
func (c *CompaniesClient) CorporateDirectors() ([]Director, error) {
	return c.directorsOfType(PersonTypeCompany)
}

func (c *CompaniesClient) directorsOfType(personType string) ([]Director, error) {
	all, err := c.Directors()
	if err != nil {
		return nil, err
	}
	var out []Director
	for _, d := range all {
		if d.Type == personType {
			out = append(out, d)
		}
	}
	return out, nil
}

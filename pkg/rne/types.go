package rne

// Typed schemas for the RNE JSON documents. Field names mirror the wire
// format of the registry (French key names); only the paths the accessors
// read are modelled, unknown keys are ignored by encoding/json.

// CompanyDoc is the document returned by GET companies/{siren}.
type CompanyDoc struct {
	Formality *Formality `json:"formality,omitempty"`
}

// Formality is the outer envelope of a company record.
type Formality struct {
	Siren          string            `json:"siren,omitempty"`
	FormeJuridique string            `json:"formeJuridique,omitempty"`
	Content        *FormalityContent `json:"content,omitempty"`
}

// FormalityContent carries one of the personneMorale / personnePhysique /
// exploitation branches depending on the legal nature of the company.
type FormalityContent struct {
	NatureCessation  string          `json:"natureCessation,omitempty"`
	NatureCreation   *NatureCreation `json:"natureCreation,omitempty"`
	PersonneMorale   *PersonneMorale `json:"personneMorale,omitempty"`
	PersonnePhysique *PersonneMorale `json:"personnePhysique,omitempty"`
	Exploitation     *PersonneMorale `json:"exploitation,omitempty"`
}

// NatureCreation describes the creation formality.
type NatureCreation struct {
	FormeJuridique string `json:"formeJuridique,omitempty"`
}

// PersonneMorale is the main company branch. The registry reuses the same
// shape for personnePhysique and exploitation with most fields absent.
type PersonneMorale struct {
	Identite                  *Identite        `json:"identite,omitempty"`
	EtablissementPrincipal    *Etablissement   `json:"etablissementPrincipal,omitempty"`
	AutresEtablissements      []Etablissement  `json:"autresEtablissements,omitempty"`
	AdresseEntreprise         *AdresseWrapper  `json:"adresseEntreprise,omitempty"`
	Composition               *Composition     `json:"composition,omitempty"`
	DetailCessationEntreprise *DetailCessation `json:"detailCessationEntreprise,omitempty"`
}

// Identite groups the registered identity of the company.
type Identite struct {
	Entreprise  *EntrepriseIdentity `json:"entreprise,omitempty"`
	Description *IdentityDetails    `json:"description,omitempty"`
}

// EntrepriseIdentity carries the registered names and codes.
type EntrepriseIdentity struct {
	Siren          string `json:"siren,omitempty"`
	Denomination   string `json:"denomination,omitempty"`
	FormeJuridique string `json:"formeJuridique,omitempty"`
	CodeApe        string `json:"codeApe,omitempty"`
	NomCommercial  string `json:"nomCommercial,omitempty"`
}

// IdentityDetails carries the corporate purpose and capital.
type IdentityDetails struct {
	Objet          string `json:"objet,omitempty"`
	MontantCapital *int64 `json:"montantCapital,omitempty"`
}

// Etablissement is one establishment of the company.
type Etablissement struct {
	DescriptionEtablissement *EtablissementDescription `json:"descriptionEtablissement,omitempty"`
	Adresse                  *Adresse                  `json:"adresse,omitempty"`
	Activites                []Activite                `json:"activites,omitempty"`
}

// EtablissementDescription identifies an establishment.
type EtablissementDescription struct {
	Siret         string `json:"siret,omitempty"`
	NomCommercial string `json:"nomCommercial,omitempty"`
}

// Activite describes one declared activity of an establishment.
type Activite struct {
	DescriptionDetaillee string `json:"descriptionDetaillee,omitempty"`
}

// AdresseWrapper wraps the company-level address.
type AdresseWrapper struct {
	Adresse *Adresse `json:"adresse,omitempty"`
}

// Adresse is a postal address as recorded by the registry.
type Adresse struct {
	Pays                    string `json:"pays,omitempty"`
	CodePays                string `json:"codePays,omitempty"`
	CodePostal              string `json:"codePostal,omitempty"`
	Commune                 string `json:"commune,omitempty"`
	ComplementLocalisation  string `json:"complementLocalisation,omitempty"`
	NumVoie                 string `json:"numVoie,omitempty"`
	TypeVoie                string `json:"typeVoie,omitempty"`
	Voie                    string `json:"voie,omitempty"`
	DistributionSpeciale    string `json:"distributionSpeciale,omitempty"`
}

// Composition lists the powers (directors, corporate officers) of the
// company.
type Composition struct {
	Pouvoirs []Pouvoir `json:"pouvoirs,omitempty"`
}

// Pouvoir is one entry of composition.pouvoirs: either an individual
// director or a corporate one, discriminated by TypeDePersonne.
type Pouvoir struct {
	TypeDePersonne        string          `json:"typeDePersonne,omitempty"`
	RoleEntreprise        string          `json:"roleEntreprise,omitempty"`
	SecondRoleEntreprise  string          `json:"secondRoleEntreprise,omitempty"`
	Actif                 *bool           `json:"actif,omitempty"`
	MentionDemissionOrdre *bool           `json:"mentionDemissionOrdre,omitempty"`
	Individu              *Individu       `json:"individu,omitempty"`
	Entreprise            *EntrepriseRef  `json:"entreprise,omitempty"`
}

// Type-of-person discriminators used in composition.pouvoirs.
const (
	PersonTypeIndividual = "INDIVIDU"
	PersonTypeCompany    = "ENTREPRISE"
)

// Individu is an individual director.
type Individu struct {
	DescriptionPersonne *DescriptionPersonne `json:"descriptionPersonne,omitempty"`
	AdresseDomicile     *Adresse             `json:"adresseDomicile,omitempty"`
}

// DescriptionPersonne carries the civil identity of an individual director.
type DescriptionPersonne struct {
	Nom                   string   `json:"nom,omitempty"`
	Prenoms               []string `json:"prenoms,omitempty"`
	Genre                 string   `json:"genre,omitempty"`
	DateDeNaissance       string   `json:"dateDeNaissance,omitempty"`
	Nationalite           string   `json:"nationalite,omitempty"`
	SituationMatrimoniale string   `json:"situationMatrimoniale,omitempty"`
	Role                  string   `json:"role,omitempty"`
}

// EntrepriseRef is a corporate director.
type EntrepriseRef struct {
	Denomination   string `json:"denomination,omitempty"`
	Siren          string `json:"siren,omitempty"`
	RoleEntreprise string `json:"roleEntreprise,omitempty"`
}

// DetailCessation carries the cessation dates of a closed company.
type DetailCessation struct {
	DateRadiation string `json:"dateRadiation,omitempty"`
	DateEffet     string `json:"dateEffet,omitempty"`
}

// AttachmentsDoc is the document returned by GET
// companies/{siren}/attachments: PDF bilans, machine-readable bilans
// (bilans saisis) and legal documents (actes).
type AttachmentsDoc struct {
	Bilans       []BilanPDF   `json:"bilans,omitempty"`
	BilansSaisis []BilanSaisi `json:"bilansSaisis,omitempty"`
	Actes        []Acte       `json:"actes,omitempty"`
}

// BilanPDF is the metadata of one scanned annual-accounts filing.
type BilanPDF struct {
	ID          string `json:"id,omitempty"`
	DateCloture string `json:"dateCloture,omitempty"`
	DateDepot   string `json:"dateDepot,omitempty"`
	TypeBilan   string `json:"typeBilan,omitempty"`
}

// BilanSaisi is one machine-readable annual-accounts filing. Position 0 is
// the most recent.
type BilanSaisi struct {
	ID              string           `json:"id,omitempty"`
	DateCloture     string           `json:"dateCloture,omitempty"`
	DateDepot       string           `json:"dateDepot,omitempty"`
	TypeBilan       string           `json:"typeBilan,omitempty"`
	NumChrono       string           `json:"numChrono,omitempty"`
	Confidentiality string           `json:"confidentiality,omitempty"`
	UpdatedAt       string           `json:"updatedAt,omitempty"`
	BilanSaisi      *BilanSaisiInner `json:"bilanSaisi,omitempty"`
}

// BilanSaisiInner wraps the filing body and its schema version.
type BilanSaisiInner struct {
	Version string `json:"version,omitempty"`
	Bilan   *Bilan `json:"bilan,omitempty"`
}

// Bilan is the filing body: identity header plus detail pages.
type Bilan struct {
	Identite *BilanIdentite `json:"identite,omitempty"`
	Detail   *BilanDetail   `json:"detail,omitempty"`
}

// BilanIdentite is the identity header of a filing.
type BilanIdentite struct {
	Siren                      string `json:"siren,omitempty"`
	Adresse                    string `json:"adresse,omitempty"`
	InfoTraitement             string `json:"infoTraitement,omitempty"`
	CodeConfidentialite        string `json:"codeConfidentialite,omitempty"`
	CodeSaisie                 string `json:"codeSaisie,omitempty"`
	CodeOrigineDevise          string `json:"codeOrigineDevise,omitempty"`
	CodeDevise                 string `json:"codeDevise,omitempty"`
	CodeTypeBilan              string `json:"codeTypeBilan,omitempty"`
	CodeGreffe                 string `json:"codeGreffe,omitempty"`
	NumGestion                 string `json:"numGestion,omitempty"`
	NumDepot                   string `json:"numDepot,omitempty"`
	DateClotureExercice        string `json:"dateClotureExercice,omitempty"`
	DureeExerciceN             *int   `json:"dureeExerciceN,omitempty"`
	DateClotureExerciceNMoins1 string `json:"dateClotureExerciceNMoins1,omitempty"`
	DureeExerciceNMoins1       *int   `json:"dureeExerciceNMoins1,omitempty"`
}

// BilanDetail holds the statement pages.
type BilanDetail struct {
	Pages []Page `json:"pages,omitempty"`
}

// Page is one page of liasse rows.
type Page struct {
	Liasses []Liasse `json:"liasses,omitempty"`
}

// Liasse is one row of the statement: a position code plus up to four
// monetary columns. The meaning of m1..m4 depends on the statement type.
type Liasse struct {
	Code string `json:"code,omitempty"`
	M1   string `json:"m1,omitempty"`
	M2   string `json:"m2,omitempty"`
	M3   string `json:"m3,omitempty"`
	M4   string `json:"m4,omitempty"`
}

// Acte is the metadata of one legal document filed against the company.
type Acte struct {
	ID        string `json:"id,omitempty"`
	DateDepot string `json:"dateDepot,omitempty"`
	TypeRdd   string `json:"typeRdd,omitempty"`
}

package rne

import (
	"fmt"
	"strconv"
	"strings"
)

// BilanType identifies the statement layout of a bilan saisi. The layout
// decides which liasse codes and which monetary columns carry each metric.
type BilanType string

// Statement layouts, per the "Type Bilan" nomenclature of the registry.
const (
	BilanComplet           BilanType = "C"  // full annual accounts
	BilanSimplifie         BilanType = "S"  // simplified annual accounts
	BilanConsolide         BilanType = "K"  // consolidated accounts
	BilanBanque            BilanType = "B"  // bank annual accounts
	BilanAgricoleComplet   BilanType = "AC" // full agricultural accounts
	BilanAgricoleSimplifie BilanType = "AS" // simplified agricultural accounts
)

// fieldCode addresses one cell of the statement: the liasse row carrying
// the code, and the monetary column (m1..m4) to read from that row.
type fieldCode struct {
	field string
	code  string
}

// Revenue (chiffre d'affaires). Simplified statements do not carry a
// single revenue row; see revenueComponents.
var (
	revenueByType = map[BilanType]fieldCode{
		BilanComplet:   {"m3", "FJ"},
		BilanConsolide: {"m3", "FJ"},
	}
	revenuePrevByType = map[BilanType]fieldCode{
		BilanComplet:   {"m4", "FJ"},
		BilanConsolide: {"m4", "FJ"},
	}

	// Simplified statements split revenue across goods, services and
	// merchandise rows, France and export. Revenue is their sum.
	revenueComponents = []fieldCode{
		{"m1", "209"}, // ventes de marchandises, export
		{"m1", "215"}, // production vendue de biens, export
		{"m1", "217"}, // production vendue de services, export
		{"m1", "210"}, // ventes de marchandises, France
		{"m1", "214"}, // production vendue de biens, France
		{"m1", "218"}, // production vendue de services, France
	}
	revenuePrevComponents = []fieldCode{
		{"m2", "210"},
		{"m2", "214"},
		{"m2", "218"},
	}
)

// Equity (capitaux propres). Bank statements split equity across the
// passif rows; see equityComponents.
var (
	equityByType = map[BilanType]fieldCode{
		BilanComplet:   {"m1", "DL"},
		BilanSimplifie: {"m3", "142"},
		BilanConsolide: {"m1", "DL"},
	}
	equityPrevByType = map[BilanType]fieldCode{
		BilanComplet:   {"m2", "DL"},
		BilanSimplifie: {"m4", "142"},
		BilanConsolide: {"m2", "DL"},
	}

	equityComponents = []fieldCode{
		{"m1", "P3"}, // capital souscrit
		{"m1", "P4"}, // primes d'émission
		{"m1", "P5"}, // réserves
		{"m1", "P6"}, // écarts de réévaluation
		{"m1", "P7"}, // report à nouveau
		{"m1", "P8"}, // résultat de l'exercice
	}
	equityPrevComponents = []fieldCode{
		{"m2", "P3"},
		{"m2", "P4"},
		{"m2", "P5"},
		{"m2", "P6"},
		{"m2", "P7"},
		{"m2", "P8"},
	}
)

// Profit/loss (bénéfice ou perte). The metric appears first in the compte
// de résultat and falls back to the bilan passif row when absent.
var (
	profitLossByType = map[BilanType][]fieldCode{
		BilanConsolide: {{"m1", "R6"}},
		BilanSimplifie: {{"m1", "310"}, {"m3", "136"}},
		BilanComplet:   {{"m1", "HN"}, {"m1", "DI"}},
		BilanBanque:    {{"m1", "R3"}, {"m1", "P8"}},
	}
	profitLossPrevByType = map[BilanType][]fieldCode{
		BilanConsolide: {{"m2", "R6"}},
		BilanSimplifie: {{"m2", "310"}, {"m4", "136"}},
		BilanComplet:   {{"m2", "HN"}, {"m2", "DI"}},
		BilanBanque:    {{"m2", "R3"}, {"m2", "P8"}},
	}
)

// Headcount (effectif). Only the full and simplified layouts declare it.
var (
	headcountByType = map[BilanType]fieldCode{
		BilanSimplifie: {"m1", "376"},
		BilanComplet:   {"m1", "YP"},
	}
	headcountPrevByType = map[BilanType]fieldCode{
		BilanSimplifie: {"m2", "376"},
		BilanComplet:   {"m2", "YP"},
	}
)

// column returns the requested monetary column of a liasse row.
func (l Liasse) column(field string) string {
	switch field {
	case "m1":
		return l.M1
	case "m2":
		return l.M2
	case "m3":
		return l.M3
	case "m4":
		return l.M4
	}
	return ""
}

// extractFromPages scans the pages for the first liasse row carrying the
// code and parses the selected column as an integer amount.
func extractFromPages(pages []Page, fc fieldCode) (int64, bool) {
	for _, page := range pages {
		for _, liasse := range page.Liasses {
			if liasse.Code != fc.code {
				continue
			}
			value, err := strconv.ParseInt(strings.TrimSpace(liasse.column(fc.field)), 10, 64)
			if err != nil {
				return 0, false
			}
			return value, true
		}
	}
	return 0, false
}

// extractWithFallback tries each cell in order and returns the first hit.
// The same metric can live in different rows depending on how the filing
// was keyed in.
func extractWithFallback(pages []Page, cells []fieldCode) (int64, bool) {
	for _, fc := range cells {
		if value, ok := extractFromPages(pages, fc); ok {
			return value, true
		}
	}
	return 0, false
}

// sumComponents sums the component cells, skipping absent ones. A zero
// total is treated as absent data.
func sumComponents(pages []Page, cells []fieldCode) (int64, bool) {
	var total int64
	for _, fc := range cells {
		if value, ok := extractFromPages(pages, fc); ok {
			total += value
		}
	}
	if total <= 0 {
		return 0, false
	}
	return total, true
}

// statementPages returns the detail pages of the bilan saisi at position.
func statementPages(doc *AttachmentsDoc, position int) ([]Page, error) {
	if doc == nil || position < 0 || position >= len(doc.BilansSaisis) {
		return nil, &NotFoundError{Field: fmt.Sprintf("bilansSaisis[%d]", position)}
	}
	entry := doc.BilansSaisis[position]
	if entry.BilanSaisi == nil || entry.BilanSaisi.Bilan == nil || entry.BilanSaisi.Bilan.Detail == nil {
		return nil, &NotFoundError{Field: fmt.Sprintf("bilansSaisis[%d].bilanSaisi.bilan.detail.pages", position)}
	}
	return entry.BilanSaisi.Bilan.Detail.Pages, nil
}

// ExtractRevenue returns the revenue (chiffre d'affaires) of the bilan
// saisi at position, read according to the given statement layout. Set
// previousYear for the N-1 column. The layout is taken as declared by the
// caller and is not checked against the filing itself.
func ExtractRevenue(doc *AttachmentsDoc, position int, typ BilanType, previousYear bool) (int64, error) {
	pages, err := statementPages(doc, position)
	if err != nil {
		return 0, err
	}

	if typ == BilanSimplifie {
		components := revenueComponents
		if previousYear {
			components = revenuePrevComponents
		}
		if value, ok := sumComponents(pages, components); ok {
			return value, nil
		}
		return 0, &NotFoundError{Field: "chiffre d'affaires"}
	}

	table := revenueByType
	if previousYear {
		table = revenuePrevByType
	}
	fc, ok := table[typ]
	if !ok {
		return 0, &NotFoundError{Field: "chiffre d'affaires for type " + string(typ)}
	}
	if value, ok := extractFromPages(pages, fc); ok {
		return value, nil
	}
	return 0, &NotFoundError{Field: "chiffre d'affaires"}
}

// ExtractEquity returns the equity (capitaux propres) of the bilan saisi
// at position for the given statement layout.
func ExtractEquity(doc *AttachmentsDoc, position int, typ BilanType, previousYear bool) (int64, error) {
	pages, err := statementPages(doc, position)
	if err != nil {
		return 0, err
	}

	if typ == BilanBanque {
		components := equityComponents
		if previousYear {
			components = equityPrevComponents
		}
		if value, ok := sumComponents(pages, components); ok {
			return value, nil
		}
		return 0, &NotFoundError{Field: "capitaux propres"}
	}

	table := equityByType
	if previousYear {
		table = equityPrevByType
	}
	fc, ok := table[typ]
	if !ok {
		return 0, &NotFoundError{Field: "capitaux propres for type " + string(typ)}
	}
	if value, ok := extractFromPages(pages, fc); ok {
		return value, nil
	}
	return 0, &NotFoundError{Field: "capitaux propres"}
}

// ExtractProfitLoss returns the profit or loss (bénéfice ou perte) of the
// bilan saisi at position for the given statement layout.
func ExtractProfitLoss(doc *AttachmentsDoc, position int, typ BilanType, previousYear bool) (int64, error) {
	pages, err := statementPages(doc, position)
	if err != nil {
		return 0, err
	}

	table := profitLossByType
	if previousYear {
		table = profitLossPrevByType
	}
	cells, ok := table[typ]
	if !ok {
		return 0, &NotFoundError{Field: "bénéfice/perte for type " + string(typ)}
	}
	if value, ok := extractWithFallback(pages, cells); ok {
		return value, nil
	}
	return 0, &NotFoundError{Field: "bénéfice/perte"}
}

// ExtractHeadcount returns the employee count (effectif) of the bilan
// saisi at position for the given statement layout.
func ExtractHeadcount(doc *AttachmentsDoc, position int, typ BilanType, previousYear bool) (int64, error) {
	pages, err := statementPages(doc, position)
	if err != nil {
		return 0, err
	}

	table := headcountByType
	if previousYear {
		table = headcountPrevByType
	}
	fc, ok := table[typ]
	if !ok {
		return 0, &NotFoundError{Field: "effectif for type " + string(typ)}
	}
	if value, ok := extractFromPages(pages, fc); ok {
		return value, nil
	}
	return 0, &NotFoundError{Field: "effectif"}
}

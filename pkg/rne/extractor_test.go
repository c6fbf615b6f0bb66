package rne

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// docWithPages builds an attachments index with a single bilan saisi
// carrying the given liasse rows.
func docWithPages(typeBilan string, liasses []Liasse) *AttachmentsDoc {
	return &AttachmentsDoc{
		BilansSaisis: []BilanSaisi{
			{
				ID:          "BS1",
				TypeBilan:   typeBilan,
				DateCloture: "2023-12-31",
				BilanSaisi: &BilanSaisiInner{
					Version: "5",
					Bilan: &Bilan{
						Detail: &BilanDetail{
							Pages: []Page{{Liasses: liasses}},
						},
					},
				},
			},
		},
	}
}

func TestExtractRevenueComplet(t *testing.T) {
	doc := docWithPages("C", []Liasse{
		{Code: "FJ", M3: "125000", M4: "118000"},
	})

	value, err := ExtractRevenue(doc, 0, BilanComplet, false)
	require.NoError(t, err)
	require.Equal(t, int64(125000), value)

	prev, err := ExtractRevenue(doc, 0, BilanComplet, true)
	require.NoError(t, err)
	require.Equal(t, int64(118000), prev)
}

func TestExtractRevenueSimplifieSumsComponents(t *testing.T) {
	doc := docWithPages("S", []Liasse{
		{Code: "209", M1: "10"},
		{Code: "215", M1: "20"},
		{Code: "217", M1: "30"},
		{Code: "210", M1: "40", M2: "5"},
		{Code: "214", M1: "50", M2: "6"},
		{Code: "218", M1: "60", M2: "7"},
	})

	value, err := ExtractRevenue(doc, 0, BilanSimplifie, false)
	require.NoError(t, err)
	require.Equal(t, int64(210), value)

	prev, err := ExtractRevenue(doc, 0, BilanSimplifie, true)
	require.NoError(t, err)
	require.Equal(t, int64(18), prev)
}

func TestExtractRevenueSimplifieZeroTotalIsAbsent(t *testing.T) {
	doc := docWithPages("S", []Liasse{
		{Code: "210", M1: "0"},
		{Code: "214", M1: "0"},
	})

	_, err := ExtractRevenue(doc, 0, BilanSimplifie, false)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestExtractTrustsCallerLayout(t *testing.T) {
	// A simplified filing read with the full-statement layout finds no
	// matching rows; the mismatch is not detected, only the absence.
	doc := docWithPages("S", []Liasse{
		{Code: "210", M1: "40"},
		{Code: "214", M1: "50"},
	})

	_, err := ExtractRevenue(doc, 0, BilanComplet, false)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	value, err := ExtractRevenue(doc, 0, BilanSimplifie, false)
	require.NoError(t, err)
	require.Equal(t, int64(90), value)
}

func TestExtractEquity(t *testing.T) {
	tests := []struct {
		name    string
		typ     BilanType
		liasses []Liasse
		want    int64
		prev    int64
	}{
		{
			name:    "complet",
			typ:     BilanComplet,
			liasses: []Liasse{{Code: "DL", M1: "500", M2: "450"}},
			want:    500,
			prev:    450,
		},
		{
			name:    "simplifie",
			typ:     BilanSimplifie,
			liasses: []Liasse{{Code: "142", M3: "700", M4: "650"}},
			want:    700,
			prev:    650,
		},
		{
			name: "banque sums passif rows",
			typ:  BilanBanque,
			liasses: []Liasse{
				{Code: "P3", M1: "100", M2: "90"},
				{Code: "P4", M1: "10", M2: "9"},
				{Code: "P5", M1: "20", M2: "18"},
				{Code: "P7", M1: "-5", M2: "-4"},
				{Code: "P8", M1: "15", M2: "12"},
			},
			want: 140,
			prev: 125,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := docWithPages(string(tt.typ), tt.liasses)

			value, err := ExtractEquity(doc, 0, tt.typ, false)
			require.NoError(t, err)
			require.Equal(t, tt.want, value)

			prev, err := ExtractEquity(doc, 0, tt.typ, true)
			require.NoError(t, err)
			require.Equal(t, tt.prev, prev)
		})
	}
}

func TestExtractProfitLossFallback(t *testing.T) {
	// No compte de résultat row (310); the bilan passif row (136) must be
	// used instead.
	doc := docWithPages("S", []Liasse{
		{Code: "136", M3: "99", M4: "88"},
	})

	value, err := ExtractProfitLoss(doc, 0, BilanSimplifie, false)
	require.NoError(t, err)
	require.Equal(t, int64(99), value)

	prev, err := ExtractProfitLoss(doc, 0, BilanSimplifie, true)
	require.NoError(t, err)
	require.Equal(t, int64(88), prev)
}

func TestExtractProfitLossPrefersCompteDeResultat(t *testing.T) {
	doc := docWithPages("C", []Liasse{
		{Code: "HN", M1: "-1200", M2: "300"},
		{Code: "DI", M1: "9999"},
	})

	value, err := ExtractProfitLoss(doc, 0, BilanComplet, false)
	require.NoError(t, err)
	require.Equal(t, int64(-1200), value)
}

func TestExtractProfitLossBanque(t *testing.T) {
	doc := docWithPages("B", []Liasse{
		{Code: "P8", M1: "42", M2: "41"},
	})

	value, err := ExtractProfitLoss(doc, 0, BilanBanque, false)
	require.NoError(t, err)
	require.Equal(t, int64(42), value)
}

func TestExtractHeadcount(t *testing.T) {
	doc := docWithPages("C", []Liasse{
		{Code: "YP", M1: "12", M2: "11"},
	})

	value, err := ExtractHeadcount(doc, 0, BilanComplet, false)
	require.NoError(t, err)
	require.Equal(t, int64(12), value)

	prev, err := ExtractHeadcount(doc, 0, BilanComplet, true)
	require.NoError(t, err)
	require.Equal(t, int64(11), prev)
}

func TestExtractUnsupportedType(t *testing.T) {
	doc := docWithPages("AC", []Liasse{{Code: "FJ", M3: "1"}})

	_, err := ExtractRevenue(doc, 0, BilanAgricoleComplet, false)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	_, err = ExtractHeadcount(doc, 0, BilanAgricoleComplet, false)
	require.ErrorAs(t, err, &nf)
}

func TestExtractPositionOutOfRange(t *testing.T) {
	doc := docWithPages("C", nil)

	_, err := ExtractRevenue(doc, 3, BilanComplet, false)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
}

func TestExtractInvalidAmountIsAbsent(t *testing.T) {
	doc := docWithPages("C", []Liasse{{Code: "FJ", M3: "n/a"}})

	_, err := ExtractRevenue(doc, 0, BilanComplet, false)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

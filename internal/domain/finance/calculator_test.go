package finance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/finance"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Ligne de 150 unités à 319.33 avec 7% de remise : vecteur de référence
// vérifié à la main. L'arrondi a lieu sur la ligne, pas sur l'agrégat.
func TestLigne_RemiseEtArrondi(t *testing.T) {
	prixNet := finance.NetUnitPrice(dec("319.33"), dec("7"))
	require.True(t, prixNet.Equal(dec("296.9769")), "prix net = %s", prixNet)

	ht := finance.LineHT(dec("150"), prixNet)
	assert.True(t, ht.Equal(dec("44546.54")), "HT = %s", ht)

	tva := finance.LineTVA(ht, dec("19"))
	assert.True(t, tva.Equal(dec("8463.84")), "TVA = %s", tva)

	totals := finance.DocumentTotals([]decimal.Decimal{ht}, []decimal.Decimal{tva})
	assert.True(t, totals.TTC.Equal(dec("53010.38")), "TTC = %s", totals.TTC)
}

func TestLigne_SansRemise(t *testing.T) {
	prixNet := finance.NetUnitPrice(dec("1000"), decimal.Zero)
	assert.True(t, prixNet.Equal(dec("1000")))

	ht := finance.LineHT(dec("1"), prixNet)
	tva := finance.LineTVA(ht, dec("19"))
	totals := finance.DocumentTotals([]decimal.Decimal{ht}, []decimal.Decimal{tva})
	assert.True(t, totals.TTC.Equal(dec("1190")))
}

// Le total du document doit rester la somme exacte des lignes arrondies,
// même quand l'arrondi global donnerait un centime de différence.
func TestDocumentTotals_SommeDesLignesArrondies(t *testing.T) {
	// 3 lignes de 0.335 HT : arrondies ligne à ligne -> 3 x 0.34 = 1.02
	// (un arrondi après agrégation donnerait 1.01)
	prixNet := dec("0.335")
	var hts, tvas []decimal.Decimal
	for i := 0; i < 3; i++ {
		ht := finance.LineHT(dec("1"), prixNet)
		hts = append(hts, ht)
		tvas = append(tvas, finance.LineTVA(ht, decimal.Zero))
	}
	totals := finance.DocumentTotals(hts, tvas)
	assert.True(t, totals.HT.Equal(dec("1.02")), "HT = %s", totals.HT)
	assert.True(t, totals.TTC.Equal(dec("1.02")))
}

// Quantité négative (ligne d'avoir) : les montants suivent le signe.
func TestLigne_Avoir(t *testing.T) {
	prixNet := finance.NetUnitPrice(dec("500"), dec("10"))
	ht := finance.LineHT(dec("-2"), prixNet)
	assert.True(t, ht.Equal(dec("-900")), "HT = %s", ht)
	tva := finance.LineTVA(ht, dec("19"))
	assert.True(t, tva.Equal(dec("-171")), "TVA = %s", tva)
}

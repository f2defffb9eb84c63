package finance

import "github.com/shopspring/decimal"

// Calculs monétaires des documents commerciaux (service de domaine, pur).
// L'arrondi se fait au niveau de la ligne, jamais après agrégation : le total
// imprimé reste ainsi égal à la somme des montants de ligne imprimés.

// Totals regroupe les totaux HT/TVA/TTC d'un document.
type Totals struct {
	HT  decimal.Decimal
	TVA decimal.Decimal
	TTC decimal.Decimal
}

// NetUnitPrice retourne le prix unitaire net : catalogue * (1 - remise/100).
// Non arrondi : il est conservé tel quel sur la ligne pour l'audit.
func NetUnitPrice(prixCatalogue, remisePct decimal.Decimal) decimal.Decimal {
	cent := decimal.NewFromInt(100)
	return prixCatalogue.Mul(cent.Sub(remisePct)).Div(cent)
}

// LineHT retourne quantité * prix net, arrondi à 2 décimales.
func LineHT(quantity, prixNet decimal.Decimal) decimal.Decimal {
	return quantity.Mul(prixNet).Round(2)
}

// LineTVA retourne la TVA de la ligne : montant HT * taux/100, arrondi à 2 décimales.
func LineTVA(lineHT, tauxTVA decimal.Decimal) decimal.Decimal {
	return lineHT.Mul(tauxTVA).Div(decimal.NewFromInt(100)).Round(2)
}

// DocumentTotals agrège des montants de ligne déjà arrondis.
// TTC = HT + TVA, sans arrondi supplémentaire indépendant.
func DocumentTotals(lineHTs, lineTVAs []decimal.Decimal) Totals {
	var ht, tva decimal.Decimal
	for _, v := range lineHTs {
		ht = ht.Add(v)
	}
	for _, v := range lineTVAs {
		tva = tva.Add(v)
	}
	ht = ht.Round(2)
	tva = tva.Round(2)
	return Totals{HT: ht, TVA: tva, TTC: ht.Add(tva)}
}

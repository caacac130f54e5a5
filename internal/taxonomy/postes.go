// Package taxonomy holds the static reporting reference tables: ADEME postes,
// GHG Protocol categories and the default category catalog.
package taxonomy

import "sort"

// Poste is one line of the ADEME BEGES emission table.
type Poste struct {
	Number int
	Code   string
	Label  string
}

// Scope returns the GHG scope of the poste from the first digit of its code.
func (p Poste) Scope() int {
	return ScopeOfCode(p.Code)
}

// ScopeOfCode maps a category code to a scope: "1.x" is Scope 1, "2.x" is
// Scope 2, anything else is Scope 3.
func ScopeOfCode(code string) int {
	if code == "" {
		return 3
	}
	switch code[0] {
	case '1':
		return 1
	case '2':
		return 2
	default:
		return 3
	}
}

var postesByCode = map[string]Poste{
	"1.1": {1, "1.1", "Émissions directes des sources fixes de combustion"},
	"1.2": {2, "1.2", "Émissions directes des sources mobiles à moteur thermique"},
	"1.4": {3, "1.4", "Émissions directes fugitives"},
	"1.5": {4, "1.5", "Émissions issues de la biomasse (sols et forêts)"},
	"2.1": {5, "2.1", "Émissions indirectes liées à la consommation d'électricité"},
	"2.2": {6, "2.2", "Émissions indirectes liées à la consommation de vapeur, chaleur ou froid"},
	"3.1": {7, "3.1", "Achats de produits ou services"},
	"3.2": {8, "3.2", "Immobilisations de biens"},
	"3.3": {9, "3.3", "Déchets"},
	"3.5": {10, "3.5", "Transport de marchandise amont"},
	"4.1": {11, "4.1", "Transport de marchandise aval"},
	"4.2": {12, "4.2", "Déplacements professionnels"},
	"4.3": {13, "4.3", "Actifs en leasing amont"},
	"4.4": {14, "4.4", "Investissements"},
	"4.5": {15, "4.5", "Transport des visiteurs et des clients"},
	"5.1": {16, "5.1", "Transport de marchandise aval"},
	"5.2": {17, "5.2", "Utilisation des produits vendus"},
	"5.3": {18, "5.3", "Fin de vie des produits vendus"},
	"5.4": {19, "5.4", "Franchise aval"},
	"5.5": {20, "5.5", "Leasing aval"},
	"6.1": {21, "6.1", "Déplacements domicile travail"},
	"6.2": {22, "6.2", "Autres émissions indirectes"},
}

var postesOrdered = func() []Poste {
	out := make([]Poste, 0, len(postesByCode))
	for _, p := range postesByCode {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}()

// Postes returns the 22 ADEME postes ordered by number.
func Postes() []Poste {
	out := make([]Poste, len(postesOrdered))
	copy(out, postesOrdered)
	return out
}

// PosteByCode looks up the poste for a category code.
func PosteByCode(code string) (Poste, bool) {
	p, ok := postesByCode[code]
	return p, ok
}

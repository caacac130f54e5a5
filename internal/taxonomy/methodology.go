package taxonomy

import "carbex/internal/domain"

const methodologyVersion = "2024"

// MethodologyFor returns the emission factor reference used for an
// organization registered in country.
func MethodologyFor(country string) domain.Methodology {
	m := domain.Methodology{
		Standard:  "GHG Protocol Corporate Standard",
		Version:   methodologyVersion,
		GWPSource: "GIEC AR6 (PRG à 100 ans)",
	}
	switch country {
	case "FR":
		m.FactorSource = "ADEME Base Empreinte"
		m.URLs = []string{"https://base-empreinte.ademe.fr", "https://ghgprotocol.org"}
	case "DE":
		m.FactorSource = "UBA (Umweltbundesamt)"
		m.URLs = []string{"https://www.umweltbundesamt.de", "https://ghgprotocol.org"}
	default:
		m.FactorSource = "GHG Protocol emission factors"
		m.URLs = []string{"https://ghgprotocol.org"}
	}
	return m
}

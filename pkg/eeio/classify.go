package eeio

import "strings"

// SupplyChainMultiplier picks the literature-based total requirements
// multiplier for the Energy and Land tracks, banded on direct intensity and
// code prefix. It is a pure function of (code, name, direct intensity): the
// same inputs always produce the same multiplier. This banding is a
// documented approximation standing in for a true Leontief-derived
// multiplier until energy/land flow rows exist in the transaction data
// (FlowDerived replaces it then; see EnergyLandStrategy).
func SupplyChainMultiplier(code, name string, directIntensity float64) float64 {
	nameLower := strings.ToLower(name)

	switch {
	// Very energy-intensive sectors: high direct intensity, short supply
	// chains.
	case directIntensity > 12000:
		return 1.35
	// Heavy manufacturing.
	case directIntensity > 8000:
		return 1.45
	// Construction: low direct, very high materials supply chain.
	case strings.HasPrefix(code, "23"):
		return 2.10
	// Mining and extraction.
	case strings.HasPrefix(code, "21"):
		return 1.40
	// Agriculture and forestry.
	case strings.HasPrefix(code, "11"):
		return 1.60
	// Utilities already include the generation supply chain.
	case strings.HasPrefix(code, "22"):
		return 1.30
	// Standard manufacturing; complex defense platforms carry more
	// materials and components.
	case strings.HasPrefix(code, "3") && directIntensity > 3000:
		if containsAny(nameLower, complexPlatformKeywords) {
			return 1.75
		}
		return 1.65
	// Light manufacturing and fabrication.
	case strings.HasPrefix(code, "3"):
		return 1.55
	// Wholesale and retail trade.
	case strings.HasPrefix(code, "42"), strings.HasPrefix(code, "44"):
		return 1.50
	// Transportation and warehousing.
	case strings.HasPrefix(code, "48"):
		return 1.60
	// Information: high purchased services.
	case strings.HasPrefix(code, "51"):
		return 1.70
	// Professional services.
	case strings.HasPrefix(code, "54"):
		return 1.80
	// Other services.
	case twoDigitPrefixAtLeast(code, 55):
		return 1.75
	}
	return 1.60
}

// complexPlatformKeywords flags the manufacturing sectors building complex
// defense platforms.
var complexPlatformKeywords = []string{
	"aircraft", "missile", "ship", "vessel", "vehicle", "tank",
}

// defenseNAICS enumerates sector codes treated as defense-relevant
// regardless of name.
var defenseNAICS = map[string]bool{
	"336411": true, "336412": true, "336413": true, "336414": true, "33641A": true,
	"336611": true, "336992": true,
	"332993": true, "332994": true, "33299A": true,
	"334220": true, "334290": true, "334511": true, "334519": true, "334413": true,
	"541330": true, "541512": true, "541715": true,
	"237310": true, "237990": true,
	"541610": true, "561210": true, "561499": true, "721": true,
}

// defenseKeywords marks sectors as defense-relevant by name.
var defenseKeywords = []string{
	"aircraft", "missile", "ship", "vessel", "naval", "marine",
	"ammunition", "arms", "ordnance", "weapon", "military",
	"defense", "armored", "tank", "radar", "navigation",
	"aerospace", "guided missile",
}

// IsDefenseRelevant reports whether a sector belongs to the defense
// industrial base, by code or by name keyword. Pure classification; the rule
// set lives here so it stays auditable.
func IsDefenseRelevant(code, name string) bool {
	if defenseNAICS[code] {
		return true
	}
	return containsAny(strings.ToLower(name), defenseKeywords)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// twoDigitPrefixAtLeast reports whether the first two characters of code are
// a number >= min.
func twoDigitPrefixAtLeast(code string, min int) bool {
	if len(code) < 2 {
		return false
	}
	n := 0
	for _, r := range code[:2] {
		if r < '0' || r > '9' {
			return false
		}
		n = n*10 + int(r-'0')
	}
	return n >= min
}

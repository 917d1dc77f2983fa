package eeio

import "strings"

// Direct intensity tables for the Energy and Land tracks. The transaction
// snapshot carries no first-class energy or land flow rows, so these
// categories come from published survey-derived direct intensities keyed on
// NAICS-like code prefixes (EIA MECS/CBECS/AEO for energy), with a
// supply-chain multiplier applied on top (see SupplyChainMultiplier).

// energyIntensityByPrefix maps a 3-digit code prefix to direct energy
// intensity in MJ per $1000 of output.
var energyIntensityByPrefix = map[string]float64{
	// Energy-intensive manufacturing
	"331": 15000, // Primary metals
	"324": 18000, // Petroleum & coal products
	"327": 12000, // Nonmetallic mineral products
	"322": 10000, // Paper
	"325": 8000,  // Chemicals

	// Standard manufacturing
	"336": 5500, // Transportation equipment
	"333": 5000, // Machinery
	"332": 5500, // Fabricated metal products
	"335": 4500, // Electrical equipment
	"334": 4000, // Computer & electronic products
	"337": 4000, // Furniture
	"326": 6000, // Plastics & rubber
	"321": 7000, // Wood products
	"339": 3500, // Misc. manufacturing

	// Light manufacturing & food processing
	"311": 3500, // Food
	"312": 3000, // Beverage & tobacco
	"313": 4000, // Textile mills
	"314": 3000, // Textile product mills
	"315": 2500, // Apparel
	"316": 2500, // Leather
	"323": 3500, // Printing

	// Mining & extraction
	"211": 9000,  // Oil & gas extraction
	"212": 10000, // Mining
	"213": 7000,  // Support activities for mining

	// Agriculture & forestry
	"111": 4000, // Crop production
	"112": 3500, // Animal production
	"113": 4500, // Forestry
	"114": 5000, // Fishing
	"115": 4000, // Ag support activities

	// Utilities
	"221": 2500,

	// Construction
	"236": 3500,
	"237": 4000,
	"238": 3000,
	"230": 3500,
	"233": 3800,

	// Transportation & warehousing
	"481": 8000, // Air
	"482": 3500, // Rail
	"483": 4500, // Water
	"484": 7000, // Truck
	"485": 5000, // Transit
	"486": 2000, // Pipeline
	"487": 4000, // Scenic & sightseeing
	"488": 3000, // Support activities
	"492": 3500, // Couriers
	"493": 2500, // Warehousing

	// Wholesale & retail
	"423": 1500,
	"424": 1500,
	"425": 1500,
	"441": 1200,
	"442": 1000,
	"443": 1200,
	"444": 1300,
	"445": 1800,
	"446": 1000,
	"447": 1500,
	"448": 1000,
	"451": 1000,
	"452": 1200,
	"453": 900,
	"454": 800,

	// Information
	"511": 1800,
	"512": 1200,
	"513": 2500,
	"514": 3000,
	"517": 2500,
	"518": 3500,
	"519": 2000,

	// Finance, insurance, real estate
	"521": 800,
	"522": 800,
	"523": 750,
	"524": 800,
	"525": 750,
	"531": 1000,
	"532": 1200,
	"533": 900,

	// Professional & business services
	"541": 900,
	"551": 800,
	"561": 1200,
	"562": 2500,

	// Education, health, social services
	"611": 1200,
	"621": 1800,
	"622": 2500,
	"623": 1500,
	"624": 1000,

	// Arts, entertainment, accommodation, food services
	"711": 1500,
	"712": 1200,
	"713": 1800,
	"721": 2200,
	"722": 3000,

	// Other services
	"811": 1500,
	"812": 1800,
	"813": 800,
	"814": 900,

	// Government
	"S00": 1200,
	"GFG": 1500,
	"GSL": 1300,
}

// energyKeywordFallbacks adjusts sectors whose prefix is not in the table
// but whose name identifies the activity. Checked in order.
var energyKeywordFallbacks = []struct {
	keyword   string
	intensity float64
}{
	{"data", 3500},
	{"server", 3500},
	{"hosting", 3500},
	{"hospital", 2500},
	{"refiner", 18000},
	{"petroleum", 18000},
	{"steel", 16000},
	{"iron", 16000},
	{"aluminum", 20000},
	{"cement", 12000},
	{"concrete", 12000},
	{"glass", 11000},
	{"chemical", 8000},
	{"aircraft", 6000},
	{"aerospace", 6000},
	{"ship", 6500},
	{"boat", 6500},
	{"vehicle", 5500},
	{"automotive", 5500},
	{"truck", 5500},
	{"semiconductor", 4500},
	{"chip", 4500},
	{"fabrication", 4500},
	{"food", 3000},
	{"restaurant", 3000},
	{"software", 700},
	{"computer systems", 700},
}

// EnergyDirectIntensity returns the direct energy intensity (MJ per $1000)
// for a sector. Resolution order: prefix table, name keywords, broad prefix
// defaults, national average.
func EnergyDirectIntensity(code, name string) float64 {
	prefix := code
	if len(code) >= 3 {
		prefix = code[:3]
	}
	if v, ok := energyIntensityByPrefix[prefix]; ok {
		return v
	}

	nameLower := strings.ToLower(name)
	for _, fb := range energyKeywordFallbacks {
		if strings.Contains(nameLower, fb.keyword) {
			return fb.intensity
		}
	}

	switch {
	case strings.HasPrefix(code, "31"), strings.HasPrefix(code, "32"), strings.HasPrefix(code, "33"):
		return 4000 // manufacturing average
	case strings.HasPrefix(code, "2"):
		return 3500 // construction/utilities average
	case strings.HasPrefix(code, "1"):
		return 4000 // agriculture/mining average
	case strings.HasPrefix(code, "4"), strings.HasPrefix(code, "5"):
		return 1200 // trade/services average
	case strings.HasPrefix(code, "6"), strings.HasPrefix(code, "7"), strings.HasPrefix(code, "8"):
		return 1000 // services average
	}
	return 1500 // national economy average
}

// landIntensityByPrefix maps a 3-digit code prefix to direct land occupation
// in m2-year per $1000 of output, derived from national land-use satellite
// accounts. Land use concentrates overwhelmingly in agriculture and
// forestry; everything downstream is building and yard footprint.
var landIntensityByPrefix = map[string]float64{
	"111": 2500, // Crop production
	"112": 1800, // Animal production (grazing)
	"113": 4000, // Forestry
	"114": 60,   // Fishing
	"115": 800,  // Ag support activities

	"211": 300, // Oil & gas extraction
	"212": 500, // Mining
	"213": 250, // Support activities for mining

	"221": 150, // Utilities (rights of way, reservoirs)

	"236": 120,
	"237": 150,
	"238": 80,

	"481": 90, // Airports
	"482": 120,
	"484": 70,
	"493": 60,
}

// LandDirectIntensity returns the direct land occupation intensity
// (m2-year per $1000) for a sector.
func LandDirectIntensity(code, name string) float64 {
	prefix := code
	if len(code) >= 3 {
		prefix = code[:3]
	}
	if v, ok := landIntensityByPrefix[prefix]; ok {
		return v
	}

	nameLower := strings.ToLower(name)
	if strings.Contains(nameLower, "farm") || strings.Contains(nameLower, "crop") {
		return 2500
	}
	if strings.Contains(nameLower, "forest") || strings.Contains(nameLower, "logging") {
		return 4000
	}

	switch {
	case strings.HasPrefix(code, "31"), strings.HasPrefix(code, "32"), strings.HasPrefix(code, "33"):
		return 40 // manufacturing footprint
	case strings.HasPrefix(code, "2"):
		return 100
	case strings.HasPrefix(code, "4"):
		return 30
	default:
		return 15 // office-based services
	}
}

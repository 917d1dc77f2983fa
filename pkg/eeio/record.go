// Package eeio implements the environmentally-extended input-output model
// behind the multiplier tables: it loads economic transaction and
// environmental flow snapshots, builds the direct requirements matrix A,
// computes the Leontief inverse L = (I - A)^-1, aggregates flows into the
// B matrix and derives total impact multipliers M = B * L per $1000 of
// sector spending.
package eeio

// ImpactCategory identifies one of the model's environmental impact
// categories.
type ImpactCategory string

const (
	CategoryGHG    ImpactCategory = "GHG"
	CategoryEnergy ImpactCategory = "Energy"
	CategoryWater  ImpactCategory = "Water"
	CategoryLand   ImpactCategory = "Land"
)

// Categories lists all impact categories in matrix row order. The row order
// is fixed: B, M and every per-category slice use this ordering.
var Categories = []ImpactCategory{CategoryGHG, CategoryEnergy, CategoryWater, CategoryLand}

// CategoryIndex returns the fixed matrix row for a category.
func CategoryIndex(c ImpactCategory) (int, bool) {
	for i, cat := range Categories {
		if cat == c {
			return i, true
		}
	}
	return 0, false
}

// CategoryUnit returns the presentation unit for a category (per $1000 of
// spending).
func CategoryUnit(c ImpactCategory) string {
	switch c {
	case CategoryGHG:
		return "kg CO2 eq"
	case CategoryEnergy:
		return "MJ"
	case CategoryWater:
		return "gallons"
	case CategoryLand:
		return "m2-year"
	}
	return ""
}

// CategoryName returns the human-readable category name.
func CategoryName(c ImpactCategory) string {
	switch c {
	case CategoryGHG:
		return "Greenhouse Gas Emissions"
	case CategoryEnergy:
		return "Energy Use"
	case CategoryWater:
		return "Water Consumption"
	case CategoryLand:
		return "Land Use"
	}
	return string(c)
}

// CategoryDescription returns the one-line category description used in
// calculation results.
func CategoryDescription(c ImpactCategory) string {
	switch c {
	case CategoryGHG:
		return "Total CO2 equivalent emissions"
	case CategoryEnergy:
		return "Total energy consumption"
	case CategoryWater:
		return "Total freshwater use"
	case CategoryLand:
		return "Total land occupation"
	}
	return ""
}

// Substance is a canonical environmental flow substance.
type Substance string

const (
	SubstanceCO2        Substance = "CO2"
	SubstanceCH4        Substance = "CH4"
	SubstanceN2O        Substance = "N2O"
	SubstanceFreshWater Substance = "FreshWater"
)

// Global warming potentials (100-year horizon, kg CO2e per kg of gas) and
// the freshwater unit conversion. GWP weighting is applied exactly once, at
// flow aggregation.
const (
	GWPCH4 = 28.0
	GWPN2O = 265.0

	GallonsPerCubicMeter = 264.172
)

// TransactionRecord is one economic flow between two sectors: the process on
// the consuming side and the sector producing the input. Amount is in USD
// (or USD-equivalent) and may be negative for corrections and byproducts.
type TransactionRecord struct {
	ProcessID  string
	SectorCode string
	SectorName string
	Amount     float64
}

// FlowRecord is one environmental exchange associated with a process, in its
// native unit.
type FlowRecord struct {
	ProcessID string
	Substance Substance
	Amount    float64
	Unit      string
}

// canonicalSubstance maps raw flowable names from the source data onto
// canonical substances. Unknown flowables are not an error; they are outside
// the model's categories and get skipped during aggregation.
func canonicalSubstance(flowable string) (Substance, bool) {
	switch flowable {
	case "Carbon dioxide":
		return SubstanceCO2, true
	case "Methane":
		return SubstanceCH4, true
	case "Nitrous oxide":
		return SubstanceN2O, true
	case "Water, fresh":
		return SubstanceFreshWater, true
	}
	return "", false
}

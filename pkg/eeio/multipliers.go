package eeio

import (
	"time"

	"gonum.org/v1/gonum/mat"
)

// SectorMultipliers is the published per-sector row of the multiplier table:
// total supply-chain environmental impact per $1000 of spending.
type SectorMultipliers struct {
	Name            string  `json:"name"`
	GHG             float64 `json:"GHG"`    // kg CO2e per $1000
	Energy          float64 `json:"Energy"` // MJ per $1000
	Water           float64 `json:"Water"`  // gallons per $1000
	Land            float64 `json:"Land"`   // m2-year per $1000
	DefenseRelevant bool    `json:"is_defense_relevant"`
}

// Metadata describes how a table was built and how much to trust it.
type Metadata struct {
	Description     string                    `json:"description"`
	Methodology     string                    `json:"methodology"`
	DataSources     string                    `json:"data_sources"`
	ModelVersion    string                    `json:"model_version"`
	IOYear          int                       `json:"io_year"`
	CalculationDate time.Time                 `json:"calculation_date"`
	Strategy        string                    `json:"energy_land_strategy"`
	Degraded        bool                      `json:"degraded"`
	Uncertainty     map[ImpactCategory]string `json:"uncertainty"`

	SkippedTransactionRows int     `json:"skipped_transaction_rows"`
	SkippedFlowRows        int     `json:"skipped_flow_rows"`
	SkippedFlowProcesses   int     `json:"skipped_flow_processes"`
	SkippedFlowUnits       int     `json:"skipped_flow_units"`
	SkippedDollars         float64 `json:"skipped_dollars"`
}

// Table is an immutable sector -> multiplier mapping produced by one model
// build. A rebuild produces a new Table; nothing mutates an existing one.
type Table struct {
	Sectors map[string]SectorMultipliers `json:"sectors"`
	Meta    Metadata                     `json:"metadata"`
}

// DefaultUncertainty is the per-category uncertainty band of the current
// methodology: flow-derived categories are tighter than the banded ones.
func DefaultUncertainty() map[ImpactCategory]string {
	return map[ImpactCategory]string{
		CategoryGHG:    "±25%",
		CategoryEnergy: "±25-35%",
		CategoryWater:  "±40%",
		CategoryLand:   "±50%",
	}
}

// CalculateParams carries everything the multiplier calculation needs.
type CalculateParams struct {
	Index    *SectorIndex
	B        *mat.Dense
	Leontief LeontiefResult
	Strategy EnergyLandStrategy
	Meta     Metadata
}

// CalculateMultipliers computes M = B * L, rescales from per-dollar to
// per-$1000, fills the Energy and Land tracks from the configured strategy
// and assembles the final table. The Leontief degraded flag is carried into
// the table metadata.
func CalculateMultipliers(p CalculateParams) *Table {
	var m mat.Dense
	m.Mul(p.B, p.Leontief.L)

	ghgRow, _ := CategoryIndex(CategoryGHG)
	waterRow, _ := CategoryIndex(CategoryWater)

	strategy := p.Strategy
	if strategy == nil {
		strategy = IntensityBanded{}
	}
	energy, land := strategy.EnergyLand(p.Index)

	sectors := make(map[string]SectorMultipliers, p.Index.Len())
	for j := 0; j < p.Index.Len(); j++ {
		code := p.Index.Code(j)
		name := p.Index.Name(code)
		sectors[code] = SectorMultipliers{
			Name:            name,
			GHG:             m.At(ghgRow, j) * 1000,
			Energy:          energy[j],
			Water:           m.At(waterRow, j) * 1000,
			Land:            land[j],
			DefenseRelevant: IsDefenseRelevant(code, name),
		}
	}

	meta := p.Meta
	meta.Degraded = p.Leontief.Degraded
	meta.Strategy = strategy.Name()
	if meta.Uncertainty == nil {
		meta.Uncertainty = DefaultUncertainty()
	}

	return &Table{Sectors: sectors, Meta: meta}
}

// DefenseSectors returns the defense-industrial-base slice of the table.
// The full and defense views are one table with a filter, not two builds.
func (t *Table) DefenseSectors() map[string]SectorMultipliers {
	out := make(map[string]SectorMultipliers)
	for code, mult := range t.Sectors {
		if mult.DefenseRelevant {
			out[code] = mult
		}
	}
	return out
}

package eeio

import (
	"gonum.org/v1/gonum/mat"

	"github.com/open-dio/opendio/pkg/logger"
)

// FlowTotals holds the per-process direct flows after category mapping:
// GHG in kg CO2e (GWP applied exactly once, here) and water in gallons.
// Energy and Land have no first-class flow rows in the source data; those
// categories come from the intensity tables (see EnergyLandStrategy).
type FlowTotals struct {
	GHG   float64
	Water float64
}

// FlowAggregation is the result of mapping raw flow records into impact
// categories, keyed by process id.
type FlowAggregation struct {
	ByProcess map[string]FlowTotals

	// SkippedUnits counts water rows whose unit could not be converted to
	// gallons.
	SkippedUnits int
}

// AggregateFlows converts raw flow records into per-process category totals.
// Category mapping: CO2 counts as-is, CH4 and N2O are weighted by their
// 100-year GWP into kg CO2e, fresh water is normalized to gallons. Each
// substance maps to exactly one category, so nothing double-counts.
func AggregateFlows(records []FlowRecord) FlowAggregation {
	agg := FlowAggregation{ByProcess: make(map[string]FlowTotals)}
	for _, rec := range records {
		totals := agg.ByProcess[rec.ProcessID]
		switch rec.Substance {
		case SubstanceCO2:
			totals.GHG += rec.Amount
		case SubstanceCH4:
			totals.GHG += rec.Amount * GWPCH4
		case SubstanceN2O:
			totals.GHG += rec.Amount * GWPN2O
		case SubstanceFreshWater:
			switch rec.Unit {
			case "m3":
				totals.Water += rec.Amount * GallonsPerCubicMeter
			case "gal", "gallons":
				totals.Water += rec.Amount
			default:
				agg.SkippedUnits++
				continue
			}
		}
		agg.ByProcess[rec.ProcessID] = totals
	}

	if agg.SkippedUnits > 0 {
		logger.Warn("[Build] Dropped water flows with unconvertible units",
			"rows", agg.SkippedUnits)
	}
	return agg
}

// FlowMatrixResult is the C x N environmental flow matrix B plus the count of
// processes whose flows could not be attributed to a sector.
type FlowMatrixResult struct {
	B                   *mat.Dense
	SkippedProcesses    int
	AttributedProcesses int
}

// BuildFlowMatrix remaps per-process flow totals onto sectors, using the same
// process resolver as the direct requirements builder so B and A agree on
// sector indices. Rows are laid out in Categories order; the Energy and Land
// rows stay zero here.
func BuildFlowMatrix(agg FlowAggregation, idx *SectorIndex, resolver *ProcessResolver) FlowMatrixResult {
	b := mat.NewDense(len(Categories), idx.Len(), nil)
	ghgRow, _ := CategoryIndex(CategoryGHG)
	waterRow, _ := CategoryIndex(CategoryWater)

	result := FlowMatrixResult{B: b}
	for processID, totals := range agg.ByProcess {
		code, ok := resolver.Resolve(processID)
		if !ok {
			result.SkippedProcesses++
			continue
		}
		j, ok := idx.Index(code)
		if !ok {
			result.SkippedProcesses++
			continue
		}
		b.Set(ghgRow, j, b.At(ghgRow, j)+totals.GHG)
		b.Set(waterRow, j, b.At(waterRow, j)+totals.Water)
		result.AttributedProcesses++
	}

	if result.SkippedProcesses > 0 {
		logger.Warn("[Build] Environmental flows dropped for unresolvable processes",
			"processes", result.SkippedProcesses)
	}
	return result
}

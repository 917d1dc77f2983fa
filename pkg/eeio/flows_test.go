package eeio

import (
	"math"
	"testing"
)

func TestAggregateFlows_GWPWeighting(t *testing.T) {
	records := []FlowRecord{
		{ProcessID: "P1", Substance: SubstanceCO2, Amount: 10, Unit: "kg"},
		{ProcessID: "P1", Substance: SubstanceCH4, Amount: 2, Unit: "kg"},
		{ProcessID: "P1", Substance: SubstanceN2O, Amount: 0.1, Unit: "kg"},
	}

	agg := AggregateFlows(records)
	totals := agg.ByProcess["P1"]
	// 10 + 2*28 + 0.1*265 = 92.5 kg CO2e
	if math.Abs(totals.GHG-92.5) > 1e-9 {
		t.Fatalf("expected 92.5 kg CO2e, got %v", totals.GHG)
	}
	if totals.Water != 0 {
		t.Fatalf("expected no water, got %v", totals.Water)
	}
}

func TestAggregateFlows_WaterUnits(t *testing.T) {
	records := []FlowRecord{
		{ProcessID: "P1", Substance: SubstanceFreshWater, Amount: 1, Unit: "m3"},
		{ProcessID: "P1", Substance: SubstanceFreshWater, Amount: 10, Unit: "gal"},
		{ProcessID: "P1", Substance: SubstanceFreshWater, Amount: 3, Unit: "L"},
	}

	agg := AggregateFlows(records)
	totals := agg.ByProcess["P1"]
	if math.Abs(totals.Water-274.172) > 1e-3 {
		t.Fatalf("expected 1 m3 + 10 gal = 274.172 gal, got %v", totals.Water)
	}
	if agg.SkippedUnits != 1 {
		t.Fatalf("expected 1 unconvertible unit skipped, got %d", agg.SkippedUnits)
	}
}

func TestBuildFlowMatrix_AttributesAndSkips(t *testing.T) {
	transactions := []TransactionRecord{
		{ProcessID: "P1", SectorCode: "111110", Amount: 0.1},
		{ProcessID: "P2", SectorCode: "336411", Amount: 0.1},
	}
	idx := BuildSectorIndex(transactions)
	resolver := NewProcessResolver(transactions)

	agg := FlowAggregation{ByProcess: map[string]FlowTotals{
		"P1": {GHG: 5, Water: 100},
		"P2": {GHG: 3},
		"P9": {GHG: 99}, // never appears in transactions
	}}

	result := BuildFlowMatrix(agg, idx, resolver)
	if result.SkippedProcesses != 1 || result.AttributedProcesses != 2 {
		t.Fatalf("expected 2 attributed, 1 skipped, got %+v", result)
	}

	ghgRow, _ := CategoryIndex(CategoryGHG)
	waterRow, _ := CategoryIndex(CategoryWater)
	j, _ := idx.Index("111110")
	if got := result.B.At(ghgRow, j); got != 5 {
		t.Fatalf("expected GHG 5 for 111110, got %v", got)
	}
	if got := result.B.At(waterRow, j); got != 100 {
		t.Fatalf("expected water 100 for 111110, got %v", got)
	}

	rows, cols := result.B.Dims()
	if rows != len(Categories) || cols != idx.Len() {
		t.Fatalf("expected %dx%d B matrix, got %dx%d", len(Categories), idx.Len(), rows, cols)
	}
}

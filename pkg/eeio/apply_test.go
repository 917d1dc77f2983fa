package eeio

import (
	"math"
	"testing"
)

func testTable() *Table {
	return &Table{
		Sectors: map[string]SectorMultipliers{
			"111110": {Name: "Oilseed farming", GHG: 1428.5714285714287, Energy: 6400, Water: 500, Land: 4000},
			"336411": {Name: "Aircraft manufacturing", GHG: 2142.857142857143, Energy: 9625, Water: 800, Land: 62, DefenseRelevant: true},
		},
	}
}

func TestApply_TwoSectorSplit(t *testing.T) {
	spending := map[string]float64{"111110": 500, "336411": 500}
	result := Apply(spending, testTable(), nil)

	if result.TotalSpending != 1000 {
		t.Fatalf("expected total 1000, got %v", result.TotalSpending)
	}
	if result.Coverage != 1 {
		t.Fatalf("expected full coverage, got %v", result.Coverage)
	}

	var ghg float64
	for _, impact := range result.Impacts {
		if impact.Category == CategoryGHG {
			ghg = impact.Value
		}
	}
	// 1428.57 * 0.5 + 2142.86 * 0.5
	if math.Abs(ghg-1785.7142857142858) > 1e-6 {
		t.Fatalf("expected GHG 1785.714..., got %v", ghg)
	}

	breakdown, ok := result.SectorBreakdown["336411"]
	if !ok {
		t.Fatal("expected sector breakdown for 336411")
	}
	if breakdown.Name != "Aircraft manufacturing" || breakdown.Spending != 500 {
		t.Fatalf("unexpected breakdown %+v", breakdown)
	}
}

func TestApply_EmptySpending(t *testing.T) {
	result := Apply(map[string]float64{}, testTable(), nil)
	if result.TotalSpending != 0 {
		t.Fatalf("expected zero total, got %v", result.TotalSpending)
	}
	if len(result.Impacts) != len(Categories) {
		t.Fatalf("expected one impact per category, got %d", len(result.Impacts))
	}
	for _, impact := range result.Impacts {
		if impact.Value != 0 {
			t.Fatalf("expected zero impacts, got %+v", impact)
		}
	}
	if len(result.SectorBreakdown) != 0 {
		t.Fatalf("expected empty breakdown, got %d entries", len(result.SectorBreakdown))
	}
}

func TestApply_UnmappedSpendingReported(t *testing.T) {
	spending := map[string]float64{"111110": 900, "999999": 100}
	result := Apply(spending, testTable(), nil)

	if result.UnmappedSpending != 100 {
		t.Fatalf("expected 100 unmapped, got %v", result.UnmappedSpending)
	}
	if math.Abs(result.Coverage-0.9) > 1e-12 {
		t.Fatalf("expected coverage 0.9, got %v", result.Coverage)
	}
	if _, ok := result.SectorBreakdown["999999"]; ok {
		t.Fatal("unmapped sectors must not appear in the breakdown")
	}
}

func TestApply_CategoryFilter(t *testing.T) {
	spending := map[string]float64{"111110": 1000}
	result := Apply(spending, testTable(), []ImpactCategory{CategoryWater})

	if len(result.Impacts) != 1 {
		t.Fatalf("expected a single category, got %d", len(result.Impacts))
	}
	if result.Impacts[0].Category != CategoryWater || result.Impacts[0].Value != 500 {
		t.Fatalf("unexpected impact %+v", result.Impacts[0])
	}
	if result.Impacts[0].Unit != "gallons" {
		t.Fatalf("expected gallons unit, got %q", result.Impacts[0].Unit)
	}
}

func TestCalculator_SwapAndCalculate(t *testing.T) {
	calc := NewCalculator(nil)
	if _, err := calc.Calculate(map[string]float64{"111110": 100}, nil); err != ErrNoTable {
		t.Fatalf("expected ErrNoTable before a table is installed, got %v", err)
	}

	calc.Swap(testTable())
	result, err := calc.Calculate(map[string]float64{"111110": 1000}, nil)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result.TotalSpending != 1000 {
		t.Fatalf("expected total 1000, got %v", result.TotalSpending)
	}
	if calc.Table() == nil {
		t.Fatal("expected installed table to be visible")
	}
}

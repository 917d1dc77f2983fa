package eeio

// Impact is one category's contribution in a calculation result.
type Impact struct {
	Category    ImpactCategory `json:"category"`
	Value       float64        `json:"value"`
	Unit        string         `json:"unit"`
	Description string         `json:"description"`
}

// SectorImpact is the per-sector slice of a calculation result.
type SectorImpact struct {
	Name     string   `json:"name"`
	Spending float64  `json:"spending"`
	Impacts  []Impact `json:"impacts"`
}

// Result is the outcome of applying a spending vector to a multiplier table.
// TotalSpending includes spending on sectors absent from the table; those
// amounts are surfaced in UnmappedSpending so the caller can judge coverage
// instead of silently understating impact.
type Result struct {
	TotalSpending    float64                 `json:"total_spending"`
	Impacts          []Impact                `json:"impacts"`
	SectorBreakdown  map[string]SectorImpact `json:"sector_breakdown"`
	UnmappedSpending float64                 `json:"unmapped_spending"`
	Coverage         float64                 `json:"coverage"`
}

// Apply multiplies a spending vector (sector code -> dollars) by the
// multiplier table: impact = multiplier * spending / 1000 per category.
// Sectors missing from the table are skipped, never an error. Plain
// arithmetic, linear in the spending vector; safe for concurrent use since
// the table is immutable.
func Apply(spending map[string]float64, table *Table, categories []ImpactCategory) Result {
	if len(categories) == 0 {
		categories = Categories
	}

	result := Result{
		SectorBreakdown: make(map[string]SectorImpact),
	}
	totals := make(map[ImpactCategory]float64, len(categories))

	for code, amount := range spending {
		result.TotalSpending += amount

		mult, ok := table.Sectors[code]
		if !ok {
			result.UnmappedSpending += amount
			continue
		}

		thousands := amount / 1000
		impacts := make([]Impact, 0, len(categories))
		for _, cat := range categories {
			value := mult.Category(cat) * thousands
			totals[cat] += value
			impacts = append(impacts, Impact{
				Category:    cat,
				Value:       value,
				Unit:        CategoryUnit(cat),
				Description: CategoryDescription(cat),
			})
		}

		result.SectorBreakdown[code] = SectorImpact{
			Name:     mult.Name,
			Spending: amount,
			Impacts:  impacts,
		}
	}

	result.Impacts = make([]Impact, 0, len(categories))
	for _, cat := range categories {
		result.Impacts = append(result.Impacts, Impact{
			Category:    cat,
			Value:       totals[cat],
			Unit:        CategoryUnit(cat),
			Description: CategoryDescription(cat),
		})
	}

	if result.TotalSpending != 0 {
		result.Coverage = (result.TotalSpending - result.UnmappedSpending) / result.TotalSpending
	}
	return result
}

// Category returns the multiplier value for one category.
func (m SectorMultipliers) Category(c ImpactCategory) float64 {
	switch c {
	case CategoryGHG:
		return m.GHG
	case CategoryEnergy:
		return m.Energy
	case CategoryWater:
		return m.Water
	case CategoryLand:
		return m.Land
	}
	return 0
}

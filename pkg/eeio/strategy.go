package eeio

import "gonum.org/v1/gonum/mat"

// EnergyLandStrategy supplies total (direct + supply chain) Energy and Land
// multipliers per $1000 of spending, one value per sector in index order.
// The rigorous GHG/Water path always goes through B * L; Energy and Land are
// pluggable because the snapshot currently has no flow rows for them. When
// proper flow data lands, FlowDerived replaces IntensityBanded without
// touching the calculator.
type EnergyLandStrategy interface {
	Name() string
	EnergyLand(idx *SectorIndex) (energy, land []float64)
}

// IntensityBanded estimates Energy and Land from published survey-derived
// direct intensities combined with literature-banded supply-chain
// multipliers. Deterministic and order-independent: each sector is
// classified in isolation.
type IntensityBanded struct{}

func (IntensityBanded) Name() string { return "intensity-banded" }

func (IntensityBanded) EnergyLand(idx *SectorIndex) (energy, land []float64) {
	n := idx.Len()
	energy = make([]float64, n)
	land = make([]float64, n)
	for j := 0; j < n; j++ {
		code := idx.Code(j)
		name := idx.Name(code)

		direct := EnergyDirectIntensity(code, name)
		energy[j] = direct * SupplyChainMultiplier(code, name, direct)

		landDirect := LandDirectIntensity(code, name)
		land[j] = landDirect * SupplyChainMultiplier(code, name, landDirect)
	}
	return energy, land
}

// FlowDerived computes Energy and Land the same way as GHG and Water: from
// the B matrix through the Leontief inverse. Usable once the source data
// carries energy/land flow rows (their B rows are zero until then).
type FlowDerived struct {
	B *mat.Dense
	L *mat.Dense
}

func (FlowDerived) Name() string { return "flow-derived" }

func (s FlowDerived) EnergyLand(idx *SectorIndex) (energy, land []float64) {
	var m mat.Dense
	m.Mul(s.B, s.L)

	energyRow, _ := CategoryIndex(CategoryEnergy)
	landRow, _ := CategoryIndex(CategoryLand)

	n := idx.Len()
	energy = make([]float64, n)
	land = make([]float64, n)
	for j := 0; j < n; j++ {
		energy[j] = m.At(energyRow, j) * 1000
		land[j] = m.At(landRow, j) * 1000
	}
	return energy, land
}

package eeio

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/open-dio/opendio/pkg/logger"
)

// Build-health thresholds for the direct requirements matrix. Neither is a
// hard failure; crossing one only logs a warning.
const (
	maxReasonableCoefficient = 1.0
	minReasonableDensity     = 0.001
)

// RequirementsResult is the assembled direct requirements matrix with its
// build diagnostics.
type RequirementsResult struct {
	A *mat.Dense

	// SkippedRows counts transactions where either side failed to resolve
	// into the sector index; SkippedDollars is their total absolute value,
	// surfaced so a large skipped fraction is loud rather than silent.
	SkippedRows    int
	SkippedDollars float64

	Density        float64
	MaxCoefficient float64
}

// BuildDirectRequirements assembles the N x N direct requirements matrix A.
// For each transaction the consuming process is resolved to its sector and
// A[consuming, producing] accumulates the amount. Rows that do not resolve
// on both sides are dropped and counted.
func BuildDirectRequirements(records []TransactionRecord, idx *SectorIndex, resolver *ProcessResolver) RequirementsResult {
	n := idx.Len()
	a := mat.NewDense(n, n, nil)

	result := RequirementsResult{A: a}
	for _, rec := range records {
		j, ok := idx.Index(rec.SectorCode)
		if !ok {
			result.SkippedRows++
			result.SkippedDollars += math.Abs(rec.Amount)
			continue
		}
		consuming, ok := resolver.Resolve(rec.ProcessID)
		if !ok {
			result.SkippedRows++
			result.SkippedDollars += math.Abs(rec.Amount)
			continue
		}
		i, ok := idx.Index(consuming)
		if !ok {
			result.SkippedRows++
			result.SkippedDollars += math.Abs(rec.Amount)
			continue
		}
		a.Set(i, j, a.At(i, j)+rec.Amount)
	}

	if n > 0 {
		nonzero := 0
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if a.At(i, j) != 0 {
					nonzero++
				}
			}
		}
		result.Density = float64(nonzero) / float64(n*n)
		result.MaxCoefficient = mat.Max(a)
	}

	if result.MaxCoefficient > maxReasonableCoefficient {
		logger.Warn("[Build] Direct requirements coefficient above 1.0",
			"max", result.MaxCoefficient)
	}
	if n > 0 && result.Density < minReasonableDensity {
		logger.Warn("[Build] Direct requirements matrix is unusually sparse",
			"density", result.Density)
	}
	if result.SkippedRows > 0 {
		logger.Warn("[Build] Dropped unresolvable transactions",
			"rows", result.SkippedRows, "dollars", result.SkippedDollars)
	}

	return result
}

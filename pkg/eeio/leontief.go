package eeio

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/open-dio/opendio/pkg/logger"
)

// conditionThreshold is the 2-norm condition number above which (I - A) is
// treated as numerically singular and the pseudo-inverse fallback kicks in.
const conditionThreshold = 1e12

// ErrNotFactorizable is returned when (I - A) cannot be factorized at all,
// which only happens for non-finite input.
var ErrNotFactorizable = errors.New("leontief: matrix could not be factorized")

// LeontiefResult holds the total requirements matrix L = (I - A)^-1. When the
// direct solve is not trustworthy, L is the Moore-Penrose pseudo-inverse and
// Degraded is set; the flag propagates to the published table metadata so
// consumers can show a data-quality caveat.
type LeontiefResult struct {
	L         *mat.Dense
	Degraded  bool
	Condition float64
}

// InvertLeontief computes L = (I - A)^-1. This is a one-shot deterministic
// computation: it either succeeds cleanly or succeeds in degraded mode via
// the pseudo-inverse. There is no transient failure and no retry.
func InvertLeontief(a *mat.Dense) (LeontiefResult, error) {
	n, _ := a.Dims()
	if n == 0 {
		return LeontiefResult{}, ErrNotFactorizable
	}
	ia := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := -a.At(i, j)
			if i == j {
				v += 1
			}
			ia.Set(i, j, v)
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(ia, mat.SVDThin); !ok {
		return LeontiefResult{}, ErrNotFactorizable
	}
	values := svd.Values(nil)

	cond := math.Inf(1)
	if smin := values[len(values)-1]; smin > 0 {
		cond = values[0] / smin
	}

	if cond < conditionThreshold {
		var inv mat.Dense
		if err := inv.Inverse(ia); err == nil {
			return LeontiefResult{L: &inv, Condition: cond}, nil
		}
		// Well-conditioned but the LU solve still failed; fall through to
		// the pseudo-inverse.
	}

	logger.Warn("[Build] (I - A) is numerically singular, substituting pseudo-inverse",
		"condition", cond)
	return LeontiefResult{
		L:         pseudoInverse(&svd, values, n),
		Degraded:  true,
		Condition: cond,
	}, nil
}

// pseudoInverse assembles the Moore-Penrose inverse V * S^+ * U^T from a
// factorized SVD, zeroing singular values below the numerical rank tolerance.
func pseudoInverse(svd *mat.SVD, values []float64, n int) *mat.Dense {
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	eps := math.Nextafter(1, 2) - 1
	tol := float64(n) * eps * values[0]

	sInv := mat.NewDense(len(values), len(values), nil)
	for i, s := range values {
		if s > tol {
			sInv.Set(i, i, 1/s)
		}
	}

	var tmp, pinv mat.Dense
	tmp.Mul(&v, sInv)
	pinv.Mul(&tmp, u.T())
	return &pinv
}

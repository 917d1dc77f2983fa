package eeio

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestInvertLeontief_TwoSector(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{
		0, 0.1,
		0.2, 0,
	})

	result, err := InvertLeontief(a)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result.Degraded {
		t.Fatal("expected clean inverse, got degraded")
	}

	// (I - A)^-1 = 1/0.98 * [[1, 0.1], [0.2, 1]]
	want := [2][2]float64{
		{1.0204081632653061, 0.10204081632653061},
		{0.20408163265306123, 1.0204081632653061},
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if got := result.L.At(i, j); math.Abs(got-want[i][j]) > 1e-9 {
				t.Fatalf("L[%d,%d] = %v, want %v", i, j, got, want[i][j])
			}
		}
	}
}

func TestInvertLeontief_IdentityForZeroA(t *testing.T) {
	a := mat.NewDense(3, 3, nil)

	result, err := InvertLeontief(a)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result.Degraded {
		t.Fatal("expected clean inverse for A = 0")
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if got := result.L.At(i, j); math.Abs(got-want) > 1e-12 {
				t.Fatalf("expected identity, L[%d,%d] = %v", i, j, got)
			}
		}
	}
}

func TestInvertLeontief_SingularFallsBackToPseudoInverse(t *testing.T) {
	// (I - A) has eigenvalue 0 here, so the direct solve cannot be trusted.
	a := mat.NewDense(2, 2, []float64{
		0.5, 0.5,
		0.5, 0.5,
	})

	result, err := InvertLeontief(a)
	if err != nil {
		t.Fatalf("expected pseudo-inverse fallback, got error %v", err)
	}
	if !result.Degraded {
		t.Fatal("expected degraded flag for singular (I - A)")
	}

	// pinv([[0.5, -0.5], [-0.5, 0.5]]) is the same matrix.
	want := [2][2]float64{
		{0.5, -0.5},
		{-0.5, 0.5},
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			got := result.L.At(i, j)
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Fatalf("pseudo-inverse produced non-finite L[%d,%d] = %v", i, j, got)
			}
			if math.Abs(got-want[i][j]) > 1e-9 {
				t.Fatalf("L[%d,%d] = %v, want %v", i, j, got, want[i][j])
			}
		}
	}
}

func TestInvertLeontief_EmptyMatrix(t *testing.T) {
	a := &mat.Dense{}
	if _, err := InvertLeontief(a); err == nil {
		t.Fatal("expected error for empty matrix")
	}
}

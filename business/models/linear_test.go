package models

import (
	"math"
	"math/rand"
	"testing"
)

func TestFitLinearRegression_RecoversLinearGroundTruth(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	trueCoef := []float64{0.08, -0.1, 0.05}
	trueIntercept := 1.5

	n := 2000
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := range n {
		x := []float64{rng.Float64() * 100, rng.Float64() * 20, rng.Float64()*56 - 28}
		X[i] = x
		y[i] = trueIntercept + dot(trueCoef, x) + rng.NormFloat64()*0.1
	}

	m, err := FitLinearRegression(X, y, 1e-6)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	if math.Abs(m.Intercept-trueIntercept) > 0.1 {
		t.Errorf("intercept = %.4f, want ~%.4f", m.Intercept, trueIntercept)
	}
	for j, want := range trueCoef {
		if math.Abs(m.Coef[j]-want) > 0.01 {
			t.Errorf("coef[%d] = %.4f, want ~%.4f", j, m.Coef[j], want)
		}
	}

	preds := make([]float64, n)
	for i := range n {
		preds[i] = m.Predict(X[i])
	}
	if mae := MeanAbsoluteError(y, preds); mae > 0.2 {
		t.Errorf("training MAE = %.4f, want < 0.2", mae)
	}
}

func TestFitLinearRegression_RejectsEmptyInput(t *testing.T) {
	if _, err := FitLinearRegression(nil, nil, 1.0); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := FitLinearRegression([][]float64{{1, 2}}, []float64{1, 2}, 1.0); err == nil {
		t.Fatal("expected error for mismatched rows")
	}
}

func TestInvertMatrix_Identity(t *testing.T) {
	A := [][]float64{
		{4, 7},
		{2, 6},
	}
	inv, err := invertMatrix(A)
	if err != nil {
		t.Fatalf("invert failed: %v", err)
	}

	// A * A^-1 must be the identity
	for i := range 2 {
		for j := range 2 {
			got := A[i][0]*inv[0][j] + A[i][1]*inv[1][j]
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("(A*inv)[%d][%d] = %.6f, want %.1f", i, j, got, want)
			}
		}
	}
}

func TestInvertMatrix_Singular(t *testing.T) {
	A := [][]float64{
		{1, 2},
		{2, 4},
	}
	if _, err := invertMatrix(A); err == nil {
		t.Fatal("expected singular matrix error")
	}
}

package models

import (
	"fmt"
	"math"
)

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// y = A * x
func matVec(A [][]float64, x []float64) []float64 {
	y := make([]float64, len(A))
	for i := range A {
		y[i] = dot(A[i], x)
	}
	return y
}

func Sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// Invert a square matrix using Gauss-Jordan elimination.
func invertMatrix(A [][]float64) ([][]float64, error) {
	n := len(A)

	// Build augmented [A | I]
	aug := make([][]float64, n)
	for i := range n {
		aug[i] = make([]float64, 2*n)
		copy(aug[i], A[i])
		aug[i][n+i] = 1.0
	}

	for col := range n {
		// Partial pivot: pick the row with the largest magnitude in this column
		pivotRow := col
		for i := col + 1; i < n; i++ {
			if math.Abs(aug[i][col]) > math.Abs(aug[pivotRow][col]) {
				pivotRow = i
			}
		}
		aug[col], aug[pivotRow] = aug[pivotRow], aug[col]

		pivot := aug[col][col]
		if math.Abs(pivot) < 1e-12 {
			return nil, fmt.Errorf("matrix is singular")
		}

		// Normalize pivot row
		for j := range 2 * n {
			aug[col][j] /= pivot
		}

		// Eliminate other rows
		for i := range n {
			if i == col {
				continue
			}
			factor := aug[i][col]
			for j := range 2 * n {
				aug[i][j] -= factor * aug[col][j]
			}
		}
	}

	// Extract inverse
	inv := make([][]float64, n)
	for i := range n {
		inv[i] = make([]float64, n)
		copy(inv[i], aug[i][n:])
	}
	return inv, nil
}

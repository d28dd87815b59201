package models

import "fmt"

// LinearRegression is the expected-points regressor: a ridge-regularized
// linear model over the 9 EP features, fit in closed form.
type LinearRegression struct {
	Intercept float64   `json:"intercept"`
	Coef      []float64 `json:"coef"`
}

// FitLinearRegression solves the normal equations (X'X + ridge*I) w = X'y
// with an implicit bias column. The bias is not regularized.
func FitLinearRegression(X [][]float64, y []float64, ridge float64) (*LinearRegression, error) {
	if len(X) == 0 || len(X) != len(y) {
		return nil, fmt.Errorf("linear fit: need matching non-empty X and y, got %d and %d rows", len(X), len(y))
	}

	dim := len(X[0]) + 1 // bias first

	gram := make([][]float64, dim)
	for i := range gram {
		gram[i] = make([]float64, dim)
	}
	moment := make([]float64, dim)

	row := make([]float64, dim)
	for r := range X {
		row[0] = 1.0
		copy(row[1:], X[r])
		for i := range dim {
			for j := range dim {
				gram[i][j] += row[i] * row[j]
			}
			moment[i] += row[i] * y[r]
		}
	}

	for i := 1; i < dim; i++ {
		gram[i][i] += ridge
	}

	inv, err := invertMatrix(gram)
	if err != nil {
		return nil, fmt.Errorf("linear fit: %w", err)
	}

	w := matVec(inv, moment)
	return &LinearRegression{Intercept: w[0], Coef: w[1:]}, nil
}

func (m *LinearRegression) Predict(x []float64) float64 {
	return m.Intercept + dot(m.Coef, x)
}

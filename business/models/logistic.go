package models

import (
	"fmt"
	"math"
)

const (
	logisticLearningRate = 0.3
	logisticIterations   = 400
	logisticL2           = 1e-4
)

// LogisticRegression is the base win-probability classifier over the 12 WP
// features. Inputs are standardized with the training-fold mean/std, which
// are carried inside the model so serving does not need the training data.
type LogisticRegression struct {
	Intercept float64   `json:"intercept"`
	Coef      []float64 `json:"coef"`
	Mean      []float64 `json:"mean"`
	Std       []float64 `json:"std"`
}

// FitLogisticRegression fits by batch gradient descent on standardized
// features. Labels must be 0 or 1.
func FitLogisticRegression(X [][]float64, y []float64) (*LogisticRegression, error) {
	n := len(X)
	if n == 0 || n != len(y) {
		return nil, fmt.Errorf("logistic fit: need matching non-empty X and y, got %d and %d rows", n, len(y))
	}
	dim := len(X[0])

	mean := make([]float64, dim)
	std := make([]float64, dim)
	for j := range dim {
		for i := range n {
			mean[j] += X[i][j]
		}
		mean[j] /= float64(n)
	}
	for j := range dim {
		for i := range n {
			d := X[i][j] - mean[j]
			std[j] += d * d
		}
		std[j] = math.Sqrt(std[j] / float64(n))
		if std[j] < 1e-9 {
			std[j] = 1.0
		}
	}

	scaled := make([][]float64, n)
	for i := range n {
		scaled[i] = make([]float64, dim)
		for j := range dim {
			scaled[i][j] = (X[i][j] - mean[j]) / std[j]
		}
	}

	coef := make([]float64, dim)
	intercept := 0.0
	gradW := make([]float64, dim)

	for iter := 0; iter < logisticIterations; iter++ {
		for j := range gradW {
			gradW[j] = 0
		}
		gradB := 0.0

		for i := range n {
			p := Sigmoid(intercept + dot(coef, scaled[i]))
			residual := p - y[i]
			for j := range dim {
				gradW[j] += residual * scaled[i][j]
			}
			gradB += residual
		}

		for j := range dim {
			gradW[j] = gradW[j]/float64(n) + logisticL2*coef[j]
			coef[j] -= logisticLearningRate * gradW[j]
		}
		intercept -= logisticLearningRate * gradB / float64(n)
	}

	return &LogisticRegression{Intercept: intercept, Coef: coef, Mean: mean, Std: std}, nil
}

// DecisionFunction returns the raw logit for x.
func (m *LogisticRegression) DecisionFunction(x []float64) float64 {
	z := m.Intercept
	for j := range m.Coef {
		z += m.Coef[j] * (x[j] - m.Mean[j]) / m.Std[j]
	}
	return z
}

func (m *LogisticRegression) PredictProba(x []float64) float64 {
	return Sigmoid(m.DecisionFunction(x))
}

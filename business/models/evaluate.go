package models

import "math"

// MeanAbsoluteError of predictions against targets.
func MeanAbsoluteError(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	sum := 0.0
	for i := range yTrue {
		sum += math.Abs(yTrue[i] - yPred[i])
	}
	return sum / float64(len(yTrue))
}

// BrierScore of predicted probabilities against binary labels.
func BrierScore(yTrue, probs []float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	sum := 0.0
	for i := range yTrue {
		d := probs[i] - yTrue[i]
		sum += d * d
	}
	return sum / float64(len(yTrue))
}

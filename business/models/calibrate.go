package models

import "fmt"

const (
	calibrationLearningRate = 0.05
	calibrationIterations   = 1000
)

// SigmoidCalibrator is a monotonic Platt transform mapping raw classifier
// logits to calibrated probabilities: p = sigmoid(A*score + B).
type SigmoidCalibrator struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// FitSigmoidCalibrator fits A and B by gradient descent on the log loss of
// the (score, label) pairs. The pairs come from the same fold the base
// classifier was fit on ("prefit" calibration).
func FitSigmoidCalibrator(scores, labels []float64) (*SigmoidCalibrator, error) {
	n := len(scores)
	if n == 0 || n != len(labels) {
		return nil, fmt.Errorf("calibration fit: need matching non-empty scores and labels, got %d and %d", n, len(labels))
	}

	// Start at the identity transform.
	a, b := 1.0, 0.0

	for iter := 0; iter < calibrationIterations; iter++ {
		gradA, gradB := 0.0, 0.0
		for i := range n {
			p := Sigmoid(a*scores[i] + b)
			residual := p - labels[i]
			gradA += residual * scores[i]
			gradB += residual
		}
		a -= calibrationLearningRate * gradA / float64(n)
		b -= calibrationLearningRate * gradB / float64(n)
	}

	return &SigmoidCalibrator{A: a, B: b}, nil
}

func (c *SigmoidCalibrator) Transform(score float64) float64 {
	return Sigmoid(c.A*score + c.B)
}

// CalibratedClassifier chains the base classifier's decision function
// through the fitted sigmoid transform.
type CalibratedClassifier struct {
	Base       *LogisticRegression
	Calibrator *SigmoidCalibrator
}

func (c *CalibratedClassifier) PredictProba(x []float64) float64 {
	return c.Calibrator.Transform(c.Base.DecisionFunction(x))
}

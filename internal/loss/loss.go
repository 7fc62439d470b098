package loss

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// probFloor keeps log arguments away from zero.
const probFloor = 1e-12

// Func scores a prediction matrix against its labels. Predictions arrive one
// column per sample; the built-in costs read the single output row.
type Func interface {
	Cost(pred *mat.Dense, labels []float64) float64
	Name() string
}

// LogLossFunc is binary cross-entropy over probabilities in (0, 1).
type LogLossFunc struct{}

func LogLoss() Func { return LogLossFunc{} }

func (LogLossFunc) Cost(pred *mat.Dense, labels []float64) float64 {
	terms := make([]float64, len(labels))
	for i, y := range labels {
		p := pred.At(0, i)
		if p < probFloor {
			p = probFloor
		} else if p > 1-probFloor {
			p = 1 - probFloor
		}
		terms[i] = -(y*math.Log(p) + (1-y)*math.Log(1-p))
	}
	return floats.Sum(terms) / float64(len(terms))
}

func (LogLossFunc) Name() string { return "log_loss" }

// MSEFunc is mean squared error.
type MSEFunc struct{}

func MSE() Func { return MSEFunc{} }

func (MSEFunc) Cost(pred *mat.Dense, labels []float64) float64 {
	diffs := make([]float64, len(labels))
	for i, y := range labels {
		diffs[i] = pred.At(0, i) - y
	}
	return floats.Dot(diffs, diffs) / float64(len(diffs))
}

func (MSEFunc) Name() string { return "mse" }

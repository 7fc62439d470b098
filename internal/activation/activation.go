package activation

import "math"

// Func is a pure scalar transform applied element-wise to a layer's
// pre-activation output. Implementations are stateless and safe to share
// across network snapshots.
type Func interface {
	Apply(v float64) float64
	Name() string
}

// ReLUFunc is the rectified linear unit.
type ReLUFunc struct{}

func ReLU() Func { return ReLUFunc{} }

func (ReLUFunc) Apply(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}

func (ReLUFunc) Name() string { return "relu" }

// SigmoidFunc is the logistic function.
type SigmoidFunc struct{}

func Sigmoid() Func { return SigmoidFunc{} }

func (SigmoidFunc) Apply(v float64) float64 {
	// exp(-v) overflows for very negative v; use the stable form there.
	if v >= 0 {
		return 1.0 / (1.0 + math.Exp(-v))
	}
	e := math.Exp(v)
	return e / (1.0 + e)
}

func (SigmoidFunc) Name() string { return "sigmoid" }

// IdentityFunc passes values through unchanged.
type IdentityFunc struct{}

func Identity() Func { return IdentityFunc{} }

func (IdentityFunc) Apply(v float64) float64 { return v }

func (IdentityFunc) Name() string { return "identity" }

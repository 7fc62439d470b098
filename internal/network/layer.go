package network

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"gradnet/internal/activation"
)

// Layer owns one weight matrix of shape (width × priorWidth) and one bias
// column of length width. It estimates its own gradient numerically by
// perturbing individual weights and re-scoring the whole network through its
// owning snapshot.
type Layer struct {
	width      int
	priorWidth int
	weights    *mat.Dense
	bias       *mat.VecDense
	act        activation.Func

	grad *mat.Dense // last central-difference estimate, nil before backward
	snap *Snapshot  // owning snapshot, used only to reach its evaluate
}

func newLayer(snap *Snapshot, width, priorWidth int, act activation.Func, weights *mat.Dense, bias *mat.VecDense) *Layer {
	return &Layer{
		width:      width,
		priorWidth: priorWidth,
		weights:    weights,
		bias:       bias,
		act:        act,
		snap:       snap,
	}
}

// Apply computes activation(W·input + b) with the bias broadcast across
// columns. Input is (priorWidth × n); the result is (width × n).
func (l *Layer) Apply(input *mat.Dense) *mat.Dense {
	_, n := input.Dims()
	out := mat.NewDense(l.width, n, nil)
	out.Mul(l.weights, input)
	out.Apply(func(i, _ int, v float64) float64 {
		return l.act.Apply(v + l.bias.AtVec(i))
	}, out)
	return out
}

// EstimateGradient measures dCost/dW for every weight element by central
// difference with step eps: each element is nudged to w-eps and w+eps while
// the owning snapshot re-scores the entire training set through every layer.
// The bias is never perturbed. The estimate is recorded for ApplyGradient and
// also returned.
func (l *Layer) EstimateGradient(eps float64) *mat.Dense {
	grad := mat.NewDense(l.width, l.priorWidth, nil)
	for i := 0; i < l.width; i++ {
		for j := 0; j < l.priorWidth; j++ {
			grad.Set(i, j, l.centralDifference(i, j, eps))
		}
	}
	l.grad = grad
	return grad
}

// centralDifference perturbs a single weight in place and restores it to its
// exact original value on every exit path.
func (l *Layer) centralDifference(i, j int, eps float64) float64 {
	w := l.weights.At(i, j)
	defer l.weights.Set(i, j, w)

	l.weights.Set(i, j, w-eps)
	costMinus := l.snap.trainingCost()
	l.weights.Set(i, j, w+eps)
	costPlus := l.snap.trainingCost()
	return (costPlus - costMinus) / (2 * eps)
}

// ApplyGradient performs one descent step, W ← W - lr·G, using the gradient
// recorded by EstimateGradient in the current training step.
func (l *Layer) ApplyGradient(lr float64) error {
	if l.grad == nil {
		return errors.New("network: no gradient estimate recorded for layer")
	}
	var step mat.Dense
	step.Scale(lr, l.grad)
	l.weights.Sub(l.weights, &step)
	return nil
}

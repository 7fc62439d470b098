package network

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Epsilon is the finite-difference step shared by every gradient estimate in
// the process. It is deliberately a single global knob, never tuned per layer.
var Epsilon = 0.1

// Snapshot is the network state for one training step. Its layers mutate in
// place during Backward, but the snapshot itself is never replaced; the model
// retains every snapshot it ever produced.
type Snapshot struct {
	layers []*Layer
	lr     float64
	model  *Model
}

// newSnapshot seeds layer weights either from the prior snapshot's
// post-update state or, when there is none, from a seeded standard normal
// scaled by 1/width². Biases start at zero and are copied forward as-is.
func newSnapshot(m *Model, lr float64, prior *Snapshot) *Snapshot {
	s := &Snapshot{lr: lr, model: m}
	priorWidth := m.features
	for i, spec := range m.topology {
		var weights *mat.Dense
		var bias *mat.VecDense
		if prior == nil {
			scale := 1.0 / float64(spec.Width*spec.Width)
			weights = mat.NewDense(spec.Width, priorWidth, nil)
			for r := 0; r < spec.Width; r++ {
				for c := 0; c < priorWidth; c++ {
					weights.Set(r, c, m.rng.NormFloat64()*scale)
				}
			}
			bias = mat.NewVecDense(spec.Width, nil)
		} else {
			weights = mat.DenseCopyOf(prior.layers[i].weights)
			bias = mat.VecDenseCopyOf(prior.layers[i].bias)
		}
		s.layers = append(s.layers, newLayer(s, spec.Width, priorWidth, spec.Activation, weights, bias))
		priorWidth = spec.Width
	}
	return s
}

// Forward runs row-major data (one sample per row) through every layer in
// topology order and returns the final (finalWidth × n) output.
func (s *Snapshot) Forward(data *mat.Dense) (*mat.Dense, error) {
	_, cols := data.Dims()
	if cols != s.layers[0].priorWidth {
		return nil, fmt.Errorf("network: data has %d features, first layer expects %d", cols, s.layers[0].priorWidth)
	}
	out := mat.DenseCopyOf(data.T())
	for _, l := range s.layers {
		out = l.Apply(out)
	}
	return out, nil
}

// Predict is Forward under its caller-facing name.
func (s *Snapshot) Predict(data *mat.Dense) (*mat.Dense, error) {
	return s.Forward(data)
}

// Evaluate scores data against labels with the model's cost function. Nil
// arguments default to the model's stored training set.
func (s *Snapshot) Evaluate(data *mat.Dense, labels []float64) (float64, error) {
	if data == nil {
		data = s.model.data
	}
	if labels == nil {
		labels = s.model.labels
	}
	rows, _ := data.Dims()
	if rows != len(labels) {
		return 0, fmt.Errorf("network: %d samples but %d labels", rows, len(labels))
	}
	pred, err := s.Forward(data)
	if err != nil {
		return 0, err
	}
	return s.model.cost.Cost(pred, labels), nil
}

// trainingCost is the hot path of gradient estimation: one full forward pass
// over the stored training set. Training-set shapes are fixed when the model
// is built, so no error path remains here.
func (s *Snapshot) trainingCost() float64 {
	c, err := s.Evaluate(nil, nil)
	if err != nil {
		panic(err)
	}
	return c
}

// Backward estimates every layer's gradient from the same pre-update weight
// state, then applies all updates with the snapshot's learning rate. The two
// phases stay strictly separate so no layer's update contaminates another
// layer's estimate within the same step.
func (s *Snapshot) Backward() error {
	for _, l := range s.layers {
		l.EstimateGradient(Epsilon)
	}
	for _, l := range s.layers {
		if err := l.ApplyGradient(s.lr); err != nil {
			return err
		}
	}
	return nil
}

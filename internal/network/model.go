package network

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"gradnet/internal/activation"
	"gradnet/internal/loss"
)

// ErrNotTrained is returned by Predict and Evaluate before the first Train.
var ErrNotTrained = errors.New("network: model has not been trained")

// reportEvery is the progress cadence in training iterations.
const reportEvery = 500

// LayerSpec describes one layer of the topology: its node count and the
// activation applied to its output.
type LayerSpec struct {
	Width      int
	Activation activation.Func
}

// Model owns the training data, the cost function, the topology and the full
// history of training snapshots.
type Model struct {
	data     *mat.Dense
	labels   []float64
	cost     loss.Func
	topology []LayerSpec
	rng      *rand.Rand
	features int

	history []*Snapshot

	// Progress, when set, receives the current training cost at iteration 0
	// and every 500th iteration after it. Purely observational; it never
	// affects the descent trajectory.
	Progress func(iteration int, cost float64)
}

// New builds an untrained model over a row-major dataset (one sample per
// row). The topology is validated up front so later snapshots cannot fail.
func New(data *mat.Dense, labels []float64, cost loss.Func, topology []LayerSpec, seed int64) (*Model, error) {
	rows, cols := data.Dims()
	if rows == 0 {
		return nil, errors.New("network: dataset has no samples")
	}
	if rows != len(labels) {
		return nil, fmt.Errorf("network: dataset has %d rows but %d labels", rows, len(labels))
	}
	if cost == nil {
		return nil, errors.New("network: cost function is required")
	}
	if len(topology) == 0 {
		return nil, errors.New("network: topology needs at least one layer")
	}
	for i, spec := range topology {
		if spec.Width <= 0 {
			return nil, fmt.Errorf("network: layer %d has non-positive width %d", i, spec.Width)
		}
		if spec.Activation == nil {
			return nil, fmt.Errorf("network: layer %d has no activation", i)
		}
	}
	return &Model{
		data:     data,
		labels:   labels,
		cost:     cost,
		topology: topology,
		rng:      rand.New(rand.NewSource(seed)),
		features: cols,
	}, nil
}

// Train runs the descent loop for exactly iterations steps and returns the
// final training cost. Each step appends one snapshot, seeded from its
// predecessor, runs a forward pass and a full backward pass. Successive
// Train calls continue from the latest snapshot.
func (m *Model) Train(lr float64, iterations int) (float64, error) {
	if lr <= 0 {
		return 0, fmt.Errorf("network: learning rate must be > 0 (got %g)", lr)
	}
	if iterations <= 0 {
		return 0, fmt.Errorf("network: iterations must be > 0 (got %d)", iterations)
	}
	for i := 0; i < iterations; i++ {
		var prior *Snapshot
		if len(m.history) > 0 {
			prior = m.history[len(m.history)-1]
		}
		snap := newSnapshot(m, lr, prior)
		m.history = append(m.history, snap)

		if _, err := snap.Forward(m.data); err != nil {
			return 0, err
		}
		if iter := len(m.history) - 1; m.Progress != nil && iter%reportEvery == 0 {
			m.Progress(iter, snap.trainingCost())
		}
		if err := snap.Backward(); err != nil {
			return 0, err
		}
	}
	return m.history[len(m.history)-1].Evaluate(nil, nil)
}

// Predict delegates to the most recent snapshot, defaulting to the stored
// dataset when data is nil.
func (m *Model) Predict(data *mat.Dense) (*mat.Dense, error) {
	if len(m.history) == 0 {
		return nil, ErrNotTrained
	}
	if data == nil {
		data = m.data
	}
	return m.history[len(m.history)-1].Predict(data)
}

// Evaluate delegates to the most recent snapshot; nil arguments default to
// the stored training set.
func (m *Model) Evaluate(data *mat.Dense, labels []float64) (float64, error) {
	if len(m.history) == 0 {
		return 0, ErrNotTrained
	}
	return m.history[len(m.history)-1].Evaluate(data, labels)
}

// Iterations reports how many training steps the model has taken.
func (m *Model) Iterations() int {
	return len(m.history)
}

package trainer

import (
	"context"
	"errors"
	"log"
	"time"

	"gradnet/internal/activation"
	"gradnet/internal/dataset"
	"gradnet/internal/loss"
	"gradnet/internal/metrics"
	"gradnet/internal/network"
)

// syntheticSamples is the size of the built-in dataset used when no CSV path
// is configured.
const syntheticSamples = 200

// RunConfig captures the knobs required by the training workload.
type RunConfig struct {
	DataPath     string
	Hidden       []int
	LearningRate float64
	Iterations   int
	Epsilon      float64
	Seed         int64
	LogEvery     int
}

// Run executes one full training workload: it assembles the dataset and
// topology, trains to completion and logs progress plus a final summary.
func Run(ctx context.Context, cfg RunConfig) error {
	if cfg.Iterations <= 0 {
		return errors.New("trainer: iterations must be > 0")
	}
	if cfg.LearningRate <= 0 {
		return errors.New("trainer: learning rate must be > 0")
	}
	if len(cfg.Hidden) == 0 {
		return errors.New("trainer: at least one hidden layer is required")
	}
	if cfg.Epsilon > 0 {
		network.Epsilon = cfg.Epsilon
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 500
	}

	var (
		X   [][]float64
		y   []float64
		err error
	)
	if cfg.DataPath != "" {
		X, y, err = dataset.LoadCSV(cfg.DataPath)
		if err != nil {
			return err
		}
		log.Printf("dataset=%s samples=%d features=%d", cfg.DataPath, len(X), len(X[0]))
	} else {
		X, y = dataset.TwoClusters(syntheticSamples, cfg.Seed)
		log.Printf("dataset=synthetic samples=%d features=%d", len(X), len(X[0]))
	}
	dataset.MinMaxNormalize(X)

	topology := make([]network.LayerSpec, 0, len(cfg.Hidden)+1)
	for _, width := range cfg.Hidden {
		topology = append(topology, network.LayerSpec{Width: width, Activation: activation.ReLU()})
	}
	topology = append(topology, network.LayerSpec{Width: 1, Activation: activation.Sigmoid()})

	mdl, err := network.New(dataset.Matrix(X), y, loss.LogLoss(), topology, cfg.Seed)
	if err != nil {
		return err
	}

	// The model reports every 500 iterations; LogEvery only throttles which of
	// those reports reach the log. The window keeps accumulating in between.
	var window metrics.Window
	last := time.Now()
	lastIter := 0
	lastLogged := -1
	mdl.Progress = func(iteration int, cost float64) {
		now := time.Now()
		window.Record(iteration-lastIter, now.Sub(last), cost)
		last, lastIter = now, iteration
		if lastLogged >= 0 && iteration-lastLogged < cfg.LogEvery {
			return
		}
		lastLogged = iteration
		snap := window.Snapshot()
		log.Printf("iter=%d cost=%.6f iters_per_sec=%.2f step_ms=%.2f",
			iteration, cost, snap.ItersPerSec, snap.AvgStepMS)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	final, err := mdl.Train(cfg.LearningRate, cfg.Iterations)
	if err != nil {
		return err
	}

	acc, err := accuracy(mdl, y)
	if err != nil {
		return err
	}
	log.Printf("training complete iters=%d final_cost=%.6f train_accuracy=%.3f",
		mdl.Iterations(), final, acc)
	return nil
}

// accuracy scores the trained model's thresholded predictions on its own
// training set.
func accuracy(mdl *network.Model, labels []float64) (float64, error) {
	pred, err := mdl.Predict(nil)
	if err != nil {
		return 0, err
	}
	correct := 0
	for i, y := range labels {
		p := 0.0
		if pred.At(0, i) >= 0.5 {
			p = 1.0
		}
		if p == y {
			correct++
		}
	}
	return float64(correct) / float64(len(labels)), nil
}

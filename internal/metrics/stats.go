package metrics

import "time"

// Window accumulates training-rate stats between progress reports.
type Window struct {
	iters    int
	elapsed  time.Duration
	lastCost float64
}

// Record adds a new measurement to the window.
func (w *Window) Record(iters int, elapsed time.Duration, cost float64) {
	w.iters += iters
	w.elapsed += elapsed
	w.lastCost = cost
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{LastCost: w.lastCost}
	if w.elapsed > 0 {
		snap.ItersPerSec = float64(w.iters) / w.elapsed.Seconds()
	}
	if w.iters > 0 {
		snap.AvgStepMS = (w.elapsed.Seconds() * 1000) / float64(w.iters)
	}
	w.iters = 0
	w.elapsed = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	ItersPerSec float64
	AvgStepMS   float64
	LastCost    float64
}

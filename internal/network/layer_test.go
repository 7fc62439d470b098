package network

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"gradnet/internal/activation"
	"gradnet/internal/dataset"
	"gradnet/internal/loss"
)

func testModel(t *testing.T, topology []LayerSpec, cost loss.Func, seed int64) *Model {
	t.Helper()
	X, y := dataset.TwoClusters(20, seed)
	dataset.MinMaxNormalize(X)
	m, err := New(dataset.Matrix(X), y, cost, topology, seed)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestLayerApplyBroadcastsBias(t *testing.T) {
	l := &Layer{
		width:      2,
		priorWidth: 2,
		weights:    mat.NewDense(2, 2, []float64{1, 0, 0, 1}),
		bias:       mat.NewVecDense(2, []float64{1, -1}),
		act:        activation.Identity(),
	}
	in := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	out := l.Apply(in)
	rows, cols := out.Dims()
	if rows != 2 || cols != 3 {
		t.Fatalf("output is %dx%d, want 2x3", rows, cols)
	}
	want := mat.NewDense(2, 3, []float64{
		2, 3, 4,
		3, 4, 5,
	})
	if !mat.EqualApprox(out, want, 1e-12) {
		t.Fatalf("output mismatch:\ngot  %v\nwant %v", mat.Formatted(out), mat.Formatted(want))
	}
}

func TestLayerApplyActivation(t *testing.T) {
	l := &Layer{
		width:      1,
		priorWidth: 1,
		weights:    mat.NewDense(1, 1, []float64{-1}),
		bias:       mat.NewVecDense(1, nil),
		act:        activation.ReLU(),
	}
	out := l.Apply(mat.NewDense(1, 2, []float64{2, -3}))
	if out.At(0, 0) != 0 || out.At(0, 1) != 3 {
		t.Fatalf("relu output = [%g %g], want [0 3]", out.At(0, 0), out.At(0, 1))
	}
}

func TestEstimateGradientRestoresWeights(t *testing.T) {
	m := testModel(t, []LayerSpec{
		{Width: 3, Activation: activation.ReLU()},
		{Width: 1, Activation: activation.Sigmoid()},
	}, loss.LogLoss(), 1)
	snap := newSnapshot(m, 0.1, nil)
	for i, l := range snap.layers {
		before := mat.DenseCopyOf(l.weights)
		l.EstimateGradient(0.1)
		if !mat.Equal(before, l.weights) {
			t.Fatalf("layer %d weights changed during estimation", i)
		}
	}
}

func TestEstimateGradientMatchesOracle(t *testing.T) {
	const eps = 0.05
	m := testModel(t, []LayerSpec{
		{Width: 1, Activation: activation.Sigmoid()},
	}, loss.LogLoss(), 2)
	snap := newSnapshot(m, 0.1, nil)
	l := snap.layers[0]

	got := l.EstimateGradient(eps)

	rows, cols := l.weights.Dims()
	orig := mat.DenseCopyOf(l.weights)
	x := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			x[i*cols+j] = l.weights.At(i, j)
		}
	}
	f := func(w []float64) float64 {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				l.weights.Set(i, j, w[i*cols+j])
			}
		}
		return snap.trainingCost()
	}
	want := fd.Gradient(nil, f, x, &fd.Settings{Formula: fd.Central, Step: eps})
	l.weights.Copy(orig)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if diff := math.Abs(got.At(i, j) - want[i*cols+j]); diff > 1e-10 {
				t.Fatalf("gradient (%d,%d): got %g, oracle %g", i, j, got.At(i, j), want[i*cols+j])
			}
		}
	}
}

func TestApplyGradientWithoutEstimate(t *testing.T) {
	m := testModel(t, []LayerSpec{
		{Width: 1, Activation: activation.Sigmoid()},
	}, loss.LogLoss(), 1)
	snap := newSnapshot(m, 0.1, nil)
	if err := snap.layers[0].ApplyGradient(0.1); err == nil {
		t.Fatal("expected an error when no gradient estimate is recorded")
	}
}

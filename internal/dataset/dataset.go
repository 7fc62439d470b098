package dataset

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LoadCSV reads a numeric CSV with a header row and returns features and
// labels, taking the last column as the label.
func LoadCSV(path string) ([][]float64, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read dataset: %w", err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("dataset %s has no data rows", path)
	}
	numCols := len(records[0])
	if numCols < 2 {
		return nil, nil, fmt.Errorf("dataset %s needs at least one feature column and a label column", path)
	}

	X := make([][]float64, 0, len(records)-1)
	y := make([]float64, 0, len(records)-1)
	for i, row := range records[1:] {
		if len(row) != numCols {
			return nil, nil, fmt.Errorf("row %d has %d columns, want %d", i+2, len(row), numCols)
		}
		features := make([]float64, numCols-1)
		for j := 0; j < numCols-1; j++ {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d column %d: %w", i+2, j+1, err)
			}
			features[j] = v
		}
		label, err := strconv.ParseFloat(row[numCols-1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d label: %w", i+2, err)
		}
		X = append(X, features)
		y = append(y, label)
	}
	return X, y, nil
}

// MinMaxNormalize rescales every feature column into [0, 1] in place.
// Constant columns collapse to zero.
func MinMaxNormalize(X [][]float64) {
	if len(X) == 0 {
		return
	}
	col := make([]float64, len(X))
	for j := range X[0] {
		for i := range X {
			col[i] = X[i][j]
		}
		lo := floats.Min(col)
		span := floats.Max(col) - lo
		for i := range X {
			if span == 0 {
				X[i][j] = 0
			} else {
				X[i][j] = (X[i][j] - lo) / span
			}
		}
	}
}

// TwoClusters generates n points around two separated 2-D centers with
// alternating binary labels, deterministically for a given seed.
func TwoClusters(n int, seed int64) ([][]float64, []float64) {
	rng := rand.New(rand.NewSource(seed))
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := range X {
		cx, cy, label := 0.25, 0.25, 0.0
		if i%2 == 1 {
			cx, cy, label = 0.75, 0.75, 1.0
		}
		X[i] = []float64{
			cx + rng.NormFloat64()*0.05,
			cy + rng.NormFloat64()*0.05,
		}
		y[i] = label
	}
	return X, y
}

// Matrix converts row-major samples into a dense matrix, one sample per row.
func Matrix(X [][]float64) *mat.Dense {
	m := mat.NewDense(len(X), len(X[0]), nil)
	for i, row := range X {
		m.SetRow(i, row)
	}
	return m
}

package dataset

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.csv")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, "x1,x2,label\n0.1,0.2,0\n0.9,0.8,1\n")
	X, y, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(X) != 2 || len(y) != 2 {
		t.Fatalf("got %d samples and %d labels, want 2 and 2", len(X), len(y))
	}
	if X[1][0] != 0.9 || X[1][1] != 0.8 {
		t.Fatalf("row 1 = %v, want [0.9 0.8]", X[1])
	}
	if y[0] != 0 || y[1] != 1 {
		t.Fatalf("labels = %v, want [0 1]", y)
	}
}

func TestLoadCSVRejectsBadValue(t *testing.T) {
	path := writeCSV(t, "x1,label\nabc,1\n")
	if _, _, err := LoadCSV(path); err == nil {
		t.Fatal("expected an error for a non-numeric feature")
	}
}

func TestLoadCSVRejectsEmpty(t *testing.T) {
	path := writeCSV(t, "x1,label\n")
	if _, _, err := LoadCSV(path); err == nil {
		t.Fatal("expected an error for a header-only file")
	}
}

func TestMinMaxNormalize(t *testing.T) {
	X := [][]float64{
		{0, 10, 5},
		{2, 20, 5},
		{4, 15, 5},
	}
	MinMaxNormalize(X)
	want := [][]float64{
		{0, 0, 0},
		{0.5, 1, 0},
		{1, 0.5, 0},
	}
	if !reflect.DeepEqual(X, want) {
		t.Fatalf("normalized = %v, want %v", X, want)
	}
}

func TestTwoClustersDeterministic(t *testing.T) {
	xa, ya := TwoClusters(10, 3)
	xb, yb := TwoClusters(10, 3)
	if !reflect.DeepEqual(xa, xb) || !reflect.DeepEqual(ya, yb) {
		t.Fatal("same seed produced different datasets")
	}

	var sum0, sum1 float64
	var n0, n1 int
	for i, label := range ya {
		if label == 0 {
			sum0 += xa[i][0] + xa[i][1]
			n0++
		} else {
			sum1 += xa[i][0] + xa[i][1]
			n1++
		}
	}
	if n0 == 0 || n1 == 0 {
		t.Fatalf("labels are unbalanced: %d vs %d", n0, n1)
	}
	if sum0/float64(n0) >= sum1/float64(n1) {
		t.Fatal("cluster centers are not separated")
	}
}

func TestMatrix(t *testing.T) {
	m := Matrix([][]float64{{1, 2}, {3, 4}, {5, 6}})
	rows, cols := m.Dims()
	if rows != 3 || cols != 2 {
		t.Fatalf("matrix is %dx%d, want 3x2", rows, cols)
	}
	if m.At(2, 1) != 6 {
		t.Fatalf("m[2,1]=%g, want 6", m.At(2, 1))
	}
}

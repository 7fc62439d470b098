package trainer

import (
	"context"
	"testing"
)

func TestRunSyntheticSmoke(t *testing.T) {
	err := Run(context.Background(), RunConfig{
		Hidden:       []int{2},
		LearningRate: 0.05,
		Iterations:   5,
		Epsilon:      0.1,
		Seed:         3,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunValidates(t *testing.T) {
	cases := []RunConfig{
		{Hidden: []int{2}, LearningRate: 0.05, Iterations: 0},
		{Hidden: []int{2}, LearningRate: 0, Iterations: 5},
		{Hidden: nil, LearningRate: 0.05, Iterations: 5},
	}
	for i, cfg := range cases {
		if err := Run(context.Background(), cfg); err == nil {
			t.Fatalf("case %d: expected an error", i)
		}
	}
}

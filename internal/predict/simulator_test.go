package predict_test

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/m-a-mohsen/brainct-analyzer/internal/predict"
)

func TestSimulatorDraws(t *testing.T) {
	known := make(map[string]bool, len(predict.Labels))
	for _, l := range predict.Labels {
		known[l] = true
	}

	sim := predict.NewSimulator(rand.New(rand.NewSource(1)), 0)
	for i := 0; i < 1000; i++ {
		res, err := sim.Predict(context.Background(), nil)
		if err != nil {
			t.Fatalf("Predict: %v", err)
		}
		if res.Source != predict.SourceSimulated {
			t.Fatalf("Source = %q, want %q", res.Source, predict.SourceSimulated)
		}
		if !known[res.Label] {
			t.Fatalf("Label = %q, not a known hemorrhage type", res.Label)
		}
		if res.Confidence < 0.60 || res.Confidence > 0.95 {
			t.Fatalf("Confidence = %v, want within [0.60, 0.95]", res.Confidence)
		}
		if cents := res.Confidence * 100; math.Abs(cents-math.Round(cents)) > 1e-9 {
			t.Fatalf("Confidence = %v, want two decimal places", res.Confidence)
		}
		if res.Breakdown != nil {
			t.Fatalf("Breakdown = %v, want none for simulated result", res.Breakdown)
		}
	}
}

func TestSimulatorSeededSequence(t *testing.T) {
	a := predict.NewSimulator(rand.New(rand.NewSource(42)), 0)
	b := predict.NewSimulator(rand.New(rand.NewSource(42)), 0)
	for i := 0; i < 20; i++ {
		ra, _ := a.Predict(context.Background(), nil)
		rb, _ := b.Predict(context.Background(), nil)
		if ra.Label != rb.Label || ra.Confidence != rb.Confidence {
			t.Fatalf("draw %d diverged: %+v vs %+v", i, ra, rb)
		}
	}
}

func TestSimulatorHonorsContext(t *testing.T) {
	sim := predict.NewSimulator(nil, 10*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := sim.Predict(ctx, nil)
	if err == nil {
		t.Fatal("Predict with cancelled context succeeded")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("Predict took %v after cancellation", elapsed)
	}
}

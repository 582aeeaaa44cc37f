package predict

import (
	"context"
	"image"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Simulator fabricates predictions without a model service. It waits
// a configurable delay to mimic inference time, then draws a random
// label with a confidence between 0.60 and 0.95.
type Simulator struct {
	delay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulator returns a Simulator using rng for its draws. A nil rng
// gets a time-seeded source.
func NewSimulator(rng *rand.Rand, delay time.Duration) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{delay: delay, rng: rng}
}

// Predict ignores the image and fabricates a result after the
// configured delay, or earlier if ctx is cancelled.
func (s *Simulator) Predict(ctx context.Context, _ image.Image) (Result, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}

	s.mu.Lock()
	label := Labels[s.rng.Intn(len(Labels))]
	confidence := 0.60 + s.rng.Float64()*0.35
	s.mu.Unlock()

	return Result{
		Source:     SourceSimulated,
		Label:      label,
		Confidence: math.Round(confidence*100) / 100,
	}, nil
}

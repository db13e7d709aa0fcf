package diagnosis

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/abhisek/agriscan/internal/catalog"
	"github.com/abhisek/agriscan/internal/imaging"
)

// ScoreProvider produces one raw, non-negative score per catalog label,
// in catalog order. Scores need not sum to 1; the Engine normalizes them.
// img may be nil when no frame was captured.
type ScoreProvider interface {
	Name() string
	Score(ctx context.Context, img *imaging.Image, labels []catalog.Label) ([]float64, error)
}

// RandomScorer draws uniform scores from a seeded PCG source. It stands in
// for a real model and ignores the image content.
type RandomScorer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomScorer creates a RandomScorer. The same seed yields the same
// sequence of scans.
func NewRandomScorer(seed uint64) *RandomScorer {
	return &RandomScorer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *RandomScorer) Name() string { return "random" }

func (r *RandomScorer) Score(ctx context.Context, _ *imaging.Image, labels []catalog.Label) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	scores := make([]float64, len(labels))
	for i := range scores {
		scores[i] = r.rng.Float64()
	}
	return scores, nil
}

// FixtureScorer returns fixed scores. Useful for demos and tests.
type FixtureScorer struct {
	Scores []float64
}

func (f *FixtureScorer) Name() string { return "fixture" }

func (f *FixtureScorer) Score(_ context.Context, _ *imaging.Image, labels []catalog.Label) ([]float64, error) {
	if len(f.Scores) != len(labels) {
		return nil, fmt.Errorf("fixture has %d scores for %d labels", len(f.Scores), len(labels))
	}
	out := make([]float64, len(f.Scores))
	copy(out, f.Scores)
	return out, nil
}

// UniformScorer gives every label the same score, so ranking falls back
// entirely to catalog order.
type UniformScorer struct{}

func (UniformScorer) Name() string { return "uniform" }

func (UniformScorer) Score(_ context.Context, _ *imaging.Image, labels []catalog.Label) ([]float64, error) {
	scores := make([]float64, len(labels))
	for i := range scores {
		scores[i] = 1
	}
	return scores, nil
}

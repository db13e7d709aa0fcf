package diagnosis

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/abhisek/agriscan/internal/catalog"
	"github.com/abhisek/agriscan/internal/imaging"
)

// ErrInvalidScores indicates a ScoreProvider returned scores that cannot
// form a distribution over the catalog.
var ErrInvalidScores = errors.New("invalid scores")

// Engine ranks catalog labels for an image using an injected ScoreProvider.
type Engine struct {
	catalog *catalog.Catalog
	scorer  ScoreProvider
	topK    int
	log     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithTopK overrides how many predictions a result keeps.
func WithTopK(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.topK = k
		}
	}
}

// NewEngine creates an Engine over cat.
func NewEngine(cat *catalog.Catalog, scorer ScoreProvider, opts ...Option) *Engine {
	e := &Engine{
		catalog: cat,
		scorer:  scorer,
		topK:    TopK,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the label catalog the engine ranks.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// ScorerName returns the name of the injected ScoreProvider.
func (e *Engine) ScorerName() string {
	if e.scorer == nil {
		return ""
	}
	return e.scorer.Name()
}

// Diagnose scores every label, normalizes the scores into a distribution,
// and returns the top predictions. Exact ties keep catalog order.
// img may be nil; a non-nil handle without pixels is rejected.
func (e *Engine) Diagnose(ctx context.Context, img *imaging.Image) (ScanResult, error) {
	labels := e.catalog.Labels()
	if len(labels) == 0 {
		return ScanResult{}, &ConfigurationError{Err: catalog.ErrEmpty}
	}
	if e.scorer == nil {
		return ScanResult{}, &ConfigurationError{Err: errors.New("no score provider")}
	}
	if img != nil && !img.Valid() {
		return ScanResult{}, &InvalidInputError{Name: img.Name, Err: errors.New("image has no pixels")}
	}

	raw, err := e.scorer.Score(ctx, img, labels)
	if err != nil {
		if ctx.Err() != nil {
			return ScanResult{}, err
		}
		return ScanResult{}, &ConfigurationError{
			Source: e.scorer.Name(),
			Err:    fmt.Errorf("%w: %v", ErrInvalidScores, err),
		}
	}

	probs, err := Normalize(raw, len(labels))
	if err != nil {
		return ScanResult{}, &ConfigurationError{Source: e.scorer.Name(), Err: err}
	}

	ranked := Rank(labels, probs)
	result := ScanResult{
		Predictions: ranked[:min(e.topK, len(ranked))],
		Scorer:      e.scorer.Name(),
	}

	top, _ := result.Top()
	e.log.DebugContext(ctx, "diagnosis complete",
		"scorer", result.Scorer,
		"top_label", top.Label,
		"top_confidence", top.Confidence,
		"image", imageName(img),
	)
	return result, nil
}

// Normalize turns raw scores into a distribution summing to 1. All-zero
// scores become the uniform distribution. Scores are scaled by their
// maximum first, so large finite values cannot overflow the sum.
func Normalize(raw []float64, n int) ([]float64, error) {
	if len(raw) != n {
		return nil, fmt.Errorf("%w: got %d scores for %d labels", ErrInvalidScores, len(raw), n)
	}
	var peak float64
	for i, s := range raw {
		if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 {
			return nil, fmt.Errorf("%w: score[%d] = %v", ErrInvalidScores, i, s)
		}
		peak = max(peak, s)
	}

	out := make([]float64, n)
	if peak == 0 {
		for i := range out {
			out[i] = 1 / float64(n)
		}
		return out, nil
	}

	var sum float64
	for i, s := range raw {
		out[i] = s / peak
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out, nil
}

// Rank pairs labels with probabilities and sorts them by confidence
// descending. The sort is stable, so exact ties keep label order.
func Rank(labels []catalog.Label, probs []float64) []Prediction {
	preds := make([]Prediction, len(labels))
	for i, l := range labels {
		preds[i] = Prediction{Label: l, Confidence: probs[i]}
	}
	slices.SortStableFunc(preds, func(a, b Prediction) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
	return preds
}

func imageName(img *imaging.Image) string {
	if img == nil {
		return ""
	}
	return img.Name
}

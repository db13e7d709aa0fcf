package diagnosis

import "github.com/abhisek/agriscan/internal/catalog"

// TopK is the number of predictions kept in a ScanResult.
const TopK = 3

// Prediction is one ranked label with its confidence (0.0–1.0).
type Prediction struct {
	Label      catalog.Label `json:"disease"`
	Confidence float64       `json:"confidence"`
}

// ScanResult holds the highest-confidence predictions of one analysis,
// ordered by confidence descending.
type ScanResult struct {
	Predictions []Prediction `json:"predictions"`
	Scorer      string       `json:"scorer"` // Which ScoreProvider produced this result, or "preset"
}

// Top returns the leading prediction.
func (r ScanResult) Top() (Prediction, bool) {
	if len(r.Predictions) == 0 {
		return Prediction{}, false
	}
	return r.Predictions[0], true
}

// Len returns the number of predictions.
func (r ScanResult) Len() int {
	return len(r.Predictions)
}

package diagnosis

import "strings"

// Preset is a named, hard-coded scan result used for demonstration. It
// bypasses the Engine entirely.
type Preset struct {
	Name      string
	SampleURL string
	Result    ScanResult
}

const presetScorer = "preset"

var presets = []Preset{
	{
		Name:      "Early Blight",
		SampleURL: "https://github.com/ravirajsinh45/plant_disease_dataset/raw/master/tomato/Tomato_Early_blight.JPG",
		Result: ScanResult{
			Scorer: presetScorer,
			Predictions: []Prediction{
				{Label: "Tomato Early Blight", Confidence: 0.92},
				{Label: "Tomato Septoria Leaf Spot", Confidence: 0.06},
				{Label: "Tomato Late Blight", Confidence: 0.02},
			},
		},
	},
	{
		Name:      "Late Blight",
		SampleURL: "https://github.com/ravirajsinh45/plant_disease_dataset/raw/master/tomato/Tomato_Late_blight.JPG",
		Result: ScanResult{
			Scorer: presetScorer,
			Predictions: []Prediction{
				{Label: "Tomato Late Blight", Confidence: 0.88},
				{Label: "Tomato Early Blight", Confidence: 0.08},
				{Label: "Tomato Leaf Mold", Confidence: 0.04},
			},
		},
	},
	{
		Name:      "Healthy",
		SampleURL: "https://github.com/ravirajsinh45/plant_disease_dataset/raw/master/tomato/Healthy.JPG",
		Result: ScanResult{
			Scorer: presetScorer,
			Predictions: []Prediction{
				{Label: "Healthy Tomato", Confidence: 0.95},
				{Label: "Tomato Bacterial Spot", Confidence: 0.03},
				{Label: "Tomato Yellow Leaf Curl Virus", Confidence: 0.02},
			},
		},
	},
}

// Presets returns every preset in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	for i, p := range presets {
		p.Result = cloneResult(p.Result)
		out[i] = p
	}
	return out
}

// PresetNames returns the preset names in display order.
func PresetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// ScanFromPreset returns the fixed result for a preset. Names match
// exactly first, then case-insensitively.
func ScanFromPreset(name string) (ScanResult, error) {
	for _, p := range presets {
		if p.Name == name {
			return cloneResult(p.Result), nil
		}
	}
	trimmed := strings.TrimSpace(name)
	for _, p := range presets {
		if strings.EqualFold(p.Name, trimmed) {
			return cloneResult(p.Result), nil
		}
	}
	return ScanResult{}, &UnknownPresetError{Name: name}
}

func cloneResult(r ScanResult) ScanResult {
	preds := make([]Prediction, len(r.Predictions))
	copy(preds, r.Predictions)
	return ScanResult{Predictions: preds, Scorer: r.Scorer}
}

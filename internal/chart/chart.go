package chart

import (
	"strings"
	"unicode/utf8"

	"github.com/abhisek/agriscan/internal/catalog"
	"github.com/abhisek/agriscan/internal/diagnosis"
)

const (
	// MaxLabelLen is the longest short label kept before truncation.
	MaxLabelLen = 20
	// Ellipsis marks a truncated label.
	Ellipsis = "..."

	AxisMin = 0.0
	AxisMax = 1.0

	DefaultTitle  = "Disease Confidence Scores"
	DefaultXLabel = "Confidence"
)

// BarColors are assigned to bars in order, cycling.
var BarColors = []string{"#4CAF50", "#FFC107", "#FF9800"}

// Bar is one horizontal bar.
type Bar struct {
	Label     string        `json:"label"`
	FullLabel catalog.Label `json:"disease"`
	Value     float64       `json:"value"`
	Color     string        `json:"color"`
}

// Spec describes a horizontal bar chart of a scan result, highest
// confidence first.
type Spec struct {
	Title   string  `json:"title"`
	XLabel  string  `json:"x_label"`
	AxisMin float64 `json:"axis_min"`
	AxisMax float64 `json:"axis_max"`
	Bars    []Bar   `json:"bars"`
}

// Formatter builds chart specs, stripping a crop name from labels.
type Formatter struct {
	prefix string
}

// NewFormatter creates a Formatter for crop. Labels starting with
// "<crop> " lose that prefix.
func NewFormatter(crop string) Formatter {
	if crop == "" {
		return Formatter{}
	}
	return Formatter{prefix: crop + " "}
}

// Format converts result into a chart spec, keeping prediction order.
func (f Formatter) Format(result diagnosis.ScanResult) Spec {
	spec := Spec{
		Title:   DefaultTitle,
		XLabel:  DefaultXLabel,
		AxisMin: AxisMin,
		AxisMax: AxisMax,
		Bars:    make([]Bar, 0, len(result.Predictions)),
	}
	for i, p := range result.Predictions {
		spec.Bars = append(spec.Bars, Bar{
			Label:     f.ShortLabel(p.Label),
			FullLabel: p.Label,
			Value:     p.Confidence,
			Color:     BarColors[i%len(BarColors)],
		})
	}
	return spec
}

// ShortLabel strips the crop prefix and truncates the remainder to
// MaxLabelLen characters plus Ellipsis.
func (f Formatter) ShortLabel(label catalog.Label) string {
	s := string(label)
	if f.prefix != "" {
		s = strings.TrimPrefix(s, f.prefix)
	}
	if utf8.RuneCountInString(s) <= MaxLabelLen {
		return s
	}
	return string([]rune(s)[:MaxLabelLen]) + Ellipsis
}

// Format builds a chart for the tomato catalog.
func Format(result diagnosis.ScanResult) Spec {
	return NewFormatter("Tomato").Format(result)
}

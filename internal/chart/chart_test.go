package chart

import (
	"reflect"
	"testing"
	"unicode/utf8"

	"github.com/abhisek/agriscan/internal/catalog"
	"github.com/abhisek/agriscan/internal/diagnosis"
)

func TestShortLabel(t *testing.T) {
	f := NewFormatter("Tomato")
	tests := []struct {
		in   catalog.Label
		want string
	}{
		{"Tomato Early Blight", "Early Blight"},
		{"Tomato Septoria Leaf Spot", "Septoria Leaf Spot"},
		{"Tomato Yellow Leaf Curl Virus", "Yellow Leaf Curl Vir..."},
		{"Healthy Tomato", "Healthy Tomato"},
		{"Exactly twenty chars", "Exactly twenty chars"},
		{"Twenty-one characters", "Twenty-one character..."},
	}
	for _, tt := range tests {
		if got := f.ShortLabel(tt.in); got != tt.want {
			t.Errorf("ShortLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShortLabel_NoPrefix(t *testing.T) {
	f := NewFormatter("")
	if got := f.ShortLabel("Tomato Leaf Mold"); got != "Tomato Leaf Mold" {
		t.Errorf("got %q", got)
	}
}

func TestShortLabel_LengthBound(t *testing.T) {
	f := NewFormatter("Tomato")
	for _, l := range catalog.Default().Labels() {
		s := f.ShortLabel(l)
		n := utf8.RuneCountInString(s)
		if n > MaxLabelLen+len(Ellipsis) {
			t.Errorf("ShortLabel(%q) has %d chars", l, n)
		}
	}
}

func TestFormat_PreservesOrder(t *testing.T) {
	// Deliberately unsorted input: the formatter must not re-sort.
	res := diagnosis.ScanResult{Predictions: []diagnosis.Prediction{
		{Label: "Tomato Leaf Mold", Confidence: 0.1},
		{Label: "Tomato Early Blight", Confidence: 0.7},
		{Label: "Healthy Tomato", Confidence: 0.2},
	}}
	spec := Format(res)
	want := []string{"Leaf Mold", "Early Blight", "Healthy Tomato"}
	for i, b := range spec.Bars {
		if b.Label != want[i] {
			t.Errorf("bar[%d] = %q, want %q", i, b.Label, want[i])
		}
		if b.Value != res.Predictions[i].Confidence {
			t.Errorf("bar[%d] value = %f", i, b.Value)
		}
		if b.Color != BarColors[i] {
			t.Errorf("bar[%d] color = %q", i, b.Color)
		}
	}
	if spec.AxisMin != 0 || spec.AxisMax != 1 {
		t.Errorf("axis = [%f, %f], want [0, 1]", spec.AxisMin, spec.AxisMax)
	}
	if spec.Title != DefaultTitle || spec.XLabel != DefaultXLabel {
		t.Errorf("unexpected titles %q / %q", spec.Title, spec.XLabel)
	}
}

func TestFormat_Idempotent(t *testing.T) {
	res, _ := diagnosis.ScanFromPreset("Early Blight")
	if !reflect.DeepEqual(Format(res), Format(res)) {
		t.Error("Format should be pure")
	}
}

func TestFormat_Empty(t *testing.T) {
	spec := Format(diagnosis.ScanResult{})
	if len(spec.Bars) != 0 {
		t.Errorf("got %d bars, want 0", len(spec.Bars))
	}
	if spec.AxisMax != 1 {
		t.Errorf("AxisMax = %f", spec.AxisMax)
	}
}

package treatment

import (
	"reflect"
	"testing"

	"github.com/abhisek/agriscan/internal/catalog"
)

func TestTreatmentsFor_NonEmptyForEveryLabel(t *testing.T) {
	table := NewTable(catalog.Default())
	for _, label := range catalog.Default().Labels() {
		if got := table.ForLabel(label); len(got) == 0 {
			t.Errorf("ForLabel(%q) returned empty plan", label)
		}
	}
}

func TestForLabel_Routing(t *testing.T) {
	tests := []struct {
		label catalog.Label
		first string
	}{
		{"Healthy Tomato", "Continue regular monitoring"},
		{"Tomato Early Blight", "Remove infected leaves immediately"},
		{"Tomato Late Blight", "Apply chlorothalonil (0.05%) immediately"},
		{"Tomato Septoria Leaf Spot", "Apply mancozeb fungicide (2g/L water)"},
		{"Tomato Spider Mites", "Apply neem oil spray every 7 days"},
		{"Tomato Mosaic Virus", "Apply neem oil spray every 7 days"},
		{"Something Else Entirely", "Apply neem oil spray every 7 days"},
	}
	table := NewTable(catalog.Default())
	for _, tt := range tests {
		got := table.ForLabel(tt.label)
		if got[0] != tt.first {
			t.Errorf("ForLabel(%q)[0] = %q, want %q", tt.label, got[0], tt.first)
		}
	}
}

func TestForLabel_EarlyBlightPlan(t *testing.T) {
	got := ForLabel("Tomato Early Blight")
	want := Plan{
		"Remove infected leaves immediately",
		"Apply copper-based fungicide weekly",
		"Improve air circulation around plants",
		"Rotate crops next season",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTreatmentsFor_UnknownCategory(t *testing.T) {
	got := TreatmentsFor("unheard-of")
	if !reflect.DeepEqual(got, TreatmentsFor(catalog.CategoryGeneral)) {
		t.Errorf("unknown category should route to the general plan, got %v", got)
	}
}

func TestTreatmentsFor_Idempotent(t *testing.T) {
	a := TreatmentsFor(catalog.CategorySeptoria)
	a[0] = "mutated"
	b := TreatmentsFor(catalog.CategorySeptoria)
	if b[0] != "Apply mancozeb fungicide (2g/L water)" {
		t.Error("callers must not be able to mutate the table")
	}
	if !reflect.DeepEqual(TreatmentsFor(catalog.CategorySeptoria), b) {
		t.Error("repeated calls should return identical plans")
	}
}

func TestTable_UsesCatalogCategory(t *testing.T) {
	// An explicit category overrides name matching.
	c, err := catalog.New("", []catalog.Entry{{Label: "Leaf Septoria-ish", Category: catalog.CategoryHealthy}})
	if err != nil {
		t.Fatal(err)
	}
	got := NewTable(c).ForLabel("Leaf Septoria-ish")
	if got[0] != "Continue regular monitoring" {
		t.Errorf("got %q, want healthy advice", got[0])
	}
}

func TestPreventionTips(t *testing.T) {
	tips := PreventionTips()
	if len(tips) != 4 {
		t.Fatalf("got %d tips, want 4", len(tips))
	}
	if tips[0] != "Rotate crops annually to prevent disease buildup" {
		t.Errorf("tips[0] = %q", tips[0])
	}
}

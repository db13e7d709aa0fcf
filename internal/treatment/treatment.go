package treatment

import "github.com/abhisek/agriscan/internal/catalog"

// Plan is an ordered list of advice strings for one diagnosis.
type Plan []string

var plans = map[catalog.Category]Plan{
	catalog.CategoryHealthy: {
		"Continue regular monitoring",
		"Apply balanced NPK fertilizer",
		"Maintain proper watering schedule",
		"Ensure adequate sunlight exposure",
	},
	catalog.CategoryEarlyBlight: {
		"Remove infected leaves immediately",
		"Apply copper-based fungicide weekly",
		"Improve air circulation around plants",
		"Rotate crops next season",
	},
	catalog.CategoryLateBlight: {
		"Apply chlorothalonil (0.05%) immediately",
		"Destroy severely infected plants",
		"Avoid overhead watering",
		"Plant resistant varieties next season",
	},
	catalog.CategorySeptoria: {
		"Apply mancozeb fungicide (2g/L water)",
		"Remove and destroy infected leaves",
		"Stake plants for better airflow",
		"Mulch to prevent soil splash",
	},
	catalog.CategoryGeneral: {
		"Apply neem oil spray every 7 days",
		"Remove affected plant parts",
		"Introduce beneficial insects",
		"Apply sulfur-based fungicide",
	},
}

var preventionTips = []string{
	"Rotate crops annually to prevent disease buildup",
	"Water early in the day to allow leaves to dry",
	"Inspect plants weekly for early signs of disease",
	"Sterilize tools after working with infected plants",
}

// TreatmentsFor returns the advice for a category. Unknown categories get
// the general list, so the result is never empty.
func TreatmentsFor(cat catalog.Category) Plan {
	p, ok := plans[cat]
	if !ok {
		p = plans[catalog.CategoryGeneral]
	}
	out := make(Plan, len(p))
	copy(out, p)
	return out
}

// ForLabel classifies a label by name and returns its advice.
func ForLabel(label catalog.Label) Plan {
	return TreatmentsFor(catalog.Classify(label))
}

// PreventionTips returns the advice shown under every diagnosis.
func PreventionTips() []string {
	out := make([]string, len(preventionTips))
	copy(out, preventionTips)
	return out
}

// Table resolves advice through the categories a catalog assigned at
// definition time.
type Table struct {
	catalog *catalog.Catalog
}

// NewTable creates a Table backed by c.
func NewTable(c *catalog.Catalog) *Table {
	return &Table{catalog: c}
}

// ForLabel returns the advice for label. Labels outside the catalog are
// classified by name.
func (t *Table) ForLabel(label catalog.Label) Plan {
	if cat, ok := t.catalog.CategoryOf(label); ok {
		return TreatmentsFor(cat)
	}
	return ForLabel(label)
}

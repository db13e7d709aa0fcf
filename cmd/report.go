package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/agriscan/internal/chart"
	"github.com/abhisek/agriscan/internal/diagnosis"
	"github.com/abhisek/agriscan/internal/scan"
	"github.com/abhisek/agriscan/internal/treatment"
	"github.com/abhisek/agriscan/internal/ui/components"
)

const reportChartWidth = 60

// report is the printable outcome of one scan.
type report struct {
	SessionID      string               `json:"session_id"`
	Method         scan.Method          `json:"method"`
	Image          string               `json:"image,omitempty"`
	Result         diagnosis.ScanResult `json:"result"`
	Treatments     treatment.Plan       `json:"treatments"`
	PreventionTips []string             `json:"prevention_tips"`
	Chart          chart.Spec           `json:"chart"`
}

func newReport(svc *scan.Service, sess scan.Session) (report, error) {
	if !sess.HasResult() {
		return report{}, fmt.Errorf("session %s has no result", sess.ID)
	}
	plan, _ := svc.Treatments(sess)
	spec, _ := svc.Chart(sess)

	r := report{
		SessionID:      sess.ID,
		Method:         sess.Method,
		Result:         *sess.Result,
		Treatments:     plan,
		PreventionTips: treatment.PreventionTips(),
		Chart:          spec,
	}
	if sess.Image != nil {
		r.Image = sess.Image.Name
	}
	return r, nil
}

func (r report) writeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (r report) writeText(w io.Writer) error {
	var b strings.Builder
	top, _ := r.Result.Top()

	fmt.Fprintf(&b, "Diagnosis:  %s\n", top.Label)
	fmt.Fprintf(&b, "Confidence: %.1f%%\n", top.Confidence*100)
	if r.Image != "" {
		fmt.Fprintf(&b, "Image:      %s\n", r.Image)
	}

	b.WriteString("\nRecommended Treatment\n")
	for i, step := range r.Treatments {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
	}

	b.WriteString("\nPrevention Tips\n")
	for _, tip := range r.PreventionTips {
		fmt.Fprintf(&b, "  • %s\n", tip)
	}

	b.WriteString("\n")
	b.WriteString(components.NewBarChart(r.Chart, reportChartWidth).View())
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func printReport(w io.Writer, svc *scan.Service, sess scan.Session, asJSON bool) error {
	r, err := newReport(svc, sess)
	if err != nil {
		return err
	}
	if asJSON {
		return r.writeJSON(w)
	}
	return r.writeText(w)
}

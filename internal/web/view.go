package web

import (
	"github.com/abhisek/agriscan/internal/chart"
	"github.com/abhisek/agriscan/internal/diagnosis"
	"github.com/abhisek/agriscan/internal/scan"
	"github.com/abhisek/agriscan/internal/treatment"
)

// sessionView is the JSON shape of a session.
type sessionView struct {
	ID             string                `json:"id"`
	Method         scan.Method           `json:"method"`
	Status         string                `json:"status"`
	StatusColor    string                `json:"status_color"`
	Result         *diagnosis.ScanResult `json:"result,omitempty"`
	Treatments     treatment.Plan        `json:"treatments,omitempty"`
	PreventionTips []string              `json:"prevention_tips,omitempty"`
	Chart          *chart.Spec           `json:"chart,omitempty"`
	Image          *imageView            `json:"image,omitempty"`
	Error          string                `json:"error,omitempty"`
}

type imageView struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	MIME   string `json:"mime"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type labelView struct {
	Label    string `json:"label"`
	Category string `json:"category"`
}

type presetView struct {
	Name      string               `json:"name"`
	SampleURL string               `json:"sample_url"`
	Result    diagnosis.ScanResult `json:"result"`
}

type errorView struct {
	Error string `json:"error"`
}

func (s *Server) viewOf(sess scan.Session) sessionView {
	v := sessionView{
		ID:          sess.ID,
		Method:      sess.Method,
		Status:      sess.Status.String(),
		StatusColor: sess.Status.Color(),
		Error:       sess.LastError,
	}
	if !sess.HasResult() {
		return v
	}

	v.Result = sess.Result
	v.Treatments, _ = s.service.Treatments(sess)
	v.PreventionTips = treatment.PreventionTips()
	if spec, ok := s.service.Chart(sess); ok {
		v.Chart = &spec
	}
	if sess.Image.Valid() {
		b := sess.Image.Bounds()
		v.Image = &imageView{
			Name:   sess.Image.Name,
			Source: string(sess.Image.Source),
			MIME:   sess.Image.MIME,
			Width:  b.Dx(),
			Height: b.Dy(),
		}
	}
	return v
}

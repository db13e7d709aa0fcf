package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/abhisek/agriscan/internal/diagnosis"
	"github.com/abhisek/agriscan/internal/scan"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"percent": func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	"barWidth": func(v float64) string {
		return fmt.Sprintf("%.0f", min(max(v, 0), 1)*100)
	},
}).ParseFS(templateFS, "templates/*.html"))

type pageData struct {
	Session sessionView
	Presets []string
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	data := pageData{
		Session: s.viewOf(s.store.Get(sessionID(c))),
		Presets: diagnosis.PresetNames(),
	}
	return s.render(c, "index.html", data)
}

// handleClassify serves the HTML form: a "preset" field applies a sample,
// otherwise the uploaded image is scanned. The response is the result
// fragment, or the whole page when the browser posted the form directly.
func (s *Server) handleClassify(c *fiber.Ctx) error {
	var (
		sess scan.Session
		err  error
	)
	if name := c.FormValue("preset"); name != "" {
		sess, err = s.store.Update(sessionID(c), func(sess scan.Session) (scan.Session, error) {
			sess = s.service.SelectMethod(sess, scan.MethodSample)
			return s.service.ApplyPreset(sess, name)
		})
	} else {
		sess, err = s.scan(c)
	}

	status := fiber.StatusOK
	if err != nil {
		status = statusFor(err)
	}
	c.Status(status)

	if c.Get("HX-Request") != "" {
		return s.render(c, "result", s.viewOf(sess))
	}
	return s.render(c, "index.html", pageData{
		Session: s.viewOf(sess),
		Presets: diagnosis.PresetNames(),
	})
}

func (s *Server) render(c *fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

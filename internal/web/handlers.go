package web

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/abhisek/agriscan/internal/diagnosis"
	"github.com/abhisek/agriscan/internal/imaging"
	"github.com/abhisek/agriscan/internal/scan"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "scorer": s.service.Engine().ScorerName()})
}

func (s *Server) handleLabels(c *fiber.Ctx) error {
	entries := s.service.Engine().Catalog().Entries()
	out := make([]labelView, len(entries))
	for i, e := range entries {
		out[i] = labelView{Label: string(e.Label), Category: string(e.Category)}
	}
	return c.JSON(out)
}

func (s *Server) handlePresets(c *fiber.Ctx) error {
	presets := diagnosis.Presets()
	out := make([]presetView, len(presets))
	for i, p := range presets {
		out[i] = presetView{Name: p.Name, SampleURL: p.SampleURL, Result: p.Result}
	}
	return c.JSON(out)
}

func (s *Server) handleSession(c *fiber.Ctx) error {
	return c.JSON(s.viewOf(s.store.Get(sessionID(c))))
}

// handleScan runs the engine on an optional multipart "image" field. A
// request without one scans an absent camera frame.
func (s *Server) handleScan(c *fiber.Ctx) error {
	sess, err := s.scan(c)
	if err != nil {
		return c.Status(statusFor(err)).JSON(errorView{Error: scan.UserMessage(err)})
	}
	return c.JSON(s.viewOf(sess))
}

func (s *Server) handlePreset(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid preset name")
	}
	sess, err := s.store.Update(sessionID(c), func(sess scan.Session) (scan.Session, error) {
		sess = s.service.SelectMethod(sess, scan.MethodSample)
		return s.service.ApplyPreset(sess, name)
	})
	if err != nil {
		return c.Status(statusFor(err)).JSON(errorView{Error: scan.UserMessage(err)})
	}
	return c.JSON(s.viewOf(sess))
}

func (s *Server) handleNewScan(c *fiber.Ctx) error {
	sess, _ := s.store.Update(sessionID(c), func(sess scan.Session) (scan.Session, error) {
		return scan.NewScan(sess), nil
	})
	return c.JSON(s.viewOf(sess))
}

// scan reads the request image and runs one diagnosis in the caller's
// session.
func (s *Server) scan(c *fiber.Ctx) (scan.Session, error) {
	method := scan.MethodCamera
	if m := scan.Method(c.FormValue("method")); m == scan.MethodUpload || m == scan.MethodCamera {
		method = m
	}
	// A frame posted with method=camera came from the browser's camera
	// capture; any other attached file is an upload.
	captured := c.FormValue("method") == string(scan.MethodCamera)
	src := imaging.SourceUpload
	if captured {
		src = imaging.SourceCamera
	}

	img, err := s.formImage(c, src)
	if err != nil {
		id := sessionID(c)
		_, _ = s.store.Update(id, func(sess scan.Session) (scan.Session, error) {
			sess.LastError = scan.UserMessage(err)
			return sess, nil
		})
		return s.store.Get(id), err
	}
	if img != nil && !captured {
		method = scan.MethodUpload
	}

	return s.store.Update(sessionID(c), func(sess scan.Session) (scan.Session, error) {
		if sess.Method != method {
			sess = s.service.SelectMethod(sess, method)
		}
		return s.service.Scan(c.UserContext(), s.service.Begin(sess), img)
	})
}

// formImage decodes the "image" part. A missing part is an absent image,
// not an error.
func (s *Server) formImage(c *fiber.Ctx, src imaging.Source) (*imaging.Image, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, &diagnosis.InvalidInputError{Name: fh.Filename, Err: err}
	}
	defer f.Close()
	return diagnosis.ReadImage(fh.Filename, src, f, s.maxUpload)
}

func statusFor(err error) int {
	var (
		inErr     *diagnosis.InvalidInputError
		presetErr *diagnosis.UnknownPresetError
	)
	switch {
	case errors.As(err, &inErr):
		return fiber.StatusBadRequest
	case errors.As(err, &presetErr):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

package scan

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/abhisek/agriscan/internal/chart"
	"github.com/abhisek/agriscan/internal/diagnosis"
	"github.com/abhisek/agriscan/internal/imaging"
	"github.com/abhisek/agriscan/internal/treatment"
)

// Service drives the decision core on behalf of a shell. It holds no
// session state of its own.
type Service struct {
	engine    *diagnosis.Engine
	table     *treatment.Table
	formatter chart.Formatter
	log       *slog.Logger
	now       func() time.Time
}

// NewService wires the engine, treatment table and chart formatter for the
// engine's catalog.
func NewService(engine *diagnosis.Engine, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cat := engine.Catalog()
	return &Service{
		engine:    engine,
		table:     treatment.NewTable(cat),
		formatter: chart.NewFormatter(cat.Crop()),
		log:       logger,
		now:       time.Now,
	}
}

// Engine returns the diagnosis engine.
func (s *Service) Engine() *diagnosis.Engine {
	return s.engine
}

// SelectMethod switches the input method. Choosing the camera clears any
// stored result.
func (s *Service) SelectMethod(sess Session, m Method) Session {
	sess.Method = m
	sess.LastError = ""
	sess.Status = initialStatus(m)
	if m == MethodCamera {
		sess.Result = nil
		sess.Image = nil
	}
	sess.UpdatedAt = s.now()
	return sess
}

// Begin marks the session as processing.
func (s *Service) Begin(sess Session) Session {
	sess.Status = StatusProcessing
	sess.UpdatedAt = s.now()
	return sess
}

// Scan runs one diagnosis. On failure the returned session keeps its prior
// result and records the error message.
func (s *Service) Scan(ctx context.Context, sess Session, img *imaging.Image) (Session, error) {
	result, err := s.engine.Diagnose(ctx, img)
	if err != nil {
		s.log.WarnContext(ctx, "scan failed", "session", sess.ID, "method", sess.Method, "err", err)
		return s.fail(sess, err), err
	}

	sess.Result = &result
	sess.Image = img
	sess.LastError = ""
	sess.Status = StatusReady
	sess.UpdatedAt = s.now()

	top, _ := result.Top()
	s.log.InfoContext(ctx, "scan complete",
		"session", sess.ID,
		"method", sess.Method,
		"top_label", top.Label,
		"top_confidence", top.Confidence,
	)
	return sess, nil
}

// ApplyPreset stores a preset result without running the engine. Unknown
// presets leave the session unchanged apart from LastError.
func (s *Service) ApplyPreset(sess Session, name string) (Session, error) {
	result, err := diagnosis.ScanFromPreset(name)
	if err != nil {
		s.log.Warn("preset rejected", "session", sess.ID, "preset", name)
		return s.fail(sess, err), err
	}

	sess.Result = &result
	sess.Image = nil
	sess.LastError = ""
	sess.Status = StatusReady
	sess.UpdatedAt = s.now()
	s.log.Info("preset applied", "session", sess.ID, "preset", name)
	return sess, nil
}

// Treatments returns the advice for the stored result's top label.
func (s *Service) Treatments(sess Session) (treatment.Plan, bool) {
	if !sess.HasResult() {
		return nil, false
	}
	top, _ := sess.Result.Top()
	return s.table.ForLabel(top.Label), true
}

// Chart returns the chart spec for the stored result.
func (s *Service) Chart(sess Session) (chart.Spec, bool) {
	if !sess.HasResult() {
		return chart.Spec{}, false
	}
	return s.formatter.Format(*sess.Result), true
}

func (s *Service) fail(sess Session, err error) Session {
	sess.LastError = UserMessage(err)
	sess.Status = initialStatus(sess.Method)
	sess.UpdatedAt = s.now()
	return sess
}

// UserMessage renders an error for display in a shell.
func UserMessage(err error) string {
	var (
		inErr     *diagnosis.InvalidInputError
		presetErr *diagnosis.UnknownPresetError
		cfgErr    *diagnosis.ConfigurationError
	)
	switch {
	case errors.As(err, &inErr):
		switch {
		case errors.Is(err, imaging.ErrUnsupportedFormat):
			return "Unsupported image format. Please use a JPG or PNG file."
		case errors.Is(err, imaging.ErrTooLarge):
			return "Image is too large."
		case errors.Is(err, imaging.ErrEmpty):
			return "Please select an image file to upload."
		}
		return "Could not read the image. Please try another photo."
	case errors.As(err, &presetErr):
		return presetErr.Error()
	case errors.As(err, &cfgErr):
		return "Scanner is misconfigured: " + cfgErr.Err.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Scan was cancelled."
	default:
		return "Scan failed: " + err.Error()
	}
}

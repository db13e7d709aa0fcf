package scanner

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/agriscan/internal/diagnosis"
	"github.com/abhisek/agriscan/internal/imaging"
	"github.com/abhisek/agriscan/internal/router"
	"github.com/abhisek/agriscan/internal/scan"
	"github.com/abhisek/agriscan/internal/screen"
	"github.com/abhisek/agriscan/internal/screens/results"
	"github.com/abhisek/agriscan/internal/ui/components"
	"github.com/abhisek/agriscan/internal/ui/layout"
)

const (
	tickInterval = 100 * time.Millisecond
	maxPathLen   = 4096
)

// Options configures the scanner screens.
type Options struct {
	Service        *scan.Service
	AnalyzeDelay   time.Duration
	MaxUploadBytes int64
}

type phase int

const (
	phaseInput phase = iota
	phaseAnalyzing
)

// Messages driving the analysis.
type (
	tickMsg     time.Time
	analyzeMsg  struct{ gen int }
	scanDoneMsg struct {
		gen     int
		session scan.Session
		err     error
	}
)

// ScannerScreen collects input for one method and runs the scan.
type ScannerScreen struct {
	opts    Options
	session *scan.Session

	phase     phase
	gen       int
	tickCount int

	pending *imaging.Image
	preset  string

	pathInput components.TextInput
	samples   components.Menu
}

var _ screen.Screen = (*ScannerScreen)(nil)
var _ screen.KeyHintProvider = (*ScannerScreen)(nil)
var _ screen.StatusProvider = (*ScannerScreen)(nil)

// New creates a scanner for the session's current method. The screen
// writes every session update back through session.
func New(opts Options, session *scan.Session) *ScannerScreen {
	s := &ScannerScreen{
		opts:    opts,
		session: session,
	}

	switch session.Method {
	case scan.MethodUpload:
		s.pathInput = components.NewTextInput("path/to/leaf.jpg", maxPathLen)
	case scan.MethodSample:
		presets := diagnosis.Presets()
		items := make([]components.MenuItem, 0, len(presets))
		for _, p := range presets {
			items = append(items, components.MenuItem{
				Label:  p.Name,
				Hint:   p.SampleURL,
				Action: s.choosePreset(p.Name),
			})
		}
		s.samples = components.NewMenu(items)
	}
	return s
}

func (s *ScannerScreen) choosePreset(name string) func() tea.Cmd {
	return func() tea.Cmd {
		s.preset = name
		s.pending = nil
		return s.startAnalysis()
	}
}

func (s *ScannerScreen) Init() tea.Cmd {
	if s.session.Method == scan.MethodUpload {
		return s.pathInput.Init()
	}
	return nil
}

func (s *ScannerScreen) Title() string {
	return s.session.Method.DisplayName()
}

func (s *ScannerScreen) ScanStatus() scan.Status {
	return s.session.Status
}

// Busy holds the screen in place while a scan is in flight.
func (s *ScannerScreen) Busy() bool {
	return s.phase == phaseAnalyzing
}

func (s *ScannerScreen) KeyHints() []layout.KeyHint {
	if s.phase == phaseAnalyzing {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	switch s.session.Method {
	case scan.MethodCamera:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Capture & Scan"},
			{Key: "Esc", Description: "Back"},
		}
	case scan.MethodUpload:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Scan Leaf"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Analyze Sample"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *ScannerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if s.phase != phaseAnalyzing {
			return s, nil
		}
		s.tickCount++
		return s, tick()

	case analyzeMsg:
		if msg.gen != s.gen || s.phase != phaseAnalyzing {
			return s, nil
		}
		return s, s.runScan()

	case scanDoneMsg:
		if msg.gen != s.gen {
			return s, nil
		}
		return s, s.finish(msg)

	case tea.KeyPressMsg:
		if s.phase == phaseAnalyzing {
			return s, nil
		}
		return s, s.handleKey(msg)
	}

	if s.session.Method == scan.MethodUpload && s.phase == phaseInput {
		var cmd tea.Cmd
		s.pathInput, cmd = s.pathInput.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ScannerScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch s.session.Method {
	case scan.MethodCamera:
		if msg.String() == "enter" {
			// No capture device is attached; the frame is absent.
			s.pending = nil
			s.preset = ""
			return s.startAnalysis()
		}
		return nil

	case scan.MethodUpload:
		if msg.String() == "enter" {
			return s.submitPath()
		}
		var cmd tea.Cmd
		s.pathInput, cmd = s.pathInput.Update(msg)
		return cmd

	default:
		var cmd tea.Cmd
		s.samples, cmd = s.samples.Update(msg)
		return cmd
	}
}

func (s *ScannerScreen) submitPath() tea.Cmd {
	path := s.pathInput.Value()
	if path == "" {
		s.pathInput.SetError("Please select an image file to upload.")
		return nil
	}
	img, err := diagnosis.OpenImage(path, s.opts.MaxUploadBytes)
	if err != nil {
		msg := scan.UserMessage(err)
		s.session.LastError = msg
		s.pathInput.SetError(msg)
		return nil
	}
	s.pending = img
	s.preset = ""
	return s.startAnalysis()
}

// startAnalysis enters the analyzing phase. The scan itself runs once the
// configured delay has passed.
func (s *ScannerScreen) startAnalysis() tea.Cmd {
	*s.session = s.opts.Service.Begin(*s.session)
	s.phase = phaseAnalyzing
	s.gen++
	s.tickCount = 0

	gen := s.gen
	delay := s.opts.AnalyzeDelay
	if delay <= 0 {
		return tea.Batch(tick(), func() tea.Msg { return analyzeMsg{gen: gen} })
	}
	return tea.Batch(tick(), tea.Tick(delay, func(time.Time) tea.Msg {
		return analyzeMsg{gen: gen}
	}))
}

func (s *ScannerScreen) runScan() tea.Cmd {
	svc := s.opts.Service
	sess := *s.session
	gen := s.gen
	img := s.pending
	preset := s.preset

	return func() tea.Msg {
		var (
			next scan.Session
			err  error
		)
		if preset != "" {
			next, err = svc.ApplyPreset(sess, preset)
		} else {
			next, err = svc.Scan(context.Background(), sess, img)
		}
		return scanDoneMsg{gen: gen, session: next, err: err}
	}
}

func (s *ScannerScreen) finish(msg scanDoneMsg) tea.Cmd {
	s.phase = phaseInput
	*s.session = msg.session

	if msg.err != nil {
		if s.session.Method == scan.MethodUpload {
			s.pathInput.SetError(s.session.LastError)
		}
		return nil
	}

	resultScreen := results.New(s.opts.Service, *s.session, s.newScan)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: resultScreen}
	}
}

// newScan clears the stored result and returns to this input screen.
func (s *ScannerScreen) newScan() tea.Cmd {
	*s.session = s.opts.Service.SelectMethod(scan.NewScan(*s.session), s.session.Method)
	s.pending = nil
	s.preset = ""
	if s.session.Method == scan.MethodUpload {
		s.pathInput = components.NewTextInput("path/to/leaf.jpg", maxPathLen)
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

package app

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/agriscan/internal/router"
	"github.com/abhisek/agriscan/internal/scan"
	"github.com/abhisek/agriscan/internal/screen"
	"github.com/abhisek/agriscan/internal/screens/home"
	"github.com/abhisek/agriscan/internal/screens/scanner"
	"github.com/abhisek/agriscan/internal/screens/welcome"
	"github.com/abhisek/agriscan/internal/ui/layout"
)

// Options configures the terminal application.
type Options struct {
	Service        *scan.Service
	AnalyzeDelay   time.Duration
	MaxUploadBytes int64
	SkipWelcome    bool
	Logger         *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	session *scan.Session
	info    string
	width   int
	height  int
}

// newAppModel creates a new AppModel starting at the welcome splash.
func newAppModel(opts Options) AppModel {
	sess := scan.New(scan.MethodCamera)
	scannerOpts := scanner.Options{
		Service:        opts.Service,
		AnalyzeDelay:   opts.AnalyzeDelay,
		MaxUploadBytes: opts.MaxUploadBytes,
	}
	homeFactory := func() screen.Screen {
		return home.New(scannerOpts, &sess)
	}

	var initial screen.Screen
	if opts.SkipWelcome {
		initial = homeFactory()
	} else {
		initial = welcome.New(homeFactory)
	}

	cat := opts.Service.Engine().Catalog()
	return AppModel{
		router:  router.New(initial),
		session: &sess,
		info:    fmt.Sprintf("%s · %d labels  ", cat.Crop(), cat.Len()),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if b, ok := m.router.Active().(screen.Busy); ok && b.Busy() {
				return m, nil
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	info := m.info
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			st := sp.ScanStatus()
			info = layout.RenderStatus(st.String(), lipgloss.Color(st.Color())) + "  "
		}
	}

	header := layout.RenderHeader(title, info, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		return hp.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Service == nil {
		return fmt.Errorf("app: scan service is required")
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	if opts.Logger != nil {
		opts.Logger.Info("terminal session ended")
	}
	return nil
}

package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/agriscan/internal/catalog"
	"github.com/abhisek/agriscan/internal/diagnosis"
	"github.com/abhisek/agriscan/internal/router"
	"github.com/abhisek/agriscan/internal/scan"
	"github.com/abhisek/agriscan/internal/screen"
	"github.com/abhisek/agriscan/internal/screens/results"
	"github.com/abhisek/agriscan/internal/screens/scanner"
	"github.com/abhisek/agriscan/internal/ui/components"
)

// lastResultItem is the menu index of "Last Result", after the methods.
var lastResultItem = len(scan.Methods())

// HomeScreen is the main menu: pick an input method or exit.
type HomeScreen struct {
	opts       scanner.Options
	session    *scan.Session
	menu       components.Menu
	menuLabels []string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. The session is shared with the scanner
// screens it opens.
func New(opts scanner.Options, session *scan.Session) *HomeScreen {
	h := &HomeScreen{
		opts:    opts,
		session: session,
	}

	var items []components.MenuItem
	for _, m := range scan.Methods() {
		items = append(items, components.MenuItem{
			Label:  m.DisplayName(),
			Hint:   methodHint(m),
			Action: h.open(m),
		})
	}
	items = append(items,
		components.MenuItem{
			Label: "Last Result",
			Hint:  "Show the most recent diagnosis",
			Action: func() tea.Cmd {
				return h.showLast()
			},
		},
		components.MenuItem{
			Label:  "Exit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)

	h.menu = components.NewMenu(items)
	for _, it := range items {
		h.menuLabels = append(h.menuLabels, it.Label)
	}
	return h
}

func methodHint(m scan.Method) string {
	switch m {
	case scan.MethodCamera:
		return "Capture a leaf with the camera"
	case scan.MethodUpload:
		return "Scan a JPG or PNG from disk"
	default:
		return "Try one of the sample leaves"
	}
}

// open switches the session to m and pushes its scanner.
func (h *HomeScreen) open(m scan.Method) func() tea.Cmd {
	return func() tea.Cmd {
		*h.session = h.opts.Service.SelectMethod(*h.session, m)
		s := scanner.New(h.opts, h.session)
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: s}
		}
	}
}

func (h *HomeScreen) showLast() tea.Cmd {
	if !h.session.HasResult() {
		return nil
	}
	r := results.New(h.opts.Service, *h.session, func() tea.Cmd {
		*h.session = scan.NewScan(*h.session)
		return func() tea.Msg { return router.PopScreenMsg{} }
	})
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: r}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	h.menu.Items[lastResultItem].Disabled = !h.session.HasResult()

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant(), cw))
	}

	cat := h.opts.Service.Engine().Catalog()
	sections = append(sections, renderStatsBar(cat, *h.session, cw, compact))

	disabled := map[int]bool{lastResultItem: !h.session.HasResult()}
	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw, disabled))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw, disabled))
	}

	content := strings.Join(sections, "\n\n")
	return renderFieldFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// mascotVariant picks the leaf mascot from the last diagnosis.
func (h *HomeScreen) mascotVariant() MascotVariant {
	top, ok := lastTop(*h.session)
	if !ok {
		return MascotIdle
	}
	if catalog.Classify(top.Label) == catalog.CategoryHealthy {
		return MascotHealthy
	}
	return MascotDiseased
}

func lastTop(sess scan.Session) (diagnosis.Prediction, bool) {
	if !sess.HasResult() {
		return diagnosis.Prediction{}, false
	}
	return sess.Result.Top()
}

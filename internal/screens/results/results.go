package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/agriscan/internal/router"
	"github.com/abhisek/agriscan/internal/scan"
	"github.com/abhisek/agriscan/internal/screen"
	"github.com/abhisek/agriscan/internal/treatment"
	"github.com/abhisek/agriscan/internal/ui/components"
	"github.com/abhisek/agriscan/internal/ui/layout"
	"github.com/abhisek/agriscan/internal/ui/theme"
)

const (
	previewWidth  = 24
	previewHeight = 12
	maxChartWidth = 64
)

// ResultsScreen shows the diagnosis for a completed scan.
type ResultsScreen struct {
	service *scan.Service
	session scan.Session
	newScan components.Button
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen for sess. onNewScan runs when the user
// asks for a new scan.
func New(service *scan.Service, sess scan.Session, onNewScan func() tea.Cmd) *ResultsScreen {
	return &ResultsScreen{
		service: service,
		session: sess,
		newScan: components.NewButton("New Scan", "n", true, onNewScan),
	}
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) Title() string {
	return "Diagnosis Results"
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "n", Description: "New Scan"},
		{Key: "h", Description: "Home"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Session returns the session being displayed.
func (r *ResultsScreen) Session() scan.Session {
	return r.session
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == "h" {
		return r, func() tea.Msg { return router.PopToRootMsg{} }
	}
	var cmd tea.Cmd
	r.newScan, cmd = r.newScan.Update(msg)
	return r, cmd
}

func (r *ResultsScreen) View(width, height int) string {
	if !r.session.HasResult() {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No scan result yet."))
	}

	cw := min(width-4, maxChartWidth)

	var sections []string
	sections = append(sections, r.renderCard(cw))

	if plan, ok := r.service.Treatments(r.session); ok {
		sections = append(sections, renderTreatments(plan))
	}
	sections = append(sections, renderPrevention(treatment.PreventionTips()))

	if spec, ok := r.service.Chart(r.session); ok {
		sections = append(sections, components.NewBarChart(spec, cw).View())
	}

	left := strings.Join(sections, "\n\n")

	body := left
	if preview := components.NewLeafPreview(r.session.Image, previewWidth, previewHeight).View(); preview != "" {
		caption := theme.Hint.Render(r.session.Image.Name)
		right := preview + "\n" + caption
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	}

	body += "\n\n" + r.newScan.View()

	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

func (r *ResultsScreen) renderCard(cw int) string {
	top, _ := r.session.Result.Top()

	heading := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Diagnosis")
	label := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(string(top.Label))
	conf := lipgloss.NewStyle().Foreground(theme.Primary).
		Render(fmt.Sprintf("Confidence: %.1f%%", top.Confidence*100))

	return theme.DiagnosisCard.Width(cw).Render(heading + "\n" + label + "\n" + conf)
}

func renderTreatments(plan treatment.Plan) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Recommended Treatment"))
	for i, step := range plan {
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(fmt.Sprintf("  %d. %s", i+1, step)))
	}
	return b.String()
}

func renderPrevention(tips []string) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Prevention Tips"))
	for _, tip := range tips {
		b.WriteString("\n")
		b.WriteString(theme.Body.Render("  • " + tip))
	}
	return b.String()
}

package scanner

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/agriscan/internal/scan"
	"github.com/abhisek/agriscan/internal/ui/layout"
	"github.com/abhisek/agriscan/internal/ui/theme"
)

// spinnerFrames cycle while a leaf is analyzed.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const cameraArt = `╭──────────────╮
│   ╭──────╮   │
│   │  ❦   │   │
│   ╰──────╯   │
╰──────────────╯`

func (s *ScannerScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, layout.RenderStatus(
		s.session.Status.String(), lipgloss.Color(s.session.Status.Color())))

	if s.phase == phaseAnalyzing {
		frame := spinnerFrames[s.tickCount%len(spinnerFrames)]
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Warning).Render(frame+" Analyzing leaf..."))
		return s.place(width, height, sections)
	}

	switch s.session.Method {
	case scan.MethodCamera:
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Primary).Render(cameraArt), "",
			theme.Hint.Render("Point the camera at a single leaf, then press Enter to capture."))
	case scan.MethodUpload:
		sections = append(sections, "",
			theme.Body.Render("Choose a leaf image (JPG, JPEG or PNG):"), "",
			s.pathInput.View())
	default:
		sections = append(sections, "",
			theme.Body.Render("Select a sample image:"), "",
			s.samples.View())
	}

	if s.session.LastError != "" && s.session.Method != scan.MethodUpload {
		sections = append(sections, "", theme.ErrorText.Render("✗ "+s.session.LastError))
	}

	return s.place(width, height, sections)
}

func (s *ScannerScreen) place(width, height int, sections []string) string {
	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
